package parser

import (
	"context"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

var chat = tgbotapi.Chat{ID: 42, Type: "private"}

func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseHistoryWithHeader(t *testing.T) {
	data := workbook(t,
		[]interface{}{"Xabar", "Sender ID", "Ism", "Reply to"},
		[]interface{}{"/start", 42, "Linus Torvalds", ""},
		[]interface{}{"", "", "", ""},
		[]interface{}{"Salom!", 738453453, "Test bot", 0},
	)

	messages, err := NewHistoryParser(nil).ParseHistoryFromBytes(context.Background(), data, chat)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	first := messages[0]
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, chat.ID, first.Chat.ID)
	assert.Equal(t, int64(42), first.From.ID)
	assert.Equal(t, "Linus", first.From.FirstName)
	assert.Equal(t, "Torvalds", first.From.LastName)
	assert.True(t, first.IsCommand())

	second := messages[1]
	assert.Equal(t, 1, second.ID)
	assert.Equal(t, "Salom!", second.Text)
	require.NotNil(t, second.ReplyTo)
	assert.Equal(t, "/start", second.ReplyTo.Text)
}

func TestParseHistoryWithoutHeader(t *testing.T) {
	data := workbook(t,
		[]interface{}{1, "A", "first"},
		[]interface{}{2, "B", "second", 0},
	)

	messages, err := NewHistoryParser(nil).ParseHistoryFromBytes(context.Background(), data, chat)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, int64(2), messages[1].From.ID)
	require.NotNil(t, messages[1].ReplyTo)
	assert.Equal(t, 0, messages[1].ReplyTo.ID)
}

func TestParseHistoryRejectsForwardReply(t *testing.T) {
	data := workbook(t,
		[]interface{}{1, "A", "first", 1},
	)

	_, err := NewHistoryParser(nil).ParseHistoryFromBytes(context.Background(), data, chat)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestParseHistoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"from_id", "from_name", "text"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{7, "Ann", "hello"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	messages, err := NewHistoryParser(nil).ParseHistory(context.Background(), path, chat)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Text)
	assert.Nil(t, messages[0].ReplyTo)
}
