package entity

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandEntities(t *testing.T) {
	tests := []struct {
		text   string
		length int
	}{
		{text: "/start", length: 6},
		{text: "/buy 3 printers", length: 4},
		{text: "/salom😀 dunyo", length: 8},
		{text: "hello /start", length: 0},
		{text: "", length: 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			entities := CommandEntities(tt.text)
			if tt.length == 0 {
				assert.Empty(t, entities)
				return
			}
			require.Len(t, entities, 1)
			assert.Equal(t, "bot_command", entities[0].Type)
			assert.Equal(t, tt.length, entities[0].Length)
		})
	}
}

func TestMessageAPI(t *testing.T) {
	chat := tgbotapi.Chat{ID: 5, Type: "private"}
	root := Message{ID: 0, Chat: chat}.WithText("root")
	middle := Message{ID: 1, Chat: chat, ReplyTo: &root}.WithText("middle")
	leaf := Message{ID: 2, Chat: chat, ReplyTo: &middle, Date: time.Unix(1700000000, 0)}.
		WithText("/leaf").
		WithMarkup(InlineMarkup(tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("A", "a")),
		)))

	api := leaf.API()
	assert.Equal(t, 2, api.MessageID)
	assert.Equal(t, 1700000000, api.Date)
	assert.Zero(t, api.EditDate)
	assert.True(t, api.IsCommand())
	require.NotNil(t, api.ReplyToMessage)
	assert.Equal(t, "middle", api.ReplyToMessage.Text)
	assert.Nil(t, api.ReplyToMessage.ReplyToMessage, "replies are rendered one level deep")
	require.NotNil(t, api.ReplyMarkup)
	assert.Len(t, api.ReplyMarkup.InlineKeyboard, 1)

	keyboard := leaf.WithMarkup(KeyboardMarkup(tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("B")),
	)))
	assert.Nil(t, keyboard.API().ReplyMarkup)

	edited := leaf.WithText("changed").WithEditDate(time.Unix(1700000100, 0))
	assert.Equal(t, "/leaf", leaf.Text, "copies do not alias the original")
	assert.False(t, edited.IsCommand())
	assert.Equal(t, 1700000100, edited.API().EditDate)
}

func TestMarkupOf(t *testing.T) {
	inline := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("A", "a"),
		tgbotapi.NewInlineKeyboardButtonURL("B", "https://example.com"),
	))
	var nilInline *tgbotapi.InlineKeyboardMarkup

	tests := []struct {
		name  string
		value interface{}
		want  MarkupKind
	}{
		{name: "nil", value: nil, want: MarkupNone},
		{name: "nil pointer", value: nilInline, want: MarkupNone},
		{name: "inline", value: inline, want: MarkupInline},
		{name: "inline pointer", value: &inline, want: MarkupInline},
		{name: "keyboard", value: tgbotapi.NewOneTimeReplyKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("x"))), want: MarkupKeyboard},
		{name: "force reply", value: tgbotapi.ForceReply{ForceReply: true}, want: MarkupForceReply},
		{name: "remove", value: tgbotapi.NewRemoveKeyboard(true), want: MarkupRemove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup, err := MarkupOf(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, markup.Kind)
		})
	}

	markup, err := MarkupOf(inline)
	require.NoError(t, err)
	assert.Len(t, markup.InlineButtons(), 2)
	assert.Equal(t, inline, markup.Value())
	assert.Nil(t, NoMarkup().Value())

	_, err = MarkupOf("keyboard")
	assert.ErrorIs(t, err, ErrMalformedRequest)
}

func TestUIStateUpdate(t *testing.T) {
	keyboard := KeyboardMarkup(tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("x"))))
	state := UIState{ReplyMarkup: keyboard}

	assert.Equal(t, state, UIStateUpdate{}.Apply(state), "unset fields are left alone")
	assert.True(t, ClearReplyMarkup().Apply(state).ReplyMarkup.IsZero())
	assert.Equal(t, MarkupKeyboard, SetReplyMarkup(keyboard).Apply(UIState{}).ReplyMarkup.Kind)

	value, ok := Unset[int]().Get()
	assert.False(t, ok)
	assert.Zero(t, value)
	assert.True(t, Set(0).IsSet())
}

func TestStorageKey(t *testing.T) {
	key := NewStorageKey(1, 2, 3, "")
	assert.Equal(t, DefaultDestiny, key.Destiny)
	assert.Equal(t, "1:2:3:default", key.String())
	assert.Equal(t, "1:2:3:payments", StorageKey{BotID: 1, ChatID: 2, UserID: 3, Destiny: "payments"}.String())
}

func TestCallsOf(t *testing.T) {
	calls := []Call{GetMeCall{}, SendMessageCall{Text: "a"}, DeleteMessageCall{}, SendMessageCall{Text: "b"}}

	sends := CallsOf[SendMessageCall](calls)
	require.Len(t, sends, 2)
	assert.Equal(t, "b", sends[1].Text)
	assert.Empty(t, CallsOf[SendPhotoCall](calls))
}
