package tgmock_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/tgmock"
	"github.com/yourusername/tgmock/config"
)

const stateWaitingPhone = "waiting_phone"

// shopBot telefon raqam so'rab, keyin katalog menyusini ko'rsatadigan kichik bot
func shopBot(fsm tgmock.FSMStorage) *tgmock.Router {
	return tgmock.NewRouter(fsm, nil).
		OnCommand("start", func(ctx context.Context, e *tgmock.Event) error {
			if err := e.FSM.SetState(ctx, stateWaitingPhone); err != nil {
				return err
			}
			keyboard := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact("📱 Telefon raqamni yuborish"),
			))
			keyboard.ResizeKeyboard = true
			_, err := e.Reply("Assalomu alaykum! Telefon raqamingizni yuboring.", keyboard)
			return err
		}).
		OnContact(func(ctx context.Context, e *tgmock.Event) error {
			if _, err := e.FSM.UpdateData(ctx, map[string]any{"phone": e.Message.Contact.PhoneNumber}); err != nil {
				return err
			}
			if err := e.FSM.SetState(ctx, ""); err != nil {
				return err
			}
			if _, err := e.Reply("Rahmat!", tgbotapi.NewRemoveKeyboard(true)); err != nil {
				return err
			}
			_, err := e.Reply("Menyu", tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Katalog", "menu:catalog"),
				tgbotapi.NewInlineKeyboardButtonData("Yordam", "menu:help"),
			)))
			return err
		}).
		OnState(stateWaitingPhone, func(ctx context.Context, e *tgmock.Event) error {
			_, err := e.Reply("Iltimos, tugma orqali raqam yuboring.", nil)
			return err
		}).
		OnCallback("menu:catalog", func(ctx context.Context, e *tgmock.Event) error {
			edit := tgbotapi.NewEditMessageText(e.ChatID(), e.CallbackQuery.Message.MessageID, "Katalog: Printer, Skaner")
			if _, err := e.Bot.Send(edit); err != nil {
				return err
			}
			return e.Answer("Katalog ochildi")
		}).
		OnCallback("menu:", func(ctx context.Context, e *tgmock.Event) error {
			return e.Answer("Tez orada")
		})
}

func newShopFixture(t *testing.T, opts ...tgmock.Option) *tgmock.Fixture {
	t.Helper()
	fsm := tgmock.NewMemoryFSMStorage()
	fixture, err := tgmock.NewPrivateChat(shopBot(fsm), append([]tgmock.Option{tgmock.WithFSMStorage(fsm)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fixture.Close() })
	return fixture
}

func TestShopConversation(t *testing.T) {
	fixture := newShopFixture(t)
	chat := fixture.Chat
	ctx := context.Background()

	_, err := chat.Send(ctx, "/start")
	require.NoError(t, err)

	last, err := chat.LastMessage()
	require.NoError(t, err)
	assert.Equal(t, 1, last.ID)
	assert.True(t, last.From.IsBot)
	assert.Contains(t, last.Text, "Telefon raqamingizni")

	ui, err := chat.UserState()
	require.NoError(t, err)
	require.Equal(t, tgmock.MarkupKeyboard, ui.ReplyMarkup.Kind)
	assert.True(t, ui.ReplyMarkup.Keyboard.Keyboard[0][0].RequestContact)

	state, err := chat.State("").State(ctx)
	require.NoError(t, err)
	assert.Equal(t, stateWaitingPhone, state)

	_, err = chat.Send(ctx, "998901234567")
	require.NoError(t, err)
	last, err = chat.LastMessage()
	require.NoError(t, err)
	assert.Equal(t, "Iltimos, tugma orqali raqam yuboring.", last.Text)

	_, err = chat.SendContact(ctx, tgbotapi.Contact{
		PhoneNumber: "+998901234567",
		FirstName:   chat.User().FirstName,
		UserID:      chat.User().ID,
	})
	require.NoError(t, err)

	ui, err = chat.UserState()
	require.NoError(t, err)
	assert.True(t, ui.ReplyMarkup.IsZero())

	data, err := chat.State("").Data(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", data["phone"])

	answer, err := chat.Click(ctx, tgmock.ByData("menu:catalog"))
	require.NoError(t, err)
	assert.Equal(t, "Katalog ochildi", answer.Text)

	menu, err := chat.LastMessage()
	require.NoError(t, err)
	assert.Equal(t, "Katalog: Printer, Skaner", menu.Text)
	assert.False(t, menu.EditDate.IsZero())

	answer, err = chat.Click(ctx, tgmock.ByText("Yordam"))
	require.ErrorIs(t, err, tgmock.ErrValidation, "edit without markup removed the keyboard")
	assert.Empty(t, answer.Text)

	history, err := chat.Messages()
	require.NoError(t, err)
	assert.Len(t, history, 7)

	edits := tgmock.CallsOf[tgmock.EditMessageTextCall](chat.Calls())
	require.Len(t, edits, 1)
	assert.Equal(t, menu.ID, *edits[0].Target.MessageID)
}

func TestReplyThenEditScenario(t *testing.T) {
	ctx := context.Background()
	router := tgmock.NewRouter(nil, nil).OnMessage(func(ctx context.Context, e *tgmock.Event) error {
		_, err := e.Bot.MakeRequest("sendMessage", tgbotapi.Params{
			"chat_id":             fmt.Sprint(e.ChatID()),
			"text":                "hello back",
			"reply_to_message_id": fmt.Sprint(e.Message.MessageID),
		})
		return err
	})

	fixture, err := tgmock.NewPrivateChat(router)
	require.NoError(t, err)

	sent, err := fixture.Chat.Send(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, 0, sent.ID)

	history, err := fixture.Chat.Messages()
	require.NoError(t, err)
	require.Len(t, history, 2)

	reply := history[1]
	assert.Equal(t, 1, reply.ID)
	require.NotNil(t, reply.ReplyTo)
	assert.Equal(t, 0, reply.ReplyTo.ID)
	assert.Equal(t, "hi", reply.ReplyTo.Text)

	_, err = fixture.Bot.Send(tgbotapi.NewEditMessageText(fixture.Chat.Chat().ID, 1, "edited"))
	require.NoError(t, err)

	edited, err := fixture.Store.GetMessage(fixture.Chat.Chat().ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Text)
	assert.Equal(t, 1, edited.ID)
	assert.Equal(t, reply.Chat, edited.Chat)
}

func TestOversizedCallbackDataScenario(t *testing.T) {
	ctx := context.Background()
	router := tgmock.NewRouter(nil, nil).OnMessage(func(ctx context.Context, e *tgmock.Event) error {
		_, err := e.Reply("menu", tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("big", strings.Repeat("a", 65)),
		)))
		return err
	})

	fixture, err := tgmock.NewPrivateChat(router)
	require.NoError(t, err)

	_, err = fixture.Chat.Send(ctx, "hi")
	assert.ErrorIs(t, err, tgmock.ErrValidation)

	history, err := fixture.Chat.Messages()
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAmbiguousClickScenario(t *testing.T) {
	ctx := context.Background()
	fixture := newShopFixture(t)
	chat := fixture.Chat

	_, err := chat.SendContact(ctx, tgbotapi.Contact{PhoneNumber: "+1", UserID: chat.User().ID})
	require.NoError(t, err)
	calls := len(chat.Calls())

	_, err = chat.Click(ctx, tgmock.ByDataPrefix("menu:"))
	require.ErrorIs(t, err, tgmock.ErrValidation)

	_, err = chat.Click(ctx, tgmock.ByText("Savat"))
	require.ErrorIs(t, err, tgmock.ErrValidation)

	assert.Len(t, chat.Calls(), calls, "nothing was fed to the bot")
	_, err = fixture.Control.CallbackAnswer("1")
	assert.ErrorIs(t, err, tgmock.ErrNotFound)

	answer, err := chat.Click(ctx, tgmock.And(tgmock.ByDataPrefix("menu:"), tgmock.Not(tgmock.ByText("Katalog"))))
	require.NoError(t, err)
	assert.Equal(t, "Tez orada", answer.Text)
	assert.Equal(t, "1", answer.CallbackQueryID)
}

func TestPhotoRoundTrip(t *testing.T) {
	ctx := context.Background()
	var received []tgbotapi.PhotoSize

	router := tgmock.NewRouter(nil, nil).OnPhoto(func(ctx context.Context, e *tgmock.Event) error {
		received = e.Message.Photo
		photo := tgbotapi.NewPhoto(e.ChatID(), tgbotapi.FileBytes{Name: "copy.jpg", Bytes: []byte("receipt")})
		photo.Caption = "Chek qabul qilindi"
		_, err := e.Bot.Send(photo)
		return err
	})

	fixture, err := tgmock.NewPrivateChat(router)
	require.NoError(t, err)

	sent, err := fixture.Chat.SendPhoto(ctx, tgmock.FileBytes("check.jpg", []byte("receipt")), "chek")
	require.NoError(t, err)
	require.Len(t, received, 3)
	assert.Equal(t, sent.Photo[0].FileID, received[0].FileID)
	assert.Equal(t, "chek", sent.Caption)

	echo, err := fixture.Chat.LastMessage()
	require.NoError(t, err)
	assert.Equal(t, sent.Photo[0].FileUniqueID, echo.Photo[0].FileUniqueID)
	assert.NotEqual(t, sent.Photo[0].FileID, echo.Photo[0].FileID)

	// Foydalanuvchiga berilgan local id bot uchun mavjud emas
	_, err = fixture.Bot.Send(tgbotapi.NewPhoto(fixture.Chat.Chat().ID, tgbotapi.FileID(sent.Photo[0].FileID)))
	assert.ErrorIs(t, err, tgmock.ErrNotFound)

	_, err = fixture.Bot.Send(tgbotapi.NewPhoto(fixture.Chat.Chat().ID, tgbotapi.FileID(echo.Photo[0].FileID)))
	assert.NoError(t, err)
}

func TestUnsupportedCallFailsHandler(t *testing.T) {
	router := tgmock.NewRouter(nil, nil).OnMessage(func(ctx context.Context, e *tgmock.Event) error {
		_, err := e.Bot.Send(tgbotapi.NewDice(e.ChatID()))
		return err
	})

	fixture, err := tgmock.NewPrivateChat(router)
	require.NoError(t, err)

	_, err = fixture.Chat.Send(context.Background(), "roll")
	assert.ErrorIs(t, err, tgmock.ErrUnsupportedOperation)

	unsupported := tgmock.CallsOf[tgmock.UnsupportedCall](fixture.Session.Calls())
	require.Len(t, unsupported, 1)
	assert.Equal(t, "sendDice", unsupported[0].Method())
}

func TestNewPrivateChatOptions(t *testing.T) {
	noop := tgmock.DispatcherFunc(func(context.Context, *tgbotapi.BotAPI, tgbotapi.Update) error { return nil })

	_, err := tgmock.NewPrivateChat(nil)
	assert.ErrorIs(t, err, tgmock.ErrConfiguration)

	_, err = tgmock.NewPrivateChat(noop, tgmock.WithTargetUser(tgbotapi.User{ID: 738453453}))
	assert.ErrorIs(t, err, tgmock.ErrConfiguration)

	fixture, err := tgmock.NewPrivateChat(noop,
		tgmock.WithBotUser(tgbotapi.User{ID: 42, FirstName: "Shop", UserName: "shop_bot"}),
		tgmock.WithTargetUser(tgbotapi.User{ID: 7, FirstName: "Ada"}),
		tgmock.WithToken("42:secret"),
	)
	require.NoError(t, err)
	defer fixture.Close()

	assert.Equal(t, int64(42), fixture.Bot.Self.ID)
	assert.True(t, fixture.Bot.Self.IsBot)
	assert.Equal(t, "42:secret", fixture.Bot.Token)
	assert.Equal(t, int64(7), fixture.Chat.Chat().ID)
	assert.Equal(t, "private", fixture.Chat.Chat().Type)

	calls := fixture.Session.Calls()
	require.Len(t, calls, 1)
	assert.IsType(t, tgmock.GetMeCall{}, calls[0])
}

func TestWithHistory(t *testing.T) {
	noop := tgmock.DispatcherFunc(func(context.Context, *tgbotapi.BotAPI, tgbotapi.Update) error { return nil })
	chat := tgbotapi.Chat{ID: 103592704, Type: "private"}
	user := tgbotapi.User{ID: 103592704, FirstName: "Linus"}

	first := tgmock.Message{ID: 0, Chat: chat, From: user}.WithText("old message")
	fixture, err := tgmock.NewPrivateChat(noop, tgmock.WithHistory(first))
	require.NoError(t, err)

	sent, err := fixture.Chat.Send(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, 1, sent.ID)

	wrongID := tgmock.Message{ID: 3, Chat: chat, From: user}
	_, err = tgmock.NewPrivateChat(noop, tgmock.WithHistory(wrongID))
	assert.ErrorIs(t, err, tgmock.ErrValidation)
}

func TestWithHistoryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"from_id", "from_name", "text", "reply_to"},
		{103592704, "Linus Torvalds", "/start", ""},
		{738453453, "Test bot", "Salom!", 0},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	noop := tgmock.DispatcherFunc(func(context.Context, *tgbotapi.BotAPI, tgbotapi.Update) error { return nil })
	fixture, err := tgmock.NewPrivateChat(noop, tgmock.WithHistoryFile(path))
	require.NoError(t, err)

	history, err := fixture.Chat.Messages()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].IsCommand())
	require.NotNil(t, history[1].ReplyTo)
	assert.Equal(t, "/start", history[1].ReplyTo.Text)

	_, err = tgmock.NewPrivateChat(noop, tgmock.WithHistoryFile(path), tgmock.WithHistory(history[0]))
	assert.ErrorIs(t, err, tgmock.ErrConfiguration)
}

func TestWithConfigPebbleStorage(t *testing.T) {
	cfg := config.Default()
	cfg.FSMStorageType = config.StoragePebble
	cfg.PebbleDir = filepath.Join(t.TempDir(), "fsm")
	cfg.UserFirstName = "Ada"
	require.NoError(t, cfg.Validate())

	var fixture *tgmock.Fixture
	router := tgmock.DispatcherFunc(func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return fixture.Chat.State("").SetState(ctx, "seen")
	})

	fixture, err := tgmock.NewPrivateChat(router, tgmock.WithConfig(cfg))
	require.NoError(t, err)

	_, err = fixture.Chat.Send(context.Background(), "hi")
	require.NoError(t, err)

	state, err := fixture.FSM.GetState(context.Background(), tgmock.NewStorageKey(cfg.BotID, cfg.UserID, cfg.UserID, ""))
	require.NoError(t, err)
	assert.Equal(t, "seen", state)
	assert.Equal(t, "Ada", fixture.Chat.Chat().FirstName)

	require.NoError(t, fixture.Close())
}
