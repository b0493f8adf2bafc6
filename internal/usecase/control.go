package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

// Dispatcher ilovaning update qayta ishlovchisi.
// FeedUpdate barcha handlerlar (va ular yuborgan chaqiruvlar) tugagandan keyin qaytishi kerak.
type Dispatcher interface {
	FeedUpdate(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error
}

// DispatcherFunc oddiy funksiyani Dispatcher ga aylantirish
type DispatcherFunc func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error

// FeedUpdate Dispatcher interface
func (f DispatcherFunc) FeedUpdate(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
	return f(ctx, bot, update)
}

// CallLog bot API chaqiruvlari jurnali
type CallLog interface {
	Calls() []entity.Call
}

// Control sintetik update yaratish va holatni tekshirish uchun interface
type Control interface {
	// Send foydalanuvchi nomidan matnli xabar yuborish
	Send(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, text string) (entity.Message, error)

	// SendContact foydalanuvchi nomidan kontakt yuborish
	SendContact(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, contact tgbotapi.Contact) (entity.Message, error)

	// SendPhoto foydalanuvchi nomidan rasm yuborish
	SendPhoto(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, photo entity.FileInput, caption string) (entity.Message, error)

	// Click inline tugmani bosish va ilova bergan javobni qaytarish
	Click(ctx context.Context, selector ButtonSelector, message entity.Message, user tgbotapi.User) (entity.CallbackAnswer, error)

	// Messages chat tarixi
	Messages(chatID int64) ([]entity.Message, error)

	// LastMessage chatdagi oxirgi tirik xabar
	LastMessage(chatID int64) (entity.Message, error)

	// UserState foydalanuvchining faol UI holati
	UserState(chatID, userID int64) (entity.UIState, error)

	// Calls ilova yuborgan barcha chaqiruvlar
	Calls() []entity.Call

	// CallbackAnswer callback query javobini olish
	CallbackAnswer(callbackQueryID string) (entity.CallbackAnswer, error)

	// Bot ilovaga berilgan bot klienti
	Bot() *tgbotapi.BotAPI
}

type control struct {
	store      repository.StateRepository
	calls      CallLog
	dispatcher Dispatcher
	bot        *tgbotapi.BotAPI
	logger     *slog.Logger
}

// NewControl yangi Control yaratish
func NewControl(
	store repository.StateRepository,
	calls CallLog,
	dispatcher Dispatcher,
	bot *tgbotapi.BotAPI,
	logger *slog.Logger,
) Control {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &control{
		store:      store,
		calls:      calls,
		dispatcher: dispatcher,
		bot:        bot,
		logger:     logger,
	}
}

// Send matnli xabar yuborish
func (c *control) Send(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, text string) (entity.Message, error) {
	return c.incoming(ctx, from, chat, func(msg *entity.Message) error {
		*msg = msg.WithText(text)
		return nil
	})
}

// SendContact kontakt yuborish
func (c *control) SendContact(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, contact tgbotapi.Contact) (entity.Message, error) {
	return c.incoming(ctx, from, chat, func(msg *entity.Message) error {
		msg.Contact = &contact
		return nil
	})
}

// SendPhoto rasm yuborish; fayl yuboruvchi foydalanuvchi nomidan ro'yxatga olinadi
func (c *control) SendPhoto(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, photo entity.FileInput, caption string) (entity.Message, error) {
	return c.incoming(ctx, from, chat, func(msg *entity.Message) error {
		record, err := c.store.ResolveOrCreateFile(from.ID, photo)
		if err != nil {
			return err
		}
		msg.Photo = entity.PhotoSizes(record)
		msg.Caption = caption
		return nil
	})
}

// incoming foydalanuvchi xabarini tarixga qo'shib dispatcherga uzatish
func (c *control) incoming(ctx context.Context, from tgbotapi.User, chat tgbotapi.Chat, fill func(*entity.Message) error) (entity.Message, error) {
	registered, err := c.store.Chat(chat.ID)
	if err != nil {
		return entity.Message{}, err
	}
	id, err := c.store.NextMessageID(chat.ID)
	if err != nil {
		return entity.Message{}, err
	}

	msg := entity.Message{
		ID:   id,
		Chat: registered,
		From: from,
		Date: time.Now(),
	}
	if err := c.store.ValidateMessage(msg); err != nil {
		return entity.Message{}, err
	}
	if err := fill(&msg); err != nil {
		return entity.Message{}, err
	}

	stored, err := c.store.AppendMessage(msg)
	if err != nil {
		return entity.Message{}, err
	}

	update := tgbotapi.Update{
		UpdateID: c.store.IncrementUpdateID(),
		Message:  stored.API(),
	}
	if err := c.feed(ctx, update); err != nil {
		return stored, err
	}
	return stored, nil
}

// Click inline tugmani bosish
func (c *control) Click(ctx context.Context, selector ButtonSelector, message entity.Message, user tgbotapi.User) (entity.CallbackAnswer, error) {
	if message.Markup.Kind != entity.MarkupInline {
		return entity.CallbackAnswer{}, fmt.Errorf("message %d in chat %d has no inline keyboard: %w", message.ID, message.Chat.ID, entity.ErrValidation)
	}

	var matched []tgbotapi.InlineKeyboardButton
	for _, button := range message.Markup.InlineButtons() {
		if selector(button) {
			matched = append(matched, button)
		}
	}
	switch {
	case len(matched) == 0:
		return entity.CallbackAnswer{}, fmt.Errorf("no button of message %d in chat %d matches: %w", message.ID, message.Chat.ID, entity.ErrValidation)
	case len(matched) > 1:
		return entity.CallbackAnswer{}, fmt.Errorf("%d buttons of message %d in chat %d match, expected 1: %w", len(matched), message.ID, message.Chat.ID, entity.ErrValidation)
	case matched[0].CallbackData == nil:
		return entity.CallbackAnswer{}, fmt.Errorf("button %q of message %d has no callback_data: %w", matched[0].Text, message.ID, entity.ErrValidation)
	}

	from := user
	query := &tgbotapi.CallbackQuery{
		ID:           c.store.NextCallbackQueryID(),
		From:         &from,
		Message:      message.API(),
		ChatInstance: strconv.FormatInt(message.Chat.ID, 10),
		Data:         *matched[0].CallbackData,
	}
	update := tgbotapi.Update{
		UpdateID:      c.store.IncrementUpdateID(),
		CallbackQuery: query,
	}
	if err := c.feed(ctx, update); err != nil {
		return entity.CallbackAnswer{}, err
	}

	answer, err := c.store.GetCallbackAnswer(query.ID)
	if err != nil {
		return entity.CallbackAnswer{}, fmt.Errorf("handler did not answer callback query %s: %w", query.ID, err)
	}
	return answer, nil
}

func (c *control) feed(ctx context.Context, update tgbotapi.Update) error {
	c.logger.Debug("feeding update", "update_id", update.UpdateID,
		"message", update.Message != nil, "callback_query", update.CallbackQuery != nil)

	if err := c.dispatcher.FeedUpdate(ctx, c.bot, update); err != nil {
		return fmt.Errorf("update %d: %w", update.UpdateID, err)
	}
	return nil
}

// Messages chat tarixi
func (c *control) Messages(chatID int64) ([]entity.Message, error) {
	return c.store.ChatHistory(chatID)
}

// LastMessage oxirgi xabar
func (c *control) LastMessage(chatID int64) (entity.Message, error) {
	history, err := c.store.ChatHistory(chatID)
	if err != nil {
		return entity.Message{}, err
	}
	if len(history) == 0 {
		return entity.Message{}, fmt.Errorf("chat %d has no messages: %w", chatID, entity.ErrNotFound)
	}
	return history[len(history)-1], nil
}

// UserState foydalanuvchi UI holati
func (c *control) UserState(chatID, userID int64) (entity.UIState, error) {
	return c.store.GetUserState(chatID, userID)
}

// Calls chaqiruvlar jurnali
func (c *control) Calls() []entity.Call {
	if c.calls == nil {
		return nil
	}
	return c.calls.Calls()
}

// CallbackAnswer callback javobi
func (c *control) CallbackAnswer(callbackQueryID string) (entity.CallbackAnswer, error) {
	return c.store.GetCallbackAnswer(callbackQueryID)
}

// Bot bot klienti
func (c *control) Bot() *tgbotapi.BotAPI {
	return c.bot
}
