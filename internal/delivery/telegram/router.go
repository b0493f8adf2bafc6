package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
	"github.com/yourusername/tgmock/internal/usecase"
)

// Event handlerga uzatiladigan update va uning atrofi
type Event struct {
	Bot           *tgbotapi.BotAPI
	Update        tgbotapi.Update
	Message       *tgbotapi.Message
	CallbackQuery *tgbotapi.CallbackQuery
	FSM           *usecase.FSMContext
}

// Chat update kelgan chat id si
func (e *Event) ChatID() int64 {
	switch {
	case e.Message != nil && e.Message.Chat != nil:
		return e.Message.Chat.ID
	case e.CallbackQuery != nil && e.CallbackQuery.Message != nil && e.CallbackQuery.Message.Chat != nil:
		return e.CallbackQuery.Message.Chat.ID
	default:
		return 0
	}
}

// Reply shu chatga xabar yuborish. markup nil, entity.Markup yoki istalgan tgbotapi markup qiymati.
func (e *Event) Reply(text string, markup interface{}) (tgbotapi.Message, error) {
	m, err := entity.MarkupOf(markup)
	if err != nil {
		return tgbotapi.Message{}, err
	}
	msg := tgbotapi.NewMessage(e.ChatID(), text)
	msg.ReplyMarkup = m.Value()
	return e.Bot.Send(msg)
}

// Answer callback query ga javob berish
func (e *Event) Answer(text string) error {
	if e.CallbackQuery == nil {
		return fmt.Errorf("event has no callback query: %w", entity.ErrValidation)
	}
	_, err := e.Bot.Request(tgbotapi.NewCallback(e.CallbackQuery.ID, text))
	return err
}

// HandlerFunc update handleri
type HandlerFunc func(ctx context.Context, e *Event) error

type callbackRoute struct {
	prefix  string
	handler HandlerFunc
}

// Router updatelarni sinxron ravishda handlerlarga yo'naltiruvchi oddiy dispatcher
type Router struct {
	fsm    repository.FSMStorage
	logger *slog.Logger

	commands  map[string]HandlerFunc
	states    map[string]HandlerFunc
	callbacks []callbackRoute
	onMessage HandlerFunc
	onContact HandlerFunc
	onPhoto   HandlerFunc
}

var _ usecase.Dispatcher = (*Router)(nil)

// NewRouter yangi router yaratish
func NewRouter(fsm repository.FSMStorage, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		fsm:      fsm,
		logger:   logger,
		commands: make(map[string]HandlerFunc),
		states:   make(map[string]HandlerFunc),
	}
}

// OnCommand /command handleri
func (r *Router) OnCommand(command string, handler HandlerFunc) *Router {
	r.commands[strings.TrimPrefix(command, "/")] = handler
	return r
}

// OnState suhbat holati shu bo'lganda keladigan xabarlar handleri
func (r *Router) OnState(state string, handler HandlerFunc) *Router {
	r.states[state] = handler
	return r
}

// OnCallback callback_data prefiksi bo'yicha handler (ro'yxatga olingan tartibda tekshiriladi)
func (r *Router) OnCallback(prefix string, handler HandlerFunc) *Router {
	r.callbacks = append(r.callbacks, callbackRoute{prefix: prefix, handler: handler})
	return r
}

// OnMessage boshqa handler topilmagan matnli xabarlar
func (r *Router) OnMessage(handler HandlerFunc) *Router {
	r.onMessage = handler
	return r
}

// OnContact kontakt xabarlari
func (r *Router) OnContact(handler HandlerFunc) *Router {
	r.onContact = handler
	return r
}

// OnPhoto rasm xabarlari
func (r *Router) OnPhoto(handler HandlerFunc) *Router {
	r.onPhoto = handler
	return r
}

// FeedUpdate updateni mos handlerga uzatish; handler tugaguncha kutadi
func (r *Router) FeedUpdate(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
	event := &Event{Bot: bot, Update: update}

	switch {
	case update.CallbackQuery != nil:
		event.CallbackQuery = update.CallbackQuery
		event.FSM = r.fsmContext(bot, event.ChatID(), update.CallbackQuery.From)
		return r.handleCallback(ctx, event)
	case update.Message != nil:
		event.Message = update.Message
		event.FSM = r.fsmContext(bot, event.ChatID(), update.Message.From)
		return r.handleMessage(ctx, event)
	default:
		r.logger.Debug("update ignored", "update_id", update.UpdateID)
		return nil
	}
}

// handleMessage xabarni qayta ishlash
func (r *Router) handleMessage(ctx context.Context, e *Event) error {
	message := e.Message

	// Kontakt yuborilgan bo'lsa
	if message.Contact != nil && r.onContact != nil {
		return r.run(ctx, "contact", r.onContact, e)
	}

	// Rasm yuborilgan bo'lsa
	if len(message.Photo) > 0 && r.onPhoto != nil {
		return r.run(ctx, "photo", r.onPhoto, e)
	}

	// Komandalar holatdan ustun
	if message.IsCommand() {
		if handler, ok := r.commands[message.Command()]; ok {
			return r.run(ctx, "/"+message.Command(), handler, e)
		}
	}

	if e.FSM != nil {
		state, err := e.FSM.State(ctx)
		if err != nil {
			return err
		}
		if handler, ok := r.states[state]; ok && state != "" {
			return r.run(ctx, "state "+state, handler, e)
		}
	}

	if message.Text != "" && r.onMessage != nil {
		return r.run(ctx, "message", r.onMessage, e)
	}

	r.logger.Debug("message ignored", "chat_id", e.ChatID(), "message_id", message.MessageID)
	return nil
}

// handleCallback callback_data prefiksi bo'yicha yo'naltirish
func (r *Router) handleCallback(ctx context.Context, e *Event) error {
	data := e.CallbackQuery.Data
	for _, route := range r.callbacks {
		if strings.HasPrefix(data, route.prefix) {
			return r.run(ctx, "callback "+route.prefix, route.handler, e)
		}
	}

	r.logger.Debug("callback ignored", "data", data)
	return nil
}

func (r *Router) run(ctx context.Context, route string, handler HandlerFunc, e *Event) error {
	r.logger.Debug("routing update", "update_id", e.Update.UpdateID, "route", route)
	if err := handler(ctx, e); err != nil {
		return fmt.Errorf("%s handler: %w", route, err)
	}
	return nil
}

func (r *Router) fsmContext(bot *tgbotapi.BotAPI, chatID int64, from *tgbotapi.User) *usecase.FSMContext {
	if r.fsm == nil || from == nil {
		return nil
	}
	var botID int64
	if bot != nil {
		botID = bot.Self.ID
	}
	return usecase.NewFSMContext(r.fsm, entity.NewStorageKey(botID, chatID, from.ID, ""))
}
