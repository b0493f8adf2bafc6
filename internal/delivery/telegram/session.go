package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

// Session bot API serveri o'rnini bosuvchi tgbotapi.HTTPClient.
// Har bir chaqiruvni log qiladi va state store ga qo'llaydi.
type Session struct {
	store  repository.StateRepository
	bot    tgbotapi.User
	logger *slog.Logger
	calls  []entity.Call
	now    func() time.Time

	selective bool
}

var _ tgbotapi.HTTPClient = (*Session)(nil)

// SessionOption session sozlamasi
type SessionOption func(*Session)

// WithSelectiveUIState selective klaviatura reply egasining shaxsiy holatiga yoziladi.
// Standart holatda har qanday klaviatura chat holatiga yoziladi.
func WithSelectiveUIState() SessionOption {
	return func(s *Session) {
		s.selective = true
	}
}

// NewSession yangi session yaratish
func NewSession(store repository.StateRepository, bot tgbotapi.User, logger *slog.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		store:  store,
		bot:    bot,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bot session javob beradigan bot foydalanuvchisi
func (s *Session) Bot() tgbotapi.User {
	return s.bot
}

// Calls shu paytgacha kelgan barcha chaqiruvlar nusxasi
func (s *Session) Calls() []entity.Call {
	calls := make([]entity.Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// Do tgbotapi.HTTPClient: so'rovni Call ga aylantirib qayta ishlash.
// Xatoliklar o'ralmagan holda qaytadi, shuning uchun bot.Send natijasida errors.Is ishlaydi.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer req.Body.Close()
	}

	if strings.HasPrefix(req.URL.Path, "/file/") {
		_, err := s.Handle(req.Context(), entity.UnsupportedCall{Name: "file", Params: req.URL.Query()})
		return nil, err
	}

	method := path.Base(req.URL.Path)
	params, files, err := readRequest(req)
	if err != nil {
		_, _ = s.Handle(req.Context(), entity.MalformedCall{Name: method, Err: err})
		return nil, err
	}
	s.warnDroppedMessageID(method, params)

	result, err := s.Handle(req.Context(), decodeCall(method, params, files))
	if err != nil {
		return nil, err
	}

	return okResponse(req, result)
}

// Handle chaqiruvni log qilib, turiga qarab bajarish
func (s *Session) Handle(ctx context.Context, call entity.Call) (any, error) {
	s.calls = append(s.calls, call)
	s.logger.Debug("bot api call", "method", call.Method(), "call", fmt.Sprintf("%+v", call))

	result, err := s.dispatch(call)
	if err != nil {
		s.logger.Warn("bot api call failed", "method", call.Method(), "error", err)
		return nil, err
	}
	return result, nil
}

func (s *Session) dispatch(call entity.Call) (any, error) {
	switch c := call.(type) {
	case entity.GetMeCall:
		return s.bot, nil
	case entity.SendMessageCall:
		return s.sendMessage(c)
	case entity.SendPhotoCall:
		return s.sendPhoto(c)
	case entity.AnswerCallbackQueryCall:
		return s.answerCallbackQuery(c)
	case entity.SetChatMenuButtonCall:
		return true, nil
	case entity.EditMessageTextCall:
		return s.editMessage(c.Target, func(msg entity.Message) entity.Message {
			return msg.WithText(c.Text).WithMarkup(c.ReplyMarkup)
		})
	case entity.EditMessageCaptionCall:
		return s.editMessage(c.Target, func(msg entity.Message) entity.Message {
			return msg.WithCaption(c.Caption).WithMarkup(c.ReplyMarkup)
		})
	case entity.EditMessageReplyMarkupCall:
		return s.editMessage(c.Target, func(msg entity.Message) entity.Message {
			return msg.WithMarkup(c.ReplyMarkup)
		})
	case entity.DeleteMessageCall:
		if err := s.store.DeleteMessage(c.ChatID, c.MessageID); err != nil {
			return nil, err
		}
		return true, nil
	case entity.MalformedCall:
		return nil, fmt.Errorf("%s: %w", c.Name, c.Err)
	case entity.UnsupportedCall:
		return nil, fmt.Errorf("method %q is not modelled: %w", c.Name, entity.ErrUnsupportedOperation)
	default:
		return nil, fmt.Errorf("call %T is not modelled: %w", call, entity.ErrUnsupportedOperation)
	}
}

// outgoing bot yuboradigan xabar uchun umumiy maydonlar
type outgoing struct {
	chatID            int64
	replyToMessageID  *int
	allowWithoutReply bool
	markup            entity.Markup
}

func (s *Session) sendMessage(c entity.SendMessageCall) (*tgbotapi.Message, error) {
	return s.send(outgoing{
		chatID:            c.ChatID,
		replyToMessageID:  c.ReplyToMessageID,
		allowWithoutReply: c.AllowSendingWithoutReply,
		markup:            c.ReplyMarkup,
	}, func(msg *entity.Message) error {
		*msg = msg.WithText(c.Text)
		return nil
	})
}

func (s *Session) sendPhoto(c entity.SendPhotoCall) (*tgbotapi.Message, error) {
	return s.send(outgoing{
		chatID:            c.ChatID,
		replyToMessageID:  c.ReplyToMessageID,
		allowWithoutReply: c.AllowSendingWithoutReply,
		markup:            c.ReplyMarkup,
	}, func(msg *entity.Message) error {
		record, err := s.store.ResolveOrCreateFile(s.bot.ID, c.Photo)
		if err != nil {
			return err
		}
		msg.Photo = entity.PhotoSizes(record)
		msg.Caption = c.Caption
		return nil
	})
}

// send xabarni tayyorlash, saqlash va UI holatini yangilash.
// UI holati faqat xabar saqlangandan keyin o'zgaradi.
func (s *Session) send(out outgoing, fill func(*entity.Message) error) (*tgbotapi.Message, error) {
	chat, err := s.store.Chat(out.chatID)
	if err != nil {
		return nil, err
	}

	replyTo, err := s.resolveReply(out.chatID, out.replyToMessageID, out.allowWithoutReply)
	if err != nil {
		return nil, err
	}

	id, err := s.store.NextMessageID(out.chatID)
	if err != nil {
		return nil, err
	}

	msg := entity.Message{
		ID:      id,
		Chat:    chat,
		From:    s.bot,
		Date:    s.now(),
		ReplyTo: replyTo,
	}
	if out.markup.Kind != entity.MarkupRemove {
		msg.Markup = out.markup
	}
	// Fayl yozuvi yaratilishidan oldin tekshiramiz
	if err := s.store.ValidateMessage(msg); err != nil {
		return nil, err
	}
	if err := fill(&msg); err != nil {
		return nil, err
	}

	stored, err := s.store.AppendMessage(msg)
	if err != nil {
		return nil, err
	}

	if err := s.applyUIState(out.chatID, replyTo, out.markup); err != nil {
		return nil, err
	}
	return stored.API(), nil
}

// resolveReply reply_to_message_id ni xabarga aylantirish.
// allow_sending_without_reply bo'lsa topilmagan xabar jimgina tashlab ketiladi.
func (s *Session) resolveReply(chatID int64, messageID *int, allowWithoutReply bool) (*entity.Message, error) {
	if messageID == nil {
		return nil, nil
	}

	msg, err := s.store.GetMessage(chatID, *messageID)
	if err != nil {
		if allowWithoutReply && errors.Is(err, entity.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reply target: %w", err)
	}
	return &msg, nil
}

// applyUIState klaviatura turidagi markupni chat holatiga yozish.
// WithSelectiveUIState yoqilgan bo'lsa selective markup faqat reply egasiga tegadi.
func (s *Session) applyUIState(chatID int64, replyTo *entity.Message, markup entity.Markup) error {
	var update entity.UIStateUpdate
	switch markup.Kind {
	case entity.MarkupNone, entity.MarkupInline:
		return nil
	case entity.MarkupRemove:
		update = entity.ClearReplyMarkup()
	default:
		update = entity.SetReplyMarkup(markup)
	}

	if s.selective && markup.Selective() && replyTo != nil {
		return s.store.SetSelectiveUIState(chatID, []int64{replyTo.From.ID}, update)
	}
	return s.store.SetChatUIState(chatID, update)
}

func (s *Session) answerCallbackQuery(c entity.AnswerCallbackQueryCall) (bool, error) {
	err := s.store.RecordCallbackAnswer(entity.CallbackAnswer{
		CallbackQueryID: c.CallbackQueryID,
		Text:            c.Text,
		ShowAlert:       c.ShowAlert,
		URL:             c.URL,
		CacheTime:       c.CacheTime,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// editMessage manzilni tekshirib, xabarning yangi nusxasini saqlash
func (s *Session) editMessage(target entity.EditTarget, edit func(entity.Message) entity.Message) (*tgbotapi.Message, error) {
	switch {
	case target.ChatID == nil && target.MessageID == nil:
		return nil, fmt.Errorf("inline message %q edit: %w", target.InlineMessageID, entity.ErrUnsupportedOperation)
	case target.ChatID == nil:
		return nil, fmt.Errorf("edit of message %d without chat_id: %w", *target.MessageID, entity.ErrMalformedRequest)
	case target.MessageID == nil:
		return nil, fmt.Errorf("edit in chat %d without message_id (tgbotapi helpers drop message_id 0, send it via MakeRequest or Session.Handle): %w",
			*target.ChatID, entity.ErrMalformedRequest)
	}

	current, err := s.store.GetMessage(*target.ChatID, *target.MessageID)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.ReplaceMessage(edit(current).WithEditDate(s.now()))
	if err != nil {
		return nil, err
	}
	return stored.API(), nil
}

// warnDroppedMessageID chat_id bor, message_id yo'q tahrir/o'chirish so'rovi haqida ogohlantirish.
// tgbotapi yordamchilari 0 qiymatli message_id ni yubormaydi.
func (s *Session) warnDroppedMessageID(method string, params url.Values) {
	switch method {
	case entity.MethodEditMessageText, entity.MethodEditMessageCaption,
		entity.MethodEditMessageReplyMarkup, entity.MethodDeleteMessage:
	default:
		return
	}
	if params.Get("chat_id") == "" || params.Has("message_id") || params.Has("inline_message_id") {
		return
	}
	s.logger.Warn("message_id missing; tgbotapi helpers drop message_id 0, pass it via MakeRequest params or Session.Handle",
		"method", method, "chat_id", params.Get("chat_id"))
}

// okResponse {"ok":true,"result":...} javobini yasash
func okResponse(req *http.Request, result any) (*http.Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	body, err := json.Marshal(tgbotapi.APIResponse{Ok: true, Result: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}

	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
