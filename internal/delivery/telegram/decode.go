package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

const maxUploadMemory = 32 << 20

// uploadedFile multipart orqali kelgan fayl
type uploadedFile struct {
	name string
	data []byte
}

// readRequest so'rov parametrlarini va yuklangan fayllarni to'liq xotiraga o'qish
func readRequest(req *http.Request) (url.Values, map[string]uploadedFile, error) {
	files := make(map[string]uploadedFile)

	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := req.ParseForm(); err != nil {
			return nil, nil, fmt.Errorf("failed to parse form: %v: %w", err, entity.ErrMalformedRequest)
		}
		return req.PostForm, files, nil
	}

	if err := req.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, fmt.Errorf("failed to parse multipart form: %v: %w", err, entity.ErrMalformedRequest)
	}
	defer req.MultipartForm.RemoveAll()

	for field, headers := range req.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open uploaded %s: %w", field, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read uploaded %s: %w", field, err)
		}
		files[field] = uploadedFile{name: headers[0].Filename, data: data}
	}

	return req.PostForm, files, nil
}

// decodeCall method nomi va parametrlardan entity.Call yasash.
// Parametrlarni o'qib bo'lmasa entity.MalformedCall qaytadi.
func decodeCall(method string, params url.Values, files map[string]uploadedFile) entity.Call {
	p := &paramReader{params: params}

	var call entity.Call
	switch method {
	case entity.MethodGetMe:
		call = entity.GetMeCall{}
	case entity.MethodSendMessage:
		call = entity.SendMessageCall{
			ChatID:                   p.requiredInt64("chat_id"),
			Text:                     params.Get("text"),
			ParseMode:                params.Get("parse_mode"),
			ReplyToMessageID:         p.optionalInt("reply_to_message_id"),
			AllowSendingWithoutReply: p.bool("allow_sending_without_reply"),
			ReplyMarkup:              p.markup("reply_markup"),
		}
	case entity.MethodSendPhoto:
		call = entity.SendPhotoCall{
			ChatID:                   p.requiredInt64("chat_id"),
			Photo:                    p.photo("photo", files),
			Caption:                  params.Get("caption"),
			ParseMode:                params.Get("parse_mode"),
			ReplyToMessageID:         p.optionalInt("reply_to_message_id"),
			AllowSendingWithoutReply: p.bool("allow_sending_without_reply"),
			ReplyMarkup:              p.markup("reply_markup"),
		}
	case entity.MethodAnswerCallbackQuery:
		call = entity.AnswerCallbackQueryCall{
			CallbackQueryID: p.required("callback_query_id"),
			Text:            params.Get("text"),
			ShowAlert:       p.bool("show_alert"),
			URL:             params.Get("url"),
			CacheTime:       p.int("cache_time"),
		}
	case entity.MethodSetChatMenuButton:
		call = entity.SetChatMenuButtonCall{
			ChatID:     p.optionalInt64("chat_id"),
			MenuButton: params.Get("menu_button"),
		}
	case entity.MethodEditMessageText:
		call = entity.EditMessageTextCall{
			Target:      p.editTarget(),
			Text:        params.Get("text"),
			ParseMode:   params.Get("parse_mode"),
			ReplyMarkup: p.markup("reply_markup"),
		}
	case entity.MethodEditMessageCaption:
		call = entity.EditMessageCaptionCall{
			Target:      p.editTarget(),
			Caption:     params.Get("caption"),
			ParseMode:   params.Get("parse_mode"),
			ReplyMarkup: p.markup("reply_markup"),
		}
	case entity.MethodEditMessageReplyMarkup:
		call = entity.EditMessageReplyMarkupCall{
			Target:      p.editTarget(),
			ReplyMarkup: p.markup("reply_markup"),
		}
	case entity.MethodDeleteMessage:
		call = entity.DeleteMessageCall{
			ChatID:    p.requiredInt64("chat_id"),
			MessageID: int(p.requiredInt64("message_id")),
		}
	default:
		return entity.UnsupportedCall{Name: method, Params: params}
	}

	if p.err != nil {
		return entity.MalformedCall{Name: method, Params: params, Err: p.err}
	}
	return call
}

// paramReader birinchi xatolikni eslab qoluvchi parametr o'quvchi
type paramReader struct {
	params url.Values
	err    error
}

func (p *paramReader) fail(key, value string, reason string) {
	if p.err == nil {
		p.err = fmt.Errorf("parameter %s=%q: %s: %w", key, value, reason, entity.ErrMalformedRequest)
	}
}

func (p *paramReader) required(key string) string {
	value := p.params.Get(key)
	if value == "" {
		p.fail(key, value, "required")
	}
	return value
}

func (p *paramReader) requiredInt64(key string) int64 {
	value := p.params.Get(key)
	if value == "" {
		p.fail(key, value, "required")
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		p.fail(key, value, "not an integer")
	}
	return n
}

func (p *paramReader) optionalInt64(key string) *int64 {
	if p.params.Get(key) == "" {
		return nil
	}
	n := p.requiredInt64(key)
	return &n
}

func (p *paramReader) optionalInt(key string) *int {
	n := p.optionalInt64(key)
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func (p *paramReader) int(key string) int {
	if n := p.optionalInt(key); n != nil {
		return *n
	}
	return 0
}

func (p *paramReader) bool(key string) bool {
	value := p.params.Get(key)
	if value == "" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(key, value, "not a boolean")
	}
	return b
}

func (p *paramReader) markup(key string) entity.Markup {
	value := p.params.Get(key)
	markup, err := decodeMarkup(value)
	if err != nil {
		p.fail(key, value, err.Error())
	}
	return markup
}

func (p *paramReader) editTarget() entity.EditTarget {
	return entity.EditTarget{
		ChatID:          p.optionalInt64("chat_id"),
		MessageID:       p.optionalInt("message_id"),
		InlineMessageID: p.params.Get("inline_message_id"),
	}
}

// photo yuklangan fayl, URL yoki avval berilgan file_id
func (p *paramReader) photo(key string, files map[string]uploadedFile) entity.FileInput {
	if f, ok := files[key]; ok {
		return entity.FileBytes(f.name, f.data)
	}

	value := p.required(key)
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return entity.FileBytes("", []byte(value))
	}
	return entity.FileRef(value)
}

// decodeMarkup reply_markup JSON ni kalitlariga qarab turga ajratish
func decodeMarkup(raw string) (entity.Markup, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return entity.NoMarkup(), nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return entity.Markup{}, fmt.Errorf("invalid json: %v", err)
	}

	switch {
	case probe["inline_keyboard"] != nil:
		var m tgbotapi.InlineKeyboardMarkup
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return entity.Markup{}, fmt.Errorf("invalid inline keyboard: %v", err)
		}
		return entity.InlineMarkup(m), nil
	case probe["keyboard"] != nil:
		var m tgbotapi.ReplyKeyboardMarkup
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return entity.Markup{}, fmt.Errorf("invalid keyboard: %v", err)
		}
		return entity.KeyboardMarkup(m), nil
	case probe["force_reply"] != nil:
		var m tgbotapi.ForceReply
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return entity.Markup{}, fmt.Errorf("invalid force reply: %v", err)
		}
		return entity.ForceReplyMarkup(m), nil
	case probe["remove_keyboard"] != nil:
		var m tgbotapi.ReplyKeyboardRemove
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return entity.Markup{}, fmt.Errorf("invalid keyboard removal: %v", err)
		}
		return entity.RemoveMarkup(m), nil
	default:
		return entity.Markup{}, fmt.Errorf("unknown reply markup kind")
	}
}
