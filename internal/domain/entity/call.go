package entity

import "net/url"

// Method nomlari
const (
	MethodGetMe                  = "getMe"
	MethodSendMessage            = "sendMessage"
	MethodSendPhoto              = "sendPhoto"
	MethodAnswerCallbackQuery    = "answerCallbackQuery"
	MethodSetChatMenuButton      = "setChatMenuButton"
	MethodEditMessageText        = "editMessageText"
	MethodEditMessageCaption     = "editMessageCaption"
	MethodEditMessageReplyMarkup = "editMessageReplyMarkup"
	MethodDeleteMessage          = "deleteMessage"
)

// Call ilova bot API ga yuborgan chaqiruv. To'plam yopiq: faqat shu paketdagi turlar.
type Call interface {
	Method() string
	isCall()
}

// GetMeCall getMe
type GetMeCall struct{}

// SendMessageCall sendMessage
type SendMessageCall struct {
	ChatID                   int64
	Text                     string
	ParseMode                string
	ReplyToMessageID         *int
	AllowSendingWithoutReply bool
	ReplyMarkup              Markup
}

// SendPhotoCall sendPhoto. Photo yoki yuklangan baytlar (URL ham shu yerda), yoki avvalgi file_id.
type SendPhotoCall struct {
	ChatID                   int64
	Photo                    FileInput
	Caption                  string
	ParseMode                string
	ReplyToMessageID         *int
	AllowSendingWithoutReply bool
	ReplyMarkup              Markup
}

// AnswerCallbackQueryCall answerCallbackQuery
type AnswerCallbackQueryCall struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
	URL             string
	CacheTime       int
}

// SetChatMenuButtonCall setChatMenuButton
type SetChatMenuButtonCall struct {
	ChatID     *int64
	MenuButton string
}

// EditTarget tahrir qilinadigan xabar manzili
type EditTarget struct {
	ChatID          *int64
	MessageID       *int
	InlineMessageID string
}

// EditMessageTextCall editMessageText
type EditMessageTextCall struct {
	Target      EditTarget
	Text        string
	ParseMode   string
	ReplyMarkup Markup
}

// EditMessageCaptionCall editMessageCaption
type EditMessageCaptionCall struct {
	Target      EditTarget
	Caption     string
	ParseMode   string
	ReplyMarkup Markup
}

// EditMessageReplyMarkupCall editMessageReplyMarkup
type EditMessageReplyMarkupCall struct {
	Target      EditTarget
	ReplyMarkup Markup
}

// DeleteMessageCall deleteMessage
type DeleteMessageCall struct {
	ChatID    int64
	MessageID int
}

// UnsupportedCall fixture modellashtirmaydigan method
type UnsupportedCall struct {
	Name   string
	Params url.Values
}

// MalformedCall parametrlarini o'qib bo'lmagan chaqiruv
type MalformedCall struct {
	Name   string
	Params url.Values
	Err    error
}

func (GetMeCall) Method() string                  { return MethodGetMe }
func (SendMessageCall) Method() string            { return MethodSendMessage }
func (SendPhotoCall) Method() string              { return MethodSendPhoto }
func (AnswerCallbackQueryCall) Method() string    { return MethodAnswerCallbackQuery }
func (SetChatMenuButtonCall) Method() string      { return MethodSetChatMenuButton }
func (EditMessageTextCall) Method() string        { return MethodEditMessageText }
func (EditMessageCaptionCall) Method() string     { return MethodEditMessageCaption }
func (EditMessageReplyMarkupCall) Method() string { return MethodEditMessageReplyMarkup }
func (DeleteMessageCall) Method() string          { return MethodDeleteMessage }
func (c UnsupportedCall) Method() string          { return c.Name }
func (c MalformedCall) Method() string            { return c.Name }

func (GetMeCall) isCall()                  {}
func (SendMessageCall) isCall()            {}
func (SendPhotoCall) isCall()              {}
func (AnswerCallbackQueryCall) isCall()    {}
func (SetChatMenuButtonCall) isCall()      {}
func (EditMessageTextCall) isCall()        {}
func (EditMessageCaptionCall) isCall()     {}
func (EditMessageReplyMarkupCall) isCall() {}
func (DeleteMessageCall) isCall()          {}
func (UnsupportedCall) isCall()            {}
func (MalformedCall) isCall()              {}

// CallsOf berilgan turdagi chaqiruvlarni ajratib olish
func CallsOf[T Call](calls []Call) []T {
	var out []T
	for _, call := range calls {
		if c, ok := call.(T); ok {
			out = append(out, c)
		}
	}
	return out
}
