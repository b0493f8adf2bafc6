package entity

import (
	"strings"
	"time"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message simulyatsiya qilingan chatdagi xabar.
// Saqlangandan keyin o'zgartirilmaydi: tahrir With... orqali yangi qiymat yasaydi.
type Message struct {
	ID       int
	Chat     tgbotapi.Chat
	From     tgbotapi.User
	Date     time.Time
	EditDate time.Time

	Text     string
	Caption  string
	Entities []tgbotapi.MessageEntity

	ReplyTo *Message
	Markup  Markup

	Photo    []tgbotapi.PhotoSize
	Document *tgbotapi.Document
	Contact  *tgbotapi.Contact
}

// MessageKey xabarning chat ichidagi kaliti
type MessageKey struct {
	ChatID    int64
	MessageID int
}

// Key xabar kalitini olish
func (m Message) Key() MessageKey {
	return MessageKey{ChatID: m.Chat.ID, MessageID: m.ID}
}

// WithText matni almashtirilgan nusxa
func (m Message) WithText(text string) Message {
	m.Text = text
	m.Entities = CommandEntities(text)
	return m
}

// WithCaption izohi almashtirilgan nusxa
func (m Message) WithCaption(caption string) Message {
	m.Caption = caption
	return m
}

// WithMarkup markupi almashtirilgan nusxa
func (m Message) WithMarkup(markup Markup) Message {
	m.Markup = markup
	return m
}

// WithEditDate tahrir vaqti qo'yilgan nusxa
func (m Message) WithEditDate(at time.Time) Message {
	m.EditDate = at
	return m
}

// IsCommand xabar "/" bilan boshlanuvchi buyruqmi
func (m Message) IsCommand() bool {
	return len(m.Entities) > 0 && m.Entities[0].Type == "bot_command" && m.Entities[0].Offset == 0
}

// API xabarni tgbotapi ko'rinishiga o'tkazish.
// tgbotapi.Message faqat inline klaviaturani ko'tara oladi; boshqa markup turlari tushib qoladi.
func (m Message) API() *tgbotapi.Message {
	chat := m.Chat
	from := m.From
	out := &tgbotapi.Message{
		MessageID: m.ID,
		From:      &from,
		Date:      int(m.Date.Unix()),
		Chat:      &chat,
		Text:      m.Text,
		Caption:   m.Caption,
		Entities:  m.Entities,
		Photo:     m.Photo,
		Document:  m.Document,
		Contact:   m.Contact,
	}
	if !m.EditDate.IsZero() {
		out.EditDate = int(m.EditDate.Unix())
	}
	if m.ReplyTo != nil {
		// Platforma reply ichidagi reply'ni qaytarmaydi
		reply := *m.ReplyTo
		reply.ReplyTo = nil
		out.ReplyToMessage = reply.API()
	}
	if m.Markup.Kind == MarkupInline && m.Markup.Inline != nil {
		inline := *m.Markup.Inline
		out.ReplyMarkup = &inline
	}
	return out
}

// CommandEntities buyruq bilan boshlangan matn uchun bot_command entity yaratish
func CommandEntities(text string) []tgbotapi.MessageEntity {
	if !strings.HasPrefix(text, "/") {
		return nil
	}
	command := text
	if i := strings.IndexAny(text, " \n\t"); i >= 0 {
		command = text[:i]
	}
	return []tgbotapi.MessageEntity{{
		Type:   "bot_command",
		Offset: 0,
		Length: len(utf16.Encode([]rune(command))),
	}}
}
