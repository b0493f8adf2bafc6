package entity

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MarkupKind reply_markup turi
type MarkupKind int

const (
	MarkupNone MarkupKind = iota
	MarkupInline
	MarkupKeyboard
	MarkupForceReply
	MarkupRemove
)

// String turini matn ko'rinishida qaytarish
func (k MarkupKind) String() string {
	switch k {
	case MarkupNone:
		return "none"
	case MarkupInline:
		return "inline_keyboard"
	case MarkupKeyboard:
		return "keyboard"
	case MarkupForceReply:
		return "force_reply"
	case MarkupRemove:
		return "remove_keyboard"
	default:
		return fmt.Sprintf("markup(%d)", int(k))
	}
}

// Markup reply_markup ning tegli birlashmasi. Kind qaysi maydon to'lganini bildiradi.
type Markup struct {
	Kind       MarkupKind
	Inline     *tgbotapi.InlineKeyboardMarkup
	Keyboard   *tgbotapi.ReplyKeyboardMarkup
	ForceReply *tgbotapi.ForceReply
	Remove     *tgbotapi.ReplyKeyboardRemove
}

// NoMarkup bo'sh markup
func NoMarkup() Markup {
	return Markup{}
}

// InlineMarkup inline klaviatura
func InlineMarkup(m tgbotapi.InlineKeyboardMarkup) Markup {
	return Markup{Kind: MarkupInline, Inline: &m}
}

// KeyboardMarkup oddiy (reply) klaviatura
func KeyboardMarkup(m tgbotapi.ReplyKeyboardMarkup) Markup {
	return Markup{Kind: MarkupKeyboard, Keyboard: &m}
}

// ForceReplyMarkup majburiy javob
func ForceReplyMarkup(m tgbotapi.ForceReply) Markup {
	return Markup{Kind: MarkupForceReply, ForceReply: &m}
}

// RemoveMarkup klaviaturani olib tashlash buyrug'i
func RemoveMarkup(m tgbotapi.ReplyKeyboardRemove) Markup {
	return Markup{Kind: MarkupRemove, Remove: &m}
}

// MarkupOf tgbotapi markup qiymatidan Markup yaratish.
// tgbotapi.BaseChat.ReplyMarkup interface{} bo'lgani uchun ham qiymat, ham pointer qabul qilinadi.
func MarkupOf(v interface{}) (Markup, error) {
	switch m := v.(type) {
	case nil:
		return NoMarkup(), nil
	case Markup:
		return m, nil
	case tgbotapi.InlineKeyboardMarkup:
		return InlineMarkup(m), nil
	case *tgbotapi.InlineKeyboardMarkup:
		if m == nil {
			return NoMarkup(), nil
		}
		return InlineMarkup(*m), nil
	case tgbotapi.ReplyKeyboardMarkup:
		return KeyboardMarkup(m), nil
	case *tgbotapi.ReplyKeyboardMarkup:
		if m == nil {
			return NoMarkup(), nil
		}
		return KeyboardMarkup(*m), nil
	case tgbotapi.ForceReply:
		return ForceReplyMarkup(m), nil
	case *tgbotapi.ForceReply:
		if m == nil {
			return NoMarkup(), nil
		}
		return ForceReplyMarkup(*m), nil
	case tgbotapi.ReplyKeyboardRemove:
		return RemoveMarkup(m), nil
	case *tgbotapi.ReplyKeyboardRemove:
		if m == nil {
			return NoMarkup(), nil
		}
		return RemoveMarkup(*m), nil
	default:
		return Markup{}, fmt.Errorf("reply markup of type %T: %w", v, ErrMalformedRequest)
	}
}

// IsZero markup yo'qmi
func (m Markup) IsZero() bool {
	return m.Kind == MarkupNone
}

// Value tgbotapi.BaseChat.ReplyMarkup ga beriladigan qiymat; bo'sh markup uchun nil
func (m Markup) Value() interface{} {
	switch {
	case m.Kind == MarkupInline && m.Inline != nil:
		return *m.Inline
	case m.Kind == MarkupKeyboard && m.Keyboard != nil:
		return *m.Keyboard
	case m.Kind == MarkupForceReply && m.ForceReply != nil:
		return *m.ForceReply
	case m.Kind == MarkupRemove && m.Remove != nil:
		return *m.Remove
	default:
		return nil
	}
}

// Selective markup faqat ayrim foydalanuvchilarga tegishlimi
func (m Markup) Selective() bool {
	switch m.Kind {
	case MarkupKeyboard:
		return m.Keyboard.Selective
	case MarkupForceReply:
		return m.ForceReply.Selective
	case MarkupRemove:
		return m.Remove.Selective
	default:
		return false
	}
}

// InlineButtons barcha qatorlardagi inline tugmalarni bitta ro'yxatga yoyish
func (m Markup) InlineButtons() []tgbotapi.InlineKeyboardButton {
	if m.Kind != MarkupInline || m.Inline == nil {
		return nil
	}
	var buttons []tgbotapi.InlineKeyboardButton
	for _, row := range m.Inline.InlineKeyboard {
		buttons = append(buttons, row...)
	}
	return buttons
}
