package usecase

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ButtonSelector inline tugmani tanlovchi predikat
type ButtonSelector func(button tgbotapi.InlineKeyboardButton) bool

// ByText matni aynan teng tugma
func ByText(text string) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		return b.Text == text
	}
}

// ByTextContains matnida substring bor tugma
func ByTextContains(substr string) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		return strings.Contains(b.Text, substr)
	}
}

// ByData callback_data si aynan teng tugma
func ByData(data string) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		return b.CallbackData != nil && *b.CallbackData == data
	}
}

// ByDataPrefix callback_data si prefiks bilan boshlanadigan tugma
func ByDataPrefix(prefix string) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		return b.CallbackData != nil && strings.HasPrefix(*b.CallbackData, prefix)
	}
}

// And hamma selectorlar mos kelsa
func And(selectors ...ButtonSelector) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		for _, s := range selectors {
			if !s(b) {
				return false
			}
		}
		return true
	}
}

// Or kamida bittasi mos kelsa
func Or(selectors ...ButtonSelector) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		for _, s := range selectors {
			if s(b) {
				return true
			}
		}
		return false
	}
}

// Not inkor
func Not(selector ButtonSelector) ButtonSelector {
	return func(b tgbotapi.InlineKeyboardButton) bool {
		return !selector(b)
	}
}
