// Package tgmock bot API serverini jarayon ichida almashtiruvchi test fixture.
// Ilova haqiqiy *tgbotapi.BotAPI oladi, uning barcha so'rovlari Session orqali
// xotiradagi state store ga tushadi, testlar esa foydalanuvchi nomidan xabar yuborib,
// tugmalarni bosib, natijani tarix va UI holatidan tekshiradi.
package tgmock

import (
	"github.com/yourusername/tgmock/internal/delivery/telegram"
	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
	"github.com/yourusername/tgmock/internal/infrastructure/storage"
	"github.com/yourusername/tgmock/internal/usecase"
)

// Domen turlari
type (
	Message        = entity.Message
	MessageKey     = entity.MessageKey
	Markup         = entity.Markup
	MarkupKind     = entity.MarkupKind
	UIState        = entity.UIState
	UIStateUpdate  = entity.UIStateUpdate
	CallbackAnswer = entity.CallbackAnswer
	FileRecord     = entity.FileRecord
	FileInput      = entity.FileInput
	StorageKey     = entity.StorageKey
)

// Bot API chaqiruvlari
type (
	Call                       = entity.Call
	GetMeCall                  = entity.GetMeCall
	SendMessageCall            = entity.SendMessageCall
	SendPhotoCall              = entity.SendPhotoCall
	AnswerCallbackQueryCall    = entity.AnswerCallbackQueryCall
	SetChatMenuButtonCall      = entity.SetChatMenuButtonCall
	EditTarget                 = entity.EditTarget
	EditMessageTextCall        = entity.EditMessageTextCall
	EditMessageCaptionCall     = entity.EditMessageCaptionCall
	EditMessageReplyMarkupCall = entity.EditMessageReplyMarkupCall
	DeleteMessageCall          = entity.DeleteMessageCall
	UnsupportedCall            = entity.UnsupportedCall
	MalformedCall              = entity.MalformedCall
)

// Fixture qismlari
type (
	StateRepository = repository.StateRepository
	FSMStorage      = repository.FSMStorage
	Control         = usecase.Control
	PrivateChat     = usecase.PrivateChat
	FSMContext      = usecase.FSMContext
	ButtonSelector  = usecase.ButtonSelector
	Dispatcher      = usecase.Dispatcher
	DispatcherFunc  = usecase.DispatcherFunc
	Session         = telegram.Session
	Router          = telegram.Router
	Event           = telegram.Event
	HandlerFunc     = telegram.HandlerFunc
)

// Markup turlari
const (
	MarkupNone       = entity.MarkupNone
	MarkupInline     = entity.MarkupInline
	MarkupKeyboard   = entity.MarkupKeyboard
	MarkupForceReply = entity.MarkupForceReply
	MarkupRemove     = entity.MarkupRemove
)

// DefaultDestiny suhbat holatining standart doirasi
const DefaultDestiny = entity.DefaultDestiny

// Xatolik turlari; errors.Is bilan tekshiriladi
var (
	ErrDuplicateKey         = entity.ErrDuplicateKey
	ErrNotFound             = entity.ErrNotFound
	ErrValidation           = entity.ErrValidation
	ErrConfiguration        = entity.ErrConfiguration
	ErrUnsupportedOperation = entity.ErrUnsupportedOperation
	ErrMalformedRequest     = entity.ErrMalformedRequest
)

// Tugma selectorlari
var (
	ByText         = usecase.ByText
	ByTextContains = usecase.ByTextContains
	ByData         = usecase.ByData
	ByDataPrefix   = usecase.ByDataPrefix
	And            = usecase.And
	Or             = usecase.Or
	Not            = usecase.Not
)

// Konstruktorlar
var (
	FileBytes           = entity.FileBytes
	FileRef             = entity.FileRef
	MarkupOf            = entity.MarkupOf
	NewStorageKey       = entity.NewStorageKey
	NewRouter           = telegram.NewRouter
	NewMemoryFSMStorage = storage.NewMemoryFSMStorage
	NewRedisFSMStorage  = storage.NewRedisFSMStorage
	NewPebbleFSMStorage = storage.NewPebbleFSMStorage
	NewSQLiteFSMStorage = storage.NewSQLiteFSMStorage
	NewFSMContext       = usecase.NewFSMContext
)

// CallsOf jurnaldan faqat T turidagi chaqiruvlarni ajratib olish
func CallsOf[T Call](calls []Call) []T {
	return entity.CallsOf[T](calls)
}
