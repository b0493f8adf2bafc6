package repository

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

// StateRepository simulyatsiya qilingan backend holati bilan ishlash uchun interface
type StateRepository interface {
	FileRepository

	// RegisterChat chatni (va ixtiyoriy boshlang'ich tarixni) ro'yxatdan o'tkazish
	RegisterChat(chat tgbotapi.Chat, history ...entity.Message) error

	// Chat ro'yxatdan o'tgan chatni olish
	Chat(chatID int64) (tgbotapi.Chat, error)

	// Chats barcha chatlar (ro'yxatdan o'tish tartibida)
	Chats() []tgbotapi.Chat

	// NextMessageID keyingi xabar oladigan id (teshiklar ham sanaladi)
	NextMessageID(chatID int64) (int, error)

	// ValidateMessage xabarni hech narsa yozmasdan tekshirish
	ValidateMessage(message entity.Message) error

	// AppendMessage xabarni tarix oxiriga qo'shish
	AppendMessage(message entity.Message) (entity.Message, error)

	// GetMessage xabarni olish
	GetMessage(chatID int64, messageID int) (entity.Message, error)

	// ReplaceMessage mavjud xabarni yangi qiymat bilan almashtirish
	ReplaceMessage(message entity.Message) (entity.Message, error)

	// DeleteMessage xabar o'rnini teshikka aylantirish
	DeleteMessage(chatID int64, messageID int) error

	// ChatHistory tirik xabarlar, qo'shilish tartibida
	ChatHistory(chatID int64) ([]entity.Message, error)

	// IncrementUpdateID update id hisoblagichini oshirish
	IncrementUpdateID() int

	// NextCallbackQueryID yangi callback query id
	NextCallbackQueryID() string

	// RecordCallbackAnswer callback javobini saqlash
	RecordCallbackAnswer(answer entity.CallbackAnswer) error

	// GetCallbackAnswer callback javobini olish
	GetCallbackAnswer(callbackQueryID string) (entity.CallbackAnswer, error)

	// GetUserState foydalanuvchining faol UI holati
	GetUserState(chatID, userID int64) (entity.UIState, error)

	// SetChatUIState chat bo'yicha UI holatni yangilash (mavjud shaxsiy holatlarga ham tarqaladi)
	SetChatUIState(chatID int64, update entity.UIStateUpdate) error

	// SetSelectiveUIState faqat berilgan foydalanuvchilarning UI holatini yangilash
	SetSelectiveUIState(chatID int64, userIDs []int64, update entity.UIStateUpdate) error
}

// FileRepository kontent bo'yicha adreslangan fayllar jadvali
type FileRepository interface {
	// ResolveOrCreateFile kontent yoki local id bo'yicha fayl yozuvini olish/yaratish
	ResolveOrCreateFile(userID int64, input entity.FileInput) (entity.FileRecord, error)
}
