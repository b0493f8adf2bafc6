package repository

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

// HistoryParser Excel fayldan chatning boshlang'ich tarixini o'qish uchun interface
type HistoryParser interface {
	// ParseHistory Excel fayldan xabarlarni o'qish
	ParseHistory(ctx context.Context, filePath string, chat tgbotapi.Chat) ([]entity.Message, error)

	// ParseHistoryFromBytes byte array dan parse qilish
	ParseHistoryFromBytes(ctx context.Context, data []byte, chat tgbotapi.Chat) ([]entity.Message, error)
}
