package parser

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

type historyParser struct {
	logger *slog.Logger
}

// NewHistoryParser yangi Excel tarix parser yaratish
func NewHistoryParser(logger *slog.Logger) repository.HistoryParser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &historyParser{logger: logger}
}

// ParseHistory Excel fayldan xabarlarni o'qish
func (h *historyParser) ParseHistory(ctx context.Context, filePath string, chat tgbotapi.Chat) ([]entity.Message, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return h.parseExcelFile(f, chat)
}

// ParseHistoryFromBytes byte array dan parse qilish
func (h *historyParser) ParseHistoryFromBytes(ctx context.Context, data []byte, chat tgbotapi.Chat) ([]entity.Message, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return h.parseExcelFile(f, chat)
}

// parseExcelFile birinchi sheetdan xabarlarni o'qish
func (h *historyParser) parseExcelFile(f *excelize.File, chat tgbotapi.Chat) ([]entity.Message, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets: %w", entity.ErrValidation)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty: %w", entity.ErrValidation)
	}

	// Birinchi ustun raqam bo'lsa header yo'q
	startRow := 1
	columnMap := defaultColumns()
	if len(rows[0]) > 0 {
		if _, err := strconv.ParseInt(strings.TrimSpace(rows[0][0]), 10, 64); err == nil {
			startRow = 0
			h.logger.Debug("history sheet has no header", "sheet", sheets[0])
		} else {
			columnMap = mapColumns(rows[0])
			h.logger.Debug("history column mapping", "sheet", sheets[0], "columns", columnMap)
		}
	}

	if _, ok := columnMap["from_id"]; !ok {
		return nil, fmt.Errorf("history sheet %q has no sender id column: %w", sheets[0], entity.ErrValidation)
	}
	if _, ok := columnMap["text"]; !ok {
		return nil, fmt.Errorf("history sheet %q has no text column: %w", sheets[0], entity.ErrValidation)
	}

	now := time.Now()
	var messages []entity.Message
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		text := cell(row, columnMap, "text")
		if text == "" {
			continue
		}

		fromID, err := strconv.ParseInt(cell(row, columnMap, "from_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: sender id %q: %w", i+1, cell(row, columnMap, "from_id"), entity.ErrValidation)
		}

		firstName, lastName, _ := strings.Cut(cell(row, columnMap, "from_name"), " ")
		msg := entity.Message{
			ID:       len(messages),
			Chat:     chat,
			From:     tgbotapi.User{ID: fromID, FirstName: firstName, LastName: lastName},
			Date:     now,
			Text:     text,
			Entities: entity.CommandEntities(text),
		}

		if raw := cell(row, columnMap, "reply_to"); raw != "" {
			replyID, err := strconv.Atoi(raw)
			if err != nil || replyID < 0 || replyID >= msg.ID {
				return nil, fmt.Errorf("row %d: reply_to %q does not point to an earlier message: %w", i+1, raw, entity.ErrValidation)
			}
			reply := messages[replyID]
			msg.ReplyTo = &reply
		}

		messages = append(messages, msg)
	}

	h.logger.Debug("history parsed", "chat_id", chat.ID, "messages", len(messages))
	return messages, nil
}

// defaultColumns header bo'lmaganda: from_id | from_name | text | reply_to
func defaultColumns() map[string]int {
	return map[string]int{
		"from_id":   0,
		"from_name": 1,
		"text":      2,
		"reply_to":  3,
	}
}

// mapColumns header qatoridan column mapping yaratish
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))

		switch {
		case contains(colName, "reply", "javob", "ответ"):
			columnMap["reply_to"] = i
		case contains(colName, "from_id", "user_id", "sender_id", "id"):
			columnMap["from_id"] = i
		case contains(colName, "name", "ism", "имя", "from"):
			columnMap["from_name"] = i
		case contains(colName, "text", "message", "xabar", "matn", "текст"):
			columnMap["text"] = i
		}
	}

	return columnMap
}

// cell ustun qiymatini olish (bo'lmasa bo'sh)
func cell(row []string, columnMap map[string]int, column string) string {
	idx, ok := columnMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}
