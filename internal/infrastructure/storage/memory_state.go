package storage

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

// MaxCallbackDataBytes inline tugma callback_data uzunligi chegarasi
const MaxCallbackDataBytes = 64

// chatRecord bitta chatning holati
type chatRecord struct {
	chat      tgbotapi.Chat
	slots     []*entity.Message // nil - o'chirilgan xabar o'rni
	state     entity.UIState
	selective map[int64]entity.UIState
}

type memoryState struct {
	memoryFiles

	chats    map[int64]*chatRecord
	order    []int64
	messages map[entity.MessageKey]entity.Message
	answers  map[string]entity.CallbackAnswer

	lastUpdateID        int
	lastCallbackQueryID int
}

// NewMemoryState in-memory state store yaratish.
// Bitta fixture uchun bitta store; parallel foydalanish uchun mo'ljallanmagan.
func NewMemoryState() repository.StateRepository {
	return &memoryState{
		memoryFiles: newMemoryFiles(),
		chats:       make(map[int64]*chatRecord),
		messages:    make(map[entity.MessageKey]entity.Message),
		answers:     make(map[string]entity.CallbackAnswer),
	}
}

// RegisterChat chatni ro'yxatdan o'tkazish
func (m *memoryState) RegisterChat(chat tgbotapi.Chat, history ...entity.Message) error {
	if _, exists := m.chats[chat.ID]; exists {
		return fmt.Errorf("chat %d already registered: %w", chat.ID, entity.ErrDuplicateKey)
	}

	// Avval hammasini tekshiramiz, keyin yozamiz
	for i, msg := range history {
		if msg.Chat.ID != chat.ID {
			return fmt.Errorf("history message %d belongs to chat %d, not %d: %w", i, msg.Chat.ID, chat.ID, entity.ErrValidation)
		}
		if msg.ID != i {
			return fmt.Errorf("history message at position %d has id %d: %w", i, msg.ID, entity.ErrValidation)
		}
		if err := validateMessage(msg); err != nil {
			return err
		}
	}

	record := &chatRecord{
		chat:      chat,
		slots:     make([]*entity.Message, 0, len(history)),
		selective: make(map[int64]entity.UIState),
	}
	for _, msg := range history {
		stored := msg
		record.slots = append(record.slots, &stored)
		m.messages[msg.Key()] = msg
	}

	m.chats[chat.ID] = record
	m.order = append(m.order, chat.ID)
	return nil
}

// Chat ro'yxatdan o'tgan chatni olish
func (m *memoryState) Chat(chatID int64) (tgbotapi.Chat, error) {
	record, err := m.chat(chatID)
	if err != nil {
		return tgbotapi.Chat{}, err
	}
	return record.chat, nil
}

// Chats barcha chatlar
func (m *memoryState) Chats() []tgbotapi.Chat {
	chats := make([]tgbotapi.Chat, 0, len(m.order))
	for _, id := range m.order {
		chats = append(chats, m.chats[id].chat)
	}
	return chats
}

// NextMessageID keyingi xabar id si
func (m *memoryState) NextMessageID(chatID int64) (int, error) {
	record, err := m.chat(chatID)
	if err != nil {
		return 0, err
	}
	return len(record.slots), nil
}

// ValidateMessage xabar saqlanishi mumkinmi: chat, keyingi id va callback_data
func (m *memoryState) ValidateMessage(message entity.Message) error {
	record, err := m.chat(message.Chat.ID)
	if err != nil {
		return err
	}
	if next := len(record.slots); message.ID != next {
		return fmt.Errorf("message id %d in chat %d is not the next slot %d: %w", message.ID, message.Chat.ID, next, entity.ErrValidation)
	}
	return validateMessage(message)
}

// AppendMessage xabarni tarixga qo'shish
func (m *memoryState) AppendMessage(message entity.Message) (entity.Message, error) {
	record, err := m.chat(message.Chat.ID)
	if err != nil {
		return entity.Message{}, err
	}

	key := message.Key()
	if _, exists := m.messages[key]; exists {
		return entity.Message{}, fmt.Errorf("message %d in chat %d already exists: %w", key.MessageID, key.ChatID, entity.ErrDuplicateKey)
	}
	if err := validateMessage(message); err != nil {
		return entity.Message{}, err
	}
	if next := len(record.slots); message.ID != next {
		return entity.Message{}, fmt.Errorf("message id %d in chat %d is not the next slot %d: %w", message.ID, key.ChatID, next, entity.ErrValidation)
	}

	stored := message
	record.slots = append(record.slots, &stored)
	m.messages[key] = message
	return message, nil
}

// GetMessage xabarni olish
func (m *memoryState) GetMessage(chatID int64, messageID int) (entity.Message, error) {
	msg, ok := m.messages[entity.MessageKey{ChatID: chatID, MessageID: messageID}]
	if !ok {
		return entity.Message{}, fmt.Errorf("message %d in chat %d: %w", messageID, chatID, entity.ErrNotFound)
	}
	return msg, nil
}

// ReplaceMessage xabarni almashtirish; id va chat o'zgarmaydi
func (m *memoryState) ReplaceMessage(message entity.Message) (entity.Message, error) {
	key := message.Key()
	if _, exists := m.messages[key]; !exists {
		return entity.Message{}, fmt.Errorf("message %d in chat %d: %w", key.MessageID, key.ChatID, entity.ErrNotFound)
	}
	if err := validateMessage(message); err != nil {
		return entity.Message{}, err
	}

	stored := message
	m.chats[key.ChatID].slots[key.MessageID] = &stored
	m.messages[key] = message
	return message, nil
}

// DeleteMessage xabarni o'chirish; o'rni band bo'lib qoladi
func (m *memoryState) DeleteMessage(chatID int64, messageID int) error {
	key := entity.MessageKey{ChatID: chatID, MessageID: messageID}
	if _, exists := m.messages[key]; !exists {
		return fmt.Errorf("message %d in chat %d: %w", messageID, chatID, entity.ErrNotFound)
	}

	m.chats[chatID].slots[messageID] = nil
	delete(m.messages, key)
	return nil
}

// ChatHistory tirik xabarlar ro'yxati
func (m *memoryState) ChatHistory(chatID int64) ([]entity.Message, error) {
	record, err := m.chat(chatID)
	if err != nil {
		return nil, err
	}

	history := make([]entity.Message, 0, len(record.slots))
	for _, slot := range record.slots {
		if slot != nil {
			history = append(history, *slot)
		}
	}
	return history, nil
}

// IncrementUpdateID update id ni oshirib qaytarish (birinchisi 1)
func (m *memoryState) IncrementUpdateID() int {
	m.lastUpdateID++
	return m.lastUpdateID
}

// NextCallbackQueryID yangi callback query id ("1" dan boshlanadi)
func (m *memoryState) NextCallbackQueryID() string {
	m.lastCallbackQueryID++
	return strconv.Itoa(m.lastCallbackQueryID)
}

// RecordCallbackAnswer callback javobini saqlash
func (m *memoryState) RecordCallbackAnswer(answer entity.CallbackAnswer) error {
	if _, exists := m.answers[answer.CallbackQueryID]; exists {
		return fmt.Errorf("callback query %q already answered: %w", answer.CallbackQueryID, entity.ErrDuplicateKey)
	}
	m.answers[answer.CallbackQueryID] = answer
	return nil
}

// GetCallbackAnswer callback javobini olish
func (m *memoryState) GetCallbackAnswer(callbackQueryID string) (entity.CallbackAnswer, error) {
	answer, ok := m.answers[callbackQueryID]
	if !ok {
		return entity.CallbackAnswer{}, fmt.Errorf("answer for callback query %q: %w", callbackQueryID, entity.ErrNotFound)
	}
	return answer, nil
}

// GetUserState avval shaxsiy holat, bo'lmasa chat holati
func (m *memoryState) GetUserState(chatID, userID int64) (entity.UIState, error) {
	record, err := m.chat(chatID)
	if err != nil {
		return entity.UIState{}, err
	}
	if state, ok := record.selective[userID]; ok {
		return state, nil
	}
	return record.state, nil
}

// SetChatUIState chat holatini va mavjud shaxsiy holatlarni yangilash
func (m *memoryState) SetChatUIState(chatID int64, update entity.UIStateUpdate) error {
	record, err := m.chat(chatID)
	if err != nil {
		return err
	}

	for userID, state := range record.selective {
		record.selective[userID] = update.Apply(state)
	}
	record.state = update.Apply(record.state)
	return nil
}

// SetSelectiveUIState faqat berilgan foydalanuvchilar holatini yangilash
func (m *memoryState) SetSelectiveUIState(chatID int64, userIDs []int64, update entity.UIStateUpdate) error {
	record, err := m.chat(chatID)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		record.selective[userID] = update.Apply(record.selective[userID])
	}
	return nil
}

func (m *memoryState) chat(chatID int64) (*chatRecord, error) {
	record, ok := m.chats[chatID]
	if !ok {
		return nil, fmt.Errorf("chat %d: %w", chatID, entity.ErrNotFound)
	}
	return record, nil
}

// validateMessage inline tugmalarning callback_data chegarasini tekshirish
func validateMessage(message entity.Message) error {
	for _, button := range message.Markup.InlineButtons() {
		if button.CallbackData == nil {
			continue
		}
		if size := len(*button.CallbackData); size > MaxCallbackDataBytes {
			return fmt.Errorf("button %q in message %d of chat %d: callback_data is %d bytes, limit is %d: %w",
				button.Text, message.ID, message.Chat.ID, size, MaxCallbackDataBytes, entity.ErrValidation)
		}
	}
	return nil
}
