package entity

import "fmt"

// DefaultDestiny suhbat holatining standart nomlangan doirasi
const DefaultDestiny = "default"

// StorageKey suhbat holati (FSM) kaliti
type StorageKey struct {
	BotID   int64
	ChatID  int64
	UserID  int64
	Destiny string
}

// NewStorageKey kalit yaratish. Bo'sh destiny standart qiymatga almashtiriladi.
func NewStorageKey(botID, chatID, userID int64, destiny string) StorageKey {
	if destiny == "" {
		destiny = DefaultDestiny
	}
	return StorageKey{BotID: botID, ChatID: chatID, UserID: userID, Destiny: destiny}
}

// String kalitni "bot:chat:user:destiny" ko'rinishida qaytarish
func (k StorageKey) String() string {
	destiny := k.Destiny
	if destiny == "" {
		destiny = DefaultDestiny
	}
	return fmt.Sprintf("%d:%d:%d:%s", k.BotID, k.ChatID, k.UserID, destiny)
}
