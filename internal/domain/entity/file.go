package entity

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Rasm uchun qaytariladigan o'lchamlar soni va tomoni
const (
	photoSizes     = 3
	photoDimension = 100
)

// FileRecord foydalanuvchiga berilgan fayl identifikatorlari.
// Name faqat birinchi yuklashda to'ldiriladi.
type FileRecord struct {
	LocalID   string
	ContentID string
	Name      string
	Size      int
}

// FileInput ResolveOrCreateFile kirishi: yoki xom baytlar, yoki avval berilgan LocalID
type FileInput struct {
	Bytes   []byte
	Name    string
	LocalID string
	isBytes bool
}

// FileBytes xom kontentdan kirish yaratish
func FileBytes(name string, data []byte) FileInput {
	return FileInput{Bytes: data, Name: name, isBytes: true}
}

// FileRef avval berilgan local id bo'yicha kirish
func FileRef(localID string) FileInput {
	return FileInput{LocalID: localID}
}

// IsBytes kirish xom baytlarmi
func (f FileInput) IsBytes() bool {
	return f.isBytes
}

// PhotoSizes fayl yozuvidan platforma qaytaradigan o'lchamlar ro'yxati
func PhotoSizes(record FileRecord) []tgbotapi.PhotoSize {
	sizes := make([]tgbotapi.PhotoSize, photoSizes)
	for i := range sizes {
		sizes[i] = tgbotapi.PhotoSize{
			FileID:       record.LocalID,
			FileUniqueID: record.ContentID,
			Width:        photoDimension,
			Height:       photoDimension,
			FileSize:     record.Size,
		}
	}
	return sizes
}
