package entity

import "errors"

// Fixture xatolik turlari. Har bir xatolik shulardan birini %w bilan o'raydi.
var (
	// ErrDuplicateKey kalit allaqachon band
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound yozuv topilmadi yoki o'chirilgan
	ErrNotFound = errors.New("not found")

	// ErrValidation qiymat platforma cheklovlariga mos emas
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration fixture noto'g'ri sozlangan
	ErrConfiguration = errors.New("bad configuration")

	// ErrUnsupportedOperation fixture bu amalni modellashtirmaydi
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMalformedRequest chaqiruv parametrlari noto'g'ri
	ErrMalformedRequest = errors.New("malformed request")
)
