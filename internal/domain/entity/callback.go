package entity

// CallbackAnswer ilova callback query'ga bergan javob
type CallbackAnswer struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
	URL             string
	CacheTime       int
}
