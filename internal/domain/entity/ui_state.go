package entity

// UIState chat yoki foydalanuvchi uchun faol klaviatura holati
type UIState struct {
	ReplyMarkup Markup
}

// UIStateUpdate UIState ning qisman yangilanishi. Berilmagan maydonlar o'zgarmaydi.
type UIStateUpdate struct {
	ReplyMarkup Optional[Markup]
}

// SetReplyMarkup faqat reply_markup maydonini o'rnatuvchi yangilanish
func SetReplyMarkup(markup Markup) UIStateUpdate {
	return UIStateUpdate{ReplyMarkup: Set(markup)}
}

// ClearReplyMarkup reply_markup ni bo'shatuvchi yangilanish
func ClearReplyMarkup() UIStateUpdate {
	return UIStateUpdate{ReplyMarkup: Set(NoMarkup())}
}

// Apply yangilanishni holatga qo'llash va yangi qiymat qaytarish
func (u UIStateUpdate) Apply(state UIState) UIState {
	state.ReplyMarkup = u.ReplyMarkup.Apply(state.ReplyMarkup)
	return state
}
