package usecase

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

// PrivateChat bitta foydalanuvchi bilan shaxsiy chat uchun Control o'rami
type PrivateChat struct {
	control Control
	chat    tgbotapi.Chat
	user    tgbotapi.User
	bot     tgbotapi.User
	fsm     repository.FSMStorage
}

// NewPrivateChat shaxsiy chat o'ramini yaratish. Shaxsiy chatda chat.ID == user.ID bo'lishi shart.
func NewPrivateChat(
	control Control,
	chat tgbotapi.Chat,
	user tgbotapi.User,
	bot tgbotapi.User,
	fsm repository.FSMStorage,
) (*PrivateChat, error) {
	if chat.ID != user.ID {
		return nil, fmt.Errorf("private chat %d does not belong to user %d: %w", chat.ID, user.ID, entity.ErrConfiguration)
	}
	if control == nil {
		return nil, fmt.Errorf("private chat %d has no control: %w", chat.ID, entity.ErrConfiguration)
	}
	if fsm == nil {
		return nil, fmt.Errorf("private chat %d has no fsm storage: %w", chat.ID, entity.ErrConfiguration)
	}

	return &PrivateChat{
		control: control,
		chat:    chat,
		user:    user,
		bot:     bot,
		fsm:     fsm,
	}, nil
}

// Send foydalanuvchi nomidan xabar yuborish
func (p *PrivateChat) Send(ctx context.Context, text string) (entity.Message, error) {
	return p.control.Send(ctx, p.user, p.chat, text)
}

// SendAs boshqa foydalanuvchi/chat nomidan xabar yuborish
func (p *PrivateChat) SendAs(ctx context.Context, text string, user tgbotapi.User, chat tgbotapi.Chat) (entity.Message, error) {
	return p.control.Send(ctx, user, chat, text)
}

// SendContact kontakt yuborish
func (p *PrivateChat) SendContact(ctx context.Context, contact tgbotapi.Contact) (entity.Message, error) {
	return p.control.SendContact(ctx, p.user, p.chat, contact)
}

// SendPhoto rasm yuborish
func (p *PrivateChat) SendPhoto(ctx context.Context, photo entity.FileInput, caption string) (entity.Message, error) {
	return p.control.SendPhoto(ctx, p.user, p.chat, photo, caption)
}

// Click oxirgi xabardagi tugmani bosish
func (p *PrivateChat) Click(ctx context.Context, selector ButtonSelector) (entity.CallbackAnswer, error) {
	last, err := p.LastMessage()
	if err != nil {
		return entity.CallbackAnswer{}, err
	}
	return p.control.Click(ctx, selector, last, p.user)
}

// ClickOn berilgan xabardagi tugmani bosish
func (p *PrivateChat) ClickOn(ctx context.Context, selector ButtonSelector, message entity.Message) (entity.CallbackAnswer, error) {
	return p.control.Click(ctx, selector, message, p.user)
}

// Messages chat tarixi
func (p *PrivateChat) Messages() ([]entity.Message, error) {
	return p.control.Messages(p.chat.ID)
}

// LastMessage oxirgi xabar
func (p *PrivateChat) LastMessage() (entity.Message, error) {
	return p.control.LastMessage(p.chat.ID)
}

// UserState foydalanuvchi UI holati
func (p *PrivateChat) UserState() (entity.UIState, error) {
	return p.control.UserState(p.chat.ID, p.user.ID)
}

// Calls ilova yuborgan chaqiruvlar
func (p *PrivateChat) Calls() []entity.Call {
	return p.control.Calls()
}

// State destiny bo'yicha suhbat holati konteksti ("" - standart)
func (p *PrivateChat) State(destiny string) *FSMContext {
	return NewFSMContext(p.fsm, entity.NewStorageKey(p.bot.ID, p.chat.ID, p.user.ID, destiny))
}

// Control ichki Control
func (p *PrivateChat) Control() Control {
	return p.control
}

// Bot bot foydalanuvchisi
func (p *PrivateChat) Bot() tgbotapi.User {
	return p.bot
}

// User chat egasi
func (p *PrivateChat) User() tgbotapi.User {
	return p.user
}

// Chat chat ma'lumotlari
func (p *PrivateChat) Chat() tgbotapi.Chat {
	return p.chat
}
