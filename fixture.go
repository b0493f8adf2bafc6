package tgmock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/tgmock/config"
	"github.com/yourusername/tgmock/internal/delivery/telegram"
	"github.com/yourusername/tgmock/internal/infrastructure/parser"
	"github.com/yourusername/tgmock/internal/infrastructure/storage"
	"github.com/yourusername/tgmock/internal/logger"
	"github.com/yourusername/tgmock/internal/usecase"
)

// Fixture bitta shaxsiy chat uchun yig'ilgan barcha qismlar.
// Har bir test o'z fixture'ini yaratadi; ikki fixture bitta store'ni bo'lishmaydi.
type Fixture struct {
	Chat    *PrivateChat
	Control Control
	Session *Session
	Bot     *tgbotapi.BotAPI
	Store   StateRepository
	FSM     FSMStorage

	ownsFSM bool
}

// Close fixture o'zi yaratgan FSM storage'ni yopish
func (f *Fixture) Close() error {
	if f.ownsFSM && f.FSM != nil {
		return f.FSM.Close()
	}
	return nil
}

// Option fixture sozlamasi
type Option func(*options)

type options struct {
	cfg         *config.Config
	bot         tgbotapi.User
	user        tgbotapi.User
	token       string
	logger      *slog.Logger
	fsm         FSMStorage
	history     []Message
	historyFile string
	selective   bool
}

// WithConfig bot, foydalanuvchi, log darajasi, FSM storage va tarix faylini konfiguratsiyadan olish
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
		o.bot = cfg.BotUser()
		o.user = cfg.TargetUser()
		o.token = cfg.BotToken
		o.logger = logger.New(cfg.LogLevel, nil)
		o.historyFile = cfg.HistoryFile
	}
}

// WithTargetUser chat egasi (shaxsiy chat id si ham shu foydalanuvchi id si bo'ladi)
func WithTargetUser(user tgbotapi.User) Option {
	return func(o *options) {
		o.user = user
	}
}

// WithBotUser getMe qaytaradigan bot foydalanuvchisi
func WithBotUser(bot tgbotapi.User) Option {
	return func(o *options) {
		bot.IsBot = true
		o.bot = bot
	}
}

// WithToken BotAPI ga beriladigan token
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithLogger fixture logger'i
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithFSMStorage tashqi FSM storage; fixture uni yopmaydi
func WithFSMStorage(fsm FSMStorage) Option {
	return func(o *options) {
		o.fsm = fsm
	}
}

// WithSelectiveUIState selective klaviaturalar faqat reply qilingan foydalanuvchiga tegadi
func WithSelectiveUIState() Option {
	return func(o *options) {
		o.selective = true
	}
}

// WithHistory chatning boshlang'ich tarixi (id lar 0 dan ketma-ket)
func WithHistory(messages ...Message) Option {
	return func(o *options) {
		o.history = append(o.history, messages...)
	}
}

// WithHistoryFile boshlang'ich tarixni xlsx fayldan o'qish
func WithHistoryFile(path string) Option {
	return func(o *options) {
		o.historyFile = path
	}
}

// NewPrivateChat dispatcher uchun shaxsiy chat fixture'ini yig'ish
func NewPrivateChat(dispatcher Dispatcher, opts ...Option) (*Fixture, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required: %w", ErrConfiguration)
	}

	defaults := config.Default()
	o := &options{
		bot:   defaults.BotUser(),
		user:  defaults.TargetUser(),
		token: defaults.BotToken,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	if o.bot.ID == o.user.ID {
		return nil, fmt.Errorf("bot and user share id %d: %w", o.bot.ID, ErrConfiguration)
	}

	chat := tgbotapi.Chat{
		ID:        o.user.ID,
		Type:      "private",
		UserName:  o.user.UserName,
		FirstName: o.user.FirstName,
		LastName:  o.user.LastName,
	}

	history, err := o.loadHistory(chat)
	if err != nil {
		return nil, err
	}

	store := storage.NewMemoryState()
	if err := store.RegisterChat(chat, history...); err != nil {
		return nil, err
	}

	fsm, ownsFSM, err := o.fsmStorage()
	if err != nil {
		return nil, err
	}

	var sessionOpts []telegram.SessionOption
	if o.selective {
		sessionOpts = append(sessionOpts, telegram.WithSelectiveUIState())
	}
	session := telegram.NewSession(store, o.bot, o.logger, sessionOpts...)
	bot, err := tgbotapi.NewBotAPIWithClient(o.token, tgbotapi.APIEndpoint, session)
	if err != nil {
		return nil, closeOnError(fsm, ownsFSM, fmt.Errorf("failed to create bot api: %w", err))
	}

	control := usecase.NewControl(store, session, dispatcher, bot, o.logger)
	privateChat, err := usecase.NewPrivateChat(control, chat, o.user, o.bot, fsm)
	if err != nil {
		return nil, closeOnError(fsm, ownsFSM, err)
	}

	o.logger.Debug("fixture ready", "chat_id", chat.ID, "bot", o.bot.UserName, "history", len(history))

	return &Fixture{
		Chat:    privateChat,
		Control: control,
		Session: session,
		Bot:     bot,
		Store:   store,
		FSM:     fsm,
		ownsFSM: ownsFSM,
	}, nil
}

func (o *options) loadHistory(chat tgbotapi.Chat) ([]Message, error) {
	if o.historyFile == "" {
		return o.history, nil
	}
	if len(o.history) > 0 {
		return nil, fmt.Errorf("history given both inline and from %s: %w", o.historyFile, ErrConfiguration)
	}

	messages, err := parser.NewHistoryParser(o.logger).ParseHistory(context.Background(), o.historyFile, chat)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return messages, nil
}

// fsmStorage tashqi storage, konfiguratsiyadagi storage yoki xotiradagi storage
func (o *options) fsmStorage() (FSMStorage, bool, error) {
	switch {
	case o.fsm != nil:
		return o.fsm, false, nil
	case o.cfg != nil:
		fsm, err := o.cfg.FSMStorage()
		if err != nil {
			return nil, false, err
		}
		return fsm, true, nil
	default:
		return storage.NewMemoryFSMStorage(), true, nil
	}
}

func closeOnError(fsm FSMStorage, owned bool, err error) error {
	if owned {
		return errors.Join(err, fsm.Close())
	}
	return err
}
