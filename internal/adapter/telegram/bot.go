package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/tajweed-coach/internal/application"
	"github.com/escalopa/tajweed-coach/internal/domain"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	service  *application.RecitationService
	i18n     domain.I18nPort
	logger   *slog.Logger
	commands map[string]CommandHandler
	cancel   context.CancelFunc
}

func NewBot(token string, service *application.RecitationService, i18n domain.I18nPort, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := &Bot{
		api:     api,
		service: service,
		i18n:    i18n,
		logger:  logger,
	}

	// Register commands
	bot.registerCommands()

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.logger.Info("authorized on telegram", "account", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.api.StopReceivingUpdates()
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	userID := b.getUserID(update)
	if userID == "" {
		return
	}

	lang := b.service.GetUserLanguage(ctx, userID)

	// Handle commands
	if update.Message != nil && update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message, lang)
		return
	}

	// Handle voice messages
	if update.Message != nil && update.Message.Voice != nil {
		b.handleVoice(ctx, update.Message, lang)
		return
	}

	// Handle callback queries (button presses)
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery, lang)
		return
	}

	// Handle text messages (ayah number input)
	if update.Message != nil && update.Message.Text != "" {
		b.handleText(ctx, update.Message, lang)
		return
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) {
	cmd := msg.Command()

	handler, exists := b.commands[cmd]
	if !exists {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.unknown_command"))
		return
	}

	handler(ctx, msg)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery, lang domain.Language) {
	userID := strconv.FormatInt(callback.From.ID, 10)
	chatID := callback.Message.Chat.ID

	// Answer callback to remove loading state
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))

	data := callback.Data
	switch {
	case strings.HasPrefix(data, "surah:"):
		number, err := strconv.Atoi(strings.TrimPrefix(data, "surah:"))
		if err != nil {
			return
		}
		if err := b.service.HandleSurahSelection(ctx, userID, number); err != nil {
			b.logger.Error("surah selection failed", "err", err)
			b.sendMessage(chatID, b.i18n.Get(lang, "error.generic"))
			return
		}
		b.sendMessage(chatID, b.i18n.Get(lang, "ayah.enter", b.i18n.GetSurahName(lang, number)))

	case strings.HasPrefix(data, "surahpage:"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "surahpage:"))
		if err != nil {
			return
		}
		b.editSurahSelection(callback.Message, lang, page)

	case strings.HasPrefix(data, "lang:"):
		newLang := domain.Language(strings.TrimPrefix(data, "lang:"))
		if err := b.service.HandleStart(ctx, userID, newLang); err != nil {
			b.logger.Error("language change failed", "err", err)
			return
		}
		b.sendMessage(chatID, b.i18n.Get(newLang, "language.changed"))
		b.sendSurahSelection(chatID, newLang, 0)

	case data == "newrecord":
		if err := b.service.HandleStart(ctx, userID, lang); err != nil {
			b.logger.Error("new record failed", "err", err)
			return
		}
		b.sendSurahSelection(chatID, lang, 0)
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) {
	userID := strconv.FormatInt(msg.From.ID, 10)

	state, err := b.service.GetCurrentState(ctx, userID)
	if err != nil {
		b.logger.Error("get state failed", "err", err)
		return
	}

	if state != domain.StateEnterAyah {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.unexpected_input"))
		return
	}

	if err := b.service.HandleAyahInput(ctx, userID, strings.TrimSpace(msg.Text)); err != nil {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "ayah.invalid"))
		return
	}

	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "recording.prompt"))
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	state, err := b.service.GetCurrentState(ctx, userID)
	if err != nil || state != domain.StateWaitRecording {
		b.sendMessage(chatID, b.i18n.Get(lang, "recording.not_expected"))
		return
	}

	b.sendMessage(chatID, b.i18n.Get(lang, "recording.processing"))

	audio, err := b.processVoiceMessage(msg.Voice.FileID)
	if err != nil {
		b.logger.Error("voice processing failed", "err", err)
		b.sendCollaboratorError(chatID, lang, err)
		return
	}

	summary, err := b.service.HandleRecording(ctx, userID, audio, float64(msg.Voice.Duration))
	if err != nil {
		b.logger.Error("recording analysis failed", "err", err)
		b.sendCollaboratorError(chatID, lang, err)
		return
	}

	reply := tgbotapi.NewMessage(chatID, b.formatSummary(lang, summary))
	reply.ParseMode = "HTML"
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "recording.new"), "newrecord"),
		),
	)
	b.api.Send(reply)
}

// sendCollaboratorError renders a kinded upstream failure with a
// user-actionable message.
func (b *Bot) sendCollaboratorError(chatID int64, lang domain.Language, err error) {
	switch domain.ErrorKindOf(err) {
	case domain.ErrKindPermissionDenied:
		b.sendMessage(chatID, b.i18n.Get(lang, "error.permission_denied"))
	case domain.ErrKindUnsupportedEnvironment:
		b.sendMessage(chatID, b.i18n.Get(lang, "error.unsupported_environment"))
	case domain.ErrKindServiceUnavailable:
		b.sendMessage(chatID, b.i18n.Get(lang, "error.service_unavailable"))
	default:
		b.sendMessage(chatID, b.i18n.Get(lang, "error.generic"))
	}
}

const surahsPerPage = 10

func (b *Bot) surahKeyboard(lang domain.Language, page int) tgbotapi.InlineKeyboardMarkup {
	surahs := b.service.GetAllSurahs()
	totalPages := (len(surahs) + surahsPerPage - 1) / surahsPerPage

	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * surahsPerPage
	end := start + surahsPerPage
	if end > len(surahs) {
		end = len(surahs)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, surah := range surahs[start:end] {
		label := fmt.Sprintf("%d. %s", surah.Number, b.i18n.GetSurahName(lang, surah.Number))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("surah:%d", surah.Number)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			b.i18n.Get(lang, "nav.prev"), fmt.Sprintf("surahpage:%d", page-1)))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			b.i18n.Get(lang, "nav.next"), fmt.Sprintf("surahpage:%d", page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) sendSurahSelection(chatID int64, lang domain.Language, page int) {
	msg := tgbotapi.NewMessage(chatID, b.i18n.Get(lang, "surah.select"))
	msg.ReplyMarkup = b.surahKeyboard(lang, page)
	b.api.Send(msg)
}

func (b *Bot) editSurahSelection(msg *tgbotapi.Message, lang domain.Language, page int) {
	keyboard := b.surahKeyboard(lang, page)
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, b.i18n.Get(lang, "surah.select"))
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) sendLanguageSelection(chatID int64, lang domain.Language) {
	msg := tgbotapi.NewMessage(chatID, b.i18n.Get(lang, "language.select"))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("English", "lang:en"),
			tgbotapi.NewInlineKeyboardButtonData("العربية", "lang:ar"),
			tgbotapi.NewInlineKeyboardButtonData("Русский", "lang:ru"),
		),
	)
	b.api.Send(msg)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message failed", "err", err)
	}
}

func (b *Bot) getUserID(update tgbotapi.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return strconv.FormatInt(update.Message.From.ID, 10)
	}
	if update.CallbackQuery != nil {
		return strconv.FormatInt(update.CallbackQuery.From.ID, 10)
	}
	return ""
}
