package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type CommandHandler func(ctx context.Context, msg *tgbotapi.Message)

// registerCommands registers all bot commands
func (b *Bot) registerCommands() {
	// Register command handlers
	b.commands = map[string]CommandHandler{
		"start":     b.commandStart,
		"help":      b.commandHelp,
		"language":  b.commandLanguage,
		"myrecords": b.commandMyRecords,
		"newrecord": b.commandNewRecord,
	}

	// Set bot commands for Telegram UI
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "newrecord", Description: "Practice a new verse"},
		{Command: "myrecords", Description: "View my past attempts"},
		{Command: "language", Description: "Change language"},
		{Command: "help", Description: "Show help"},
	}

	cmdConfig := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(cmdConfig); err != nil {
		b.logger.Error("set bot commands failed", "err", err)
	}
}

func (b *Bot) commandStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	if err := b.service.HandleStart(ctx, userID, lang); err != nil {
		b.logger.Error("start failed", "err", err)
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	// Send welcome message
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "welcome.message"))

	// Show surah selection
	b.sendSurahSelection(msg.Chat.ID, lang, 0)
}

func (b *Bot) commandHelp(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "help.message"))
}

func (b *Bot) commandLanguage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.sendLanguageSelection(msg.Chat.ID, lang)
}

func (b *Bot) commandNewRecord(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	if err := b.service.HandleStart(ctx, userID, lang); err != nil {
		b.logger.Error("new record failed", "err", err)
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	b.sendSurahSelection(msg.Chat.ID, lang, 0)
}

func (b *Bot) commandMyRecords(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	summaries, err := b.service.ListSummaries(ctx, userID, 10)
	if err != nil {
		b.logger.Error("list summaries failed", "err", err)
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	if len(summaries) == 0 {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "records.empty"))
		return
	}

	b.sendMessage(msg.Chat.ID, b.formatHistory(lang, summaries))
}
