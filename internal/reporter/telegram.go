package reporter

import (
	"fmt"

	"go-applybot-automation/internal/config"
	"go-applybot-automation/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendSubmitted(job *models.Job, applicationID string) error {
	text := fmt.Sprintf(
		"✅ <b>Application submitted</b>\n"+
			"💼 %s\n"+
			"🏢 %s\n"+
			"🆔 %s\n"+
			"🔗 <a href=\"%s\">Job Page</a>",
		job.Title,
		job.Company,
		applicationID,
		job.URL,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendFailed(job *models.Job, reason string) error {
	text := fmt.Sprintf(
		"❌ <b>Application failed</b>\n"+
			"💼 %s — %s\n"+
			"⚠️ %s",
		job.Title,
		job.Company,
		reason,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>ApplyBot Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
