package main

import (
	"os"
	"time"

	"dnd-webapp-demo/backend/pkg/config"
	"dnd-webapp-demo/backend/pkg/logger"

	tele "gopkg.in/telebot.v3"
)

func main() {
	cfg := config.Load()

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	if cfg.Telegram.BotToken == "" {
		log.Error("BOT_TOKEN is required to run the bot")
		os.Exit(1)
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.LogError(err, "Failed to connect to Telegram")
		os.Exit(1)
	}

	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	openSheet := menu.WebApp("🧙 Открыть лист персонажа", &tele.WebApp{URL: cfg.Telegram.WebAppURL})
	menu.Reply(menu.Row(openSheet))

	bot.Handle("/start", func(c tele.Context) error {
		log.Info("Handling /start", "tg_id", c.Sender().ID)
		return c.Send("Открываем WebApp 👇", menu)
	})

	log.Info("Bot starting", "username", bot.Me.Username, "webapp_url", cfg.Telegram.WebAppURL)
	bot.Start()
}
