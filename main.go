package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"telegram-session-counter/internal/config"
	"telegram-session-counter/internal/handlers"
	"telegram-session-counter/internal/scheduler"
	"telegram-session-counter/internal/storage"
	"telegram-session-counter/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg, err := config.Load(true)
	utils.Must(err)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	utils.Must(err)
	log.Printf("authorized as @%s", bot.Self.UserName)

	db, err := storage.New(cfg.DBPath)
	utils.Must(err)
	defer db.Close()

	h := handlers.NewHandler(bot, db, cfg.Location, cfg.OwnerChatID)
	s, err := scheduler.Start(h, cfg.TickInterval)
	utils.Must(err)
	defer func() { utils.LogFor("stop scheduler", s.Shutdown()) }()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("shutting down")
		bot.StopReceivingUpdates()
	}()

	h.Listen(updates)
}
