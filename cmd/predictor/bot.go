package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abelzeko/water-quality/internal/api"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Answer /predict commands on Telegram",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireTelegram(); err != nil {
			return err
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}

		stopWatcher, err := startWatcher(a)
		if err != nil {
			return err
		}
		defer stopWatcher()

		telegramBot, err := api.NewTelegramBot(cfg.Telegram, cfg.Input, a.useCase, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			telegramBot.Stop()
		}()

		telegramBot.Start()
		return nil
	},
}
