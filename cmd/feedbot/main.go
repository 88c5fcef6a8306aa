package main

import (
	"context"
	"log/slog"
	"os"

	"aifeedbot/feedbot"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	config, err := feedbot.LoadConfig(os.Getenv("FEEDBOT_CONFIG"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	bot, err := feedbot.New(ctx, config)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	bot.Run(ctx)
}
