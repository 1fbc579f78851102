package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/config"
	"github.com/mkraev/neurocontent-bot/internal/dispatcher"
	"github.com/mkraev/neurocontent-bot/internal/generator"
	"github.com/mkraev/neurocontent-bot/internal/handlers"
	"github.com/mkraev/neurocontent-bot/internal/middleware"
	"github.com/mkraev/neurocontent-bot/internal/quota"
	"github.com/mkraev/neurocontent-bot/internal/session"
	"github.com/mkraev/neurocontent-bot/internal/tariffs"
	"github.com/mkraev/neurocontent-bot/store"
)

func main() {
	_ = config.LoadEnvFile("config.env")
	cfg := config.FromEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pgStore, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pgStore.Close()

	catalog, err := tariffs.Load(cfg.TariffsFile)
	if err != nil {
		log.Fatalf("Failed to load tariff catalog: %v", err)
	}

	gate := quota.NewGate(pgStore, cfg.AdminID)
	sessions := session.NewManager()

	gen := generator.NewClient(generator.Config{
		APIKey:   cfg.YandexAPIKey,
		FolderID: cfg.YandexFolderID,
		Timeout:  cfg.GenTimeout,
	})
	disp := dispatcher.New(gate, gen, pgStore)

	middlewares := middleware.NewMiddlewares(pgStore)
	h := handlers.NewHandlers(pgStore, catalog, sessions, disp, cfg.AdminID)

	botToken := cfg.BotToken
	if botToken == "" {
		botToken = "YOUR_BOT_TOKEN_FROM_BOTFATHER"
		log.Println("Warning: Using default bot token. Set BOT_TOKEN environment variable.")
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Minute,
	}
	pollTimeout := 50 * time.Second

	b, err := bot.New(
		botToken,
		bot.WithHTTPClient(pollTimeout, httpClient),
	)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	handlerChain := middlewares.ResolveUserMiddleware(
		middlewares.ClassifyMiddleware(
			h.MainHandler,
		),
	)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlerChain)

	log.Println("Bot started. Press Ctrl+C to stop.")
	b.Start(ctx)
}
