package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"habitquest/internal/api"
	"habitquest/internal/repository"
	"habitquest/internal/service"
	"habitquest/pkg/auth"
	"habitquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	var notifier service.SnapshotNotifier = service.NopNotifier{}
	var remote service.RemoteSnapshotStore
	if cfg.Sync.Enabled {
		remoteStore, err := repository.NewRemoteStore(cfg.Remote)
		if err != nil {
			zapLogger.Fatal("Failed to initialize remote store", zap.Error(err))
		}
		defer remoteStore.Close()

		remoteSync := service.NewRemoteSync(repo, remoteStore, cfg.Sync.Debounce)
		defer remoteSync.Close()

		notifier = remoteSync
		remote = remoteStore
	}

	questService := service.NewQuestService(repo, cfg.Rewards.Presets(), notifier)
	shopService := service.NewShopService(repo, notifier)
	sessionService := service.NewSessionService(repo, remote, notifier)

	telegramAuth := auth.NewTelegramAuth(cfg.TelegramAuth.TelegramBotToken, cfg.TelegramAuth.DebugMode)

	hub := api.NewReminderHub()

	if cfg.Notifications.Enabled {
		var bot *tgbotapi.BotAPI
		if cfg.Notifications.ViaTelegram {
			bot, err = tgbotapi.NewBotAPI(cfg.TelegramAuth.TelegramBotToken)
			if err != nil {
				zapLogger.Fatal("Failed to initialize bot", zap.Error(err))
			}
		}

		reminders, err := service.NewNotifier(repo, hub, bot, cfg.Notifications.PollInterval)
		if err != nil {
			zapLogger.Fatal("Failed to initialize notifier", zap.Error(err))
		}
		if err := reminders.Start(); err != nil {
			zapLogger.Fatal("Failed to start notifier", zap.Error(err))
		}
		defer reminders.Stop()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(cors.New(corsConfig))

	a := router.Group("/api/v1")
	api.NewSessionRoutes(a, sessionService, telegramAuth)
	api.NewQuestRoutes(a, questService, telegramAuth)
	api.NewShopRoutes(a, shopService, telegramAuth)
	api.NewWSRoutes(a, hub, telegramAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
