// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/cyberrps/arena/internal/auth"
	"github.com/cyberrps/arena/internal/cache"
	"github.com/cyberrps/arena/internal/database"
	"github.com/cyberrps/arena/internal/handlers"
	"github.com/cyberrps/arena/internal/middleware"
)

func main() {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	if err := auth.Init(); err != nil {
		log.Fatalf("auth init: %v", err)
	}
	database.ConnectDB()
	if err := database.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := cache.ConnectRedis(); err != nil {
		logger.Warnf("redis unavailable, match records disabled: %v", err)
	}

	srv := handlers.NewArenaServer(logger)
	logged := middleware.LogMiddleware(logger)

	mux := http.NewServeMux()

	// account endpoints
	mux.Handle("/auth/register", logged(http.HandlerFunc(handlers.RegisterHandler)))
	mux.Handle("/auth/login", logged(http.HandlerFunc(handlers.LoginHandler)))
	mux.Handle("/api/user", logged(http.HandlerFunc(handlers.MeHandler)))
	mux.Handle("/api/daily-bonus", logged(http.HandlerFunc(handlers.DailyBonusHandler)))

	// cosmetics shop
	mux.Handle("/api/shop/items", logged(http.HandlerFunc(handlers.ShopItemsHandler)))
	mux.Handle("/api/shop/buy", logged(http.HandlerFunc(handlers.ShopBuyHandler)))
	mux.Handle("/api/shop/equip", logged(http.HandlerFunc(handlers.ShopEquipHandler)))

	// bot training mode
	mux.Handle("/api/match/start-training", logged(handlers.StartTrainingHandler(srv)))
	mux.Handle("/api/match/round", logged(handlers.TrainingRoundHandler(srv)))
	mux.Handle("/api/match/end", logged(handlers.EndTrainingHandler(srv)))
	mux.Handle("/api/match/cancel", logged(handlers.CancelTrainingHandler(srv)))

	// realtime PvP gateway
	mux.Handle("/arena/ws", handlers.ArenaWSHandler(logger, srv))

	mux.HandleFunc("/health", handlers.HealthHandler)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("arena server running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
