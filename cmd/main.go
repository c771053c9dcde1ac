package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/joho/godotenv"

	"luckymint/internal/config"
	"luckymint/internal/handlers"
	"luckymint/internal/ledger"
	"luckymint/internal/notify"
	"luckymint/internal/random"
	"luckymint/internal/services"
	"luckymint/internal/storage"
)

func main() {
	// 1. Load configuration (.env is optional).
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	defer logger.Init("luckymint", cfg.Verbose, false, os.Stdout).Close()

	// 2. Open the durable round/participant store.
	store, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// 3. Wire the engine's collaborators.
	recent := notify.NewMemorySink(cfg.RecentMints)
	sink := notify.Multi(notify.LogSink{}, recent)

	service := services.NewMintService(store, random.NewCryptoSource(), ledger.NewMemoryLedger(), sink)
	service.WithCooldown(cfg.MintCooldown())
	service.WithAssetKind(cfg.AssetKind)

	// 4. Set up the Gin router.
	router := gin.Default()
	handlers.NewHTTPHandler(service, recent, cfg.MintFee).RegisterRoutes(router)

	// 5. Run the server.
	log.Printf("Server starting on http://localhost:%d", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
