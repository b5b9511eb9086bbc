package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chorddesign/fundmatrix/internal/api"
	"github.com/chorddesign/fundmatrix/internal/config"
	"github.com/chorddesign/fundmatrix/internal/database"
	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/repository"
	"github.com/chorddesign/fundmatrix/internal/service"
	"github.com/chorddesign/fundmatrix/internal/sina"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	holdingsRepo := repository.NewHoldingsRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create upstream clients
	fundClient := eastmoney.NewFinanceClient()
	stockClient := sina.NewQuoteClient()

	// Create services
	systemService := service.NewSystemService(db)
	lookThroughService := service.NewLookThroughService(fundClient, stockClient)
	quoteService := service.NewQuoteService(fundClient, lookThroughService, settingsRepo)
	detailService := service.NewDetailService(fundClient)
	navStatusService := service.NewNavStatusService(detailService, cfg.Market.NavFreshnessDays)
	holdingsService := service.NewHoldingsService(
		holdingsRepo,
		quoteService,
		lookThroughService,
		detailService,
		navStatusService,
	)
	fundListService := service.NewFundListService(fundClient, quoteService)
	marketService := service.NewMarketService(fundClient, settingsRepo)

	// Background refresh: holdings estimates on the quote cadence, market
	// indices on their own faster cadence, confirmed-NAV status once the
	// evening publication window opens.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(every(cfg.Market.RefreshInterval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Market.RefreshInterval)
		defer cancel()
		if _, err := holdingsService.Refresh(ctx); err != nil {
			log.Printf("Holdings refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule holdings refresh: %v", err)
	}
	if _, err := scheduler.AddFunc(every(cfg.Market.IndexRefreshInterval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Market.IndexRefreshInterval)
		defer cancel()
		marketService.Indices(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule index refresh: %v", err)
	}
	if _, err := scheduler.AddFunc("0 20 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := holdingsService.RefreshNavStatus(ctx); err != nil {
			log.Printf("NAV status refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule NAV status refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Holdings:    holdingsService,
		Quotes:      quoteService,
		Details:     detailService,
		LookThrough: lookThroughService,
		FundList:    fundListService,
		Market:      marketService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// every renders a duration as a cron spec understood by the scheduler.
func every(interval time.Duration) string {
	return fmt.Sprintf("@every %s", interval)
}
