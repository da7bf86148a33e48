package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wingtrack/internal/catalog"
	"wingtrack/internal/config"
	"wingtrack/internal/database"
	"wingtrack/internal/handlers"
	"wingtrack/internal/repository"
	"wingtrack/internal/scheduler"
	"wingtrack/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Build the training catalog
	cat, err := catalog.New()
	if err != nil {
		log.Fatalf("Failed to build catalog: %v", err)
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	favoritesRepo := repository.NewFavoritesRepository(db)

	// Initialize services
	sched := scheduler.NewTicker()
	profileService := service.NewProfileService(profileRepo, cat)
	if err := profileService.LoadFromStore(); err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	progressionService := service.NewProgressionService(profileService, cat)
	staminaService := service.NewStaminaService(profileService, sched)
	timerService := service.NewTimerService(profileService, progressionService, cat, sched)
	promotionService := service.NewPromotionService(profileService, progressionService, cfg.PromotionSecret)
	shareTokenService := service.NewShareTokenService(profileService, cfg.ShareTokenSecret)
	favoritesService := service.NewFavoritesService(favoritesRepo)

	// Catch up regeneration for time spent offline
	staminaService.Sync()

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, progressionService, staminaService)
	timerHandler := handlers.NewTimerHandler(timerService)
	planHandler := handlers.NewPlanHandler(profileService)
	catalogHandler := handlers.NewCatalogHandler(cat, profileService)
	promotionHandler := handlers.NewPromotionHandler(promotionService, profileService, cfg.PromotionSecret)
	shareTokenHandler := handlers.NewShareTokenHandler(shareTokenService)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Profile routes
	mux.HandleFunc("GET /api/profile", profileHandler.GetProfile)
	mux.HandleFunc("PUT /api/profile", profileHandler.SaveProfile)
	mux.HandleFunc("DELETE /api/profile", profileHandler.DeleteProfile)
	mux.HandleFunc("GET /api/profile/export", profileHandler.ExportProfile)
	mux.HandleFunc("POST /api/profile/import", profileHandler.ImportProfile)
	mux.HandleFunc("PUT /api/profile/theme", profileHandler.SetTheme)
	mux.HandleFunc("POST /api/profile/sections/{id}/visit", profileHandler.VisitSection)
	mux.HandleFunc("GET /api/stats", profileHandler.GetStats)

	// Catalog routes
	mux.HandleFunc("GET /api/catalog/items", catalogHandler.ListItems)
	mux.HandleFunc("GET /api/catalog/belts", catalogHandler.ListBelts)
	mux.HandleFunc("GET /api/catalog/achievements", catalogHandler.ListAchievements)
	mux.HandleFunc("GET /api/catalog/plans", catalogHandler.ListPlans)
	mux.HandleFunc("GET /api/catalog/themes", catalogHandler.ListThemes)
	mux.HandleFunc("GET /api/catalog/avatars", catalogHandler.ListAvatars)

	// Timer routes
	mux.HandleFunc("GET /api/timers", timerHandler.ListTimers)
	mux.HandleFunc("POST /api/timers/{id}/start", timerHandler.StartTimer)
	mux.HandleFunc("POST /api/timers/{id}/stop", timerHandler.StopTimer)

	// Plan routes
	mux.HandleFunc("GET /api/plans", planHandler.ListPlans)
	mux.HandleFunc("POST /api/plans", planHandler.CreatePlan)
	mux.HandleFunc("DELETE /api/plans/{id}", planHandler.DeletePlan)
	mux.HandleFunc("POST /api/plans/{id}/start", timerHandler.StartPlan)
	mux.HandleFunc("POST /api/plans/stop", timerHandler.StopPlan)
	mux.HandleFunc("GET /api/plans/active", timerHandler.ActivePlan)

	// Promotion routes
	mux.HandleFunc("POST /api/promotion/verify", promotionHandler.VerifyCode)
	mux.HandleFunc("GET /api/promotion/code", promotionHandler.GetCode)

	// Share token routes
	mux.HandleFunc("POST /api/share-token", shareTokenHandler.IssueToken)
	mux.HandleFunc("POST /api/share-token/verify", shareTokenHandler.VerifyToken)

	// Favorites routes
	mux.HandleFunc("GET /api/favorites", favoritesHandler.ListFavorites)
	mux.HandleFunc("POST /api/favorites", favoritesHandler.AddFavorite)
	mux.HandleFunc("DELETE /api/favorites/{id}", favoritesHandler.RemoveFavorite)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	timerService.StopAll()
	staminaService.StopLoop()
}
