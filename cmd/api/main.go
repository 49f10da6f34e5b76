package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"calorease/config"
	"calorease/handlers"
	"calorease/internal/auth"
	"calorease/internal/database"
	"calorease/services/assistant"
	"calorease/services/favorites"
	"calorease/services/intake"
	"calorease/services/marketplace"
	"calorease/services/recipes"
	"calorease/services/users"
	"calorease/utils"
)

func main() {
	_ = godotenv.Load() // SPOONACULAR_API_KEY, SERPAPI_KEY, GEMINI_API_KEY, JWT_SECRET_KEY

	settingsPath := os.Getenv("CALOREASE_SETTINGS")
	if settingsPath == "" {
		settingsPath = "settings.json"
	}
	manager := config.NewManager(settingsPath)
	settings, err := manager.Load()
	if err != nil {
		log.Fatalf("[main] failed to load settings: %v", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   settings.Log.Path,
		MaxSize:    settings.Log.MaxSizeMB,
		MaxBackups: settings.Log.MaxBackups,
		MaxAge:     settings.Log.MaxAgeDays,
	}))

	creds := config.LoadCredentials()

	db, err := database.NewDB(database.Config{DatabasePath: settings.Database.Path})
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	tokens := auth.NewManager(creds.JWTSecret)
	userSvc := users.NewService(db.Conn())
	intakeSvc := intake.NewService(db.Conn())
	recipeClient := recipes.NewClient(creds.SpoonacularAPIKey,
		time.Duration(settings.Recipes.CacheTTLSeconds)*time.Second, settings.Recipes.PageSize)
	marketClient := marketplace.NewClient(creds.SerpAPIKey)
	assistantClient := assistant.NewClient(creds.GeminiAPIKey)
	favoriteRepo := favorites.NewSQLiteRepository(db.Conn())
	legacyRepo := favorites.NewMemoryRepository()

	router := utils.NewRouter()

	authHandler := handlers.NewAuthHandler(userSvc, tokens)
	router.HandleFunc("/api/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	recipesHandler := handlers.NewRecipesHandler(recipeClient)
	router.HandleFunc("/api/recipes", recipesHandler.Search).Methods(http.MethodGet)
	router.HandleFunc("/api/recipe-detail/{id}", recipesHandler.Detail).Methods(http.MethodGet)

	marketHandler := handlers.NewMarketplaceHandler(marketClient, settings.Marketplace.DefaultLimit)
	router.HandleFunc("/api/marketplace", marketHandler.Search).Methods(http.MethodGet)

	legacyHandler := handlers.NewLegacyFavoritesHandler(legacyRepo)
	router.HandleFunc("/api/favorites", legacyHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", legacyHandler.Add).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites", legacyHandler.Remove).Methods(http.MethodDelete)

	chatHandler := handlers.NewChatHandler(assistantClient, recipeClient)
	router.HandleFunc("/api/chat", chatHandler.Send).Methods(http.MethodPost)

	protected := router.PathPrefix("/api/users").Subrouter()
	protected.Use(handlers.AuthMiddleware(tokens))

	profileHandler := handlers.NewProfileHandler(userSvc, intakeSvc)
	protected.HandleFunc("/profile", profileHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profileHandler.Save).Methods(http.MethodPut)
	protected.HandleFunc("/profile/setup", profileHandler.Save).Methods(http.MethodPost)

	intakeHandler := handlers.NewIntakeHandler(intakeSvc)
	protected.HandleFunc("/intake", intakeHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/intake", intakeHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/intake", intakeHandler.Replace).Methods(http.MethodPut)
	protected.HandleFunc("/intake", intakeHandler.Clear).Methods(http.MethodDelete)

	favoritesHandler := handlers.NewFavoritesHandler(favoriteRepo)
	protected.HandleFunc("/favorites", favoritesHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/favorites", favoritesHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/favorites", favoritesHandler.Remove).Methods(http.MethodDelete)

	if settings.Rollover.Enabled {
		scheduler, err := intake.NewRollover(intakeSvc, settings.Rollover.Workers).Start()
		if err != nil {
			log.Fatalf("[main] failed to start rollover scheduler: %v", err)
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", settings.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("[main] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
