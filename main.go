package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/cache"
	intconfig "tripplanner/internal/config"
	"tripplanner/internal/genai"
	router "tripplanner/internal/http"
	"tripplanner/internal/http/handlers"
	"tripplanner/internal/repositories"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	defer intconfig.CloseDB()

	if err := intconfig.EnsureSchema(db); err != nil {
		log.Fatalf("[DB] schema failed: %v", err)
	}

	gen, err := genai.New(genai.Config{
		Provider: env.GenAIProvider,
		APIKey:   env.GenAIKey(),
		Model:    env.GenAIModel(),
		BaseURL:  env.GenAIBaseURL(),
	})
	if err != nil {
		// Generation routes answer 502 until a key is configured.
		log.Printf("[GENAI] disabled: %v", err)
	}

	hd := &handlers.Handler{
		Trips:        repositories.TripRepository{DB: db},
		Users:        repositories.UserRepository{DB: db},
		Logs:         repositories.GenerationLogRepository{DB: db},
		Generator:    gen,
		Cache:        cache.NewMemory(env.ProfileCacheTTL),
		JWTSecret:    []byte(env.JWTSecret),
		GenAITimeout: env.GenAITimeout,
	}

	done := make(chan struct{})
	r := router.NewRouter(env, hd, done)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.GenAITimeout + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped.")
}
