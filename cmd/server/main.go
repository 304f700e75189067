package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"safecity-service/internal/adapters/cache"
	"safecity-service/internal/adapters/llm"
	"safecity-service/internal/adapters/mail"
	"safecity-service/internal/adapters/overpass"
	"safecity-service/internal/adapters/redisstore"
	"safecity-service/internal/adapters/repositories"
	"safecity-service/internal/api"
	"safecity-service/internal/auth"
	"safecity-service/internal/config"
	"safecity-service/internal/platform/db"
	"safecity-service/internal/platform/kv"
	"safecity-service/internal/ports"
	"safecity-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Overpass, SMTP, OpenAI) behind ports
// and runs the HTTP server until SIGINT/SIGTERM.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	rdb, err := kv.Open(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	geodata, err := overpass.NewClient(cfg.OverpassURL, nil)
	if err != nil {
		log.Fatal(err)
	}

	var mailer ports.Mailer = mail.LogMailer{}
	if cfg.MailUser != "" && cfg.MailPassword != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailUser, cfg.MailPassword, cfg.AppName)
	} else {
		log.Println("GMAIL_USER/GMAIL_APP_PASSWORD not set; OTP codes will be logged")
	}
	if cfg.OpenAIKey == "" {
		log.Println("OPENAI_API_KEY not set; advice requests will fail")
	}

	users := repositories.NewSQLUserRepository(sqlDB)
	limiter := redisstore.NewRateLimiter(rdb, cfg.SubmissionsPerHour, time.Hour)
	tokens := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)

	finder := services.NewNearbyPlaceFinder(geodata, cache.NewSQLPlaceCache(sqlDB))
	tips := &services.TipService{Tips: repositories.NewSQLTipRepository(sqlDB), Limiter: limiter}

	router := api.NewRouter(api.Deps{
		AppName: cfg.AppName,
		Tokens:  tokens,
		Finder:  finder,
		Auth: &services.AuthService{
			Users:  users,
			OTPs:   redisstore.NewOTPStore(rdb),
			Mailer: mailer,
			Hasher: auth.NewBcryptHasher(),
			Tokens: tokens,
		},
		Profiles: &services.ProfileService{Users: users},
		Tips:     tips,
		Reports:  &services.ReportService{Reports: repositories.NewSQLReportRepository(sqlDB), Limiter: limiter},
		Advice:   &services.AdviceService{Advisor: llm.NewOpenAIAdvisor(cfg.OpenAIKey, cfg.OpenAIModel)},
	})

	// Write timeout leaves room for the 15s Overpass budget plus the cache read.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening addr=:%s app=%s", cfg.Port, cfg.AppName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		finder.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
