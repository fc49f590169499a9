package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/database"
	"userhub/internal/email"
	"userhub/internal/logging"
	redisx "userhub/internal/redis"
	"userhub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logOutput := io.Writer(os.Stdout)
	if cfg.LogFile != "" {
		w, err := logging.NewRotatingFileWriter(cfg.LogFile, 10<<20, 3)
		if err != nil {
			log.Fatalf("log setup error: %v", err)
		}
		defer w.Close()
		logOutput = io.MultiWriter(os.Stdout, w)
	}
	log.SetOutput(logOutput)
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lshortfile)

	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer db.Close()

	redisClient, err := redisx.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis error: %v", err)
	}
	defer redisClient.Close()

	hasher := auth.NewArgon2Hasher()
	users := auth.NewUserRepository(db, hasher)
	tokens := auth.NewTokenRepository(db, cfg.TokenTTL)
	sessions := &auth.SessionStore{Redis: redisClient, TTL: cfg.SessionTTL}
	mailer := email.NewSender(cfg.Email)

	workflow := &auth.Workflow{
		Users:    users,
		Tokens:   tokens,
		Sessions: sessions,
		Mailer:   mailer,
	}

	api := server.NewServer(cfg, workflow, users, sessions)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Router(),
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	log.Printf("Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
