package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"crec-parser-go/internal/config"
	"crec-parser-go/internal/logger"
	"crec-parser-go/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "crec-parser-go").Info("starting service")

	cfg, err := config.Load(os.Getenv("CREC_CONFIG"))
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	asm, err := pipeline.FromConfig(loadCtx, cfg)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to load pattern table or speaker directory")
	}
	log.WithField("patterns_file", cfg.PatternsFile).WithField("speakers_file", cfg.SpeakersFile).Info("tables loaded")

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(asm, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
