package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"triage-assist-be/internal/bootstrap"
	"triage-assist-be/internal/config"
	"triage-assist-be/internal/server"
	"triage-assist-be/internal/tracer"
	"triage-assist-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(gormConfig(cfg.Database))
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	log.Println("Background: Starting OCR Consumer...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Background Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

func gormConfig(db config.DatabaseConfig) database.GormConfig {
	return database.GormConfig{
		URL:      db.Connection,
		Host:     db.Host,
		Port:     db.Port,
		User:     db.User,
		Password: db.Password,
		DBName:   db.Name,
		SSLMode:  db.SSLMode,
		Verbose:  db.Verbose,
	}
}
