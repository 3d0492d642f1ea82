package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.Load(config.New())

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}

	if err := seedAdminUser(cfg, db); err != nil {
		fmt.Printf("Error seeding admin user: %v\n", err)
		os.Exit(1)
	}

	files, err := storage.New(context.Background(), cfg)
	if err != nil {
		fmt.Printf("Error initializing object storage client: %v\n", err)
		os.Exit(1)
	}

	// Wait for the storage service to come up. Uploads are a secondary
	// concern: if storage stays unreachable the API still serves
	// project and settings data.
	readyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := files.WaitForReady(readyCtx, 10, 2*time.Second); err != nil {
		log.Warn().Err(err).Msg("object storage not reachable, uploads will fail until it recovers")
	}
	cancel()

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, db, files)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// seedAdminUser creates the configured admin account on first boot.
// An existing account with the same username is left untouched.
func seedAdminUser(cfg *config.Config, db database.Database) error {
	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	if _, err := db.UserRepo().FindByUsername(cfg.AdminUsername); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	user, err := db.UserRepo().Add(models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	log.Info().Str("username", user.Username).Msg("seeded admin user")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
