package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkwell-app/inkwell-backend/api"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()

	conn, err := database.Connect(ctx,
		getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		getEnv("SURREALDB_NS", "inkwell"),
		getEnv("SURREALDB_DB", "inkwell"),
		getEnv("SURREALDB_USER", ""),
		getEnv("SURREALDB_PASS", ""),
	)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	db := database.New(conn)

	uploader, err := storage.NewUploader(ctx,
		getEnv("AWS_REGION", "us-east-1"),
		getEnv("AWS_ACCESS_KEY_ID", ""),
		getEnv("AWS_SECRET_ACCESS_KEY", ""),
		getEnv("S3_BUCKET", ""),
	)
	if err != nil {
		fmt.Printf("Error initializing upload broker: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(db, uploader)
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

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
