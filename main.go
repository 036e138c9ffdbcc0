package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/example/flashbot/internal/bot"
	"github.com/example/flashbot/internal/database"
	"github.com/example/flashbot/internal/excel"
	"github.com/example/flashbot/internal/scheduler"
	"github.com/example/flashbot/internal/srs"
)

func main() {
	importFile := flag.String("import", "", "import cards from an xlsx/csv file and exit")
	importSet := flag.String("set", "", "card set name for -import")
	flag.Parse()

	// .env is optional; environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importFile != "" {
		runImport(*importFile, *importSet)
		return
	}

	engine := srs.New(
		database.NewUserRepository(),
		database.NewCardRepository(),
		database.NewProgressRepository(),
		srs.DefaultConfig(),
	)

	b, err := bot.New(engine)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	s := scheduler.New(b)
	s.Start()
	defer s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		b.Stop()
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped successfully")
}

func runImport(file, setName string) {
	config := excel.DefaultImportConfig()
	config.FilePath = file
	config.SetName = setName
	result, err := excel.ImportCards(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Import finished: %d processed, %d created, %d updated, %d skipped",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}
