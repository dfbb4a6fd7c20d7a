package main

import (
	"context"
	"log"
	"os"

	"perfumism/database"
	"perfumism/internal/catalog"
	"perfumism/internal/config"
	"perfumism/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	jsonFile := "perfumes.json"
	if len(os.Args) > 1 {
		jsonFile = os.Args[1]
	}

	file, err := os.Open(jsonFile)
	if err != nil {
		logger.Error("failed to open catalog", "file", jsonFile, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	data, err := catalog.Decode(file)
	if err != nil {
		logger.Error("failed to read catalog", "file", jsonFile, "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded",
		"brands", len(data.Brands),
		"accords", len(data.Accords),
		"perfumes", len(data.Perfumes),
	)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	summary, err := catalog.Import(context.Background(), db, data, logger)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	logger.Info("import completed",
		"brands", summary.Brands,
		"accords", summary.Accords,
		"perfumes", summary.Perfumes,
		"skipped", summary.Skipped,
	)
}
