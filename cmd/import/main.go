package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wordpecker/internal/config"
	"wordpecker/internal/content"
	"wordpecker/internal/database"
	"wordpecker/internal/excel"
	"wordpecker/internal/repository"
	"wordpecker/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	filePath := flag.String("file", "", "Excel workbook to import (required)")
	listID := flag.Int64("list", 0, "ID of an existing list to import into")
	title := flag.String("title", "", "Title for a new list (ignored when -list is set)")
	description := flag.String("description", "", "Description for a new list")
	sourceLang := flag.String("source", "", "Source language code (default: SOURCE_LANGUAGE)")
	targetLang := flag.String("target", "", "Target language code (default: TARGET_LANGUAGE)")
	flag.Usage = printUsage
	flag.Parse()

	if *filePath == "" {
		printUsage()
		os.Exit(1)
	}
	if *listID == 0 && *title == "" {
		fmt.Println("Error: either -list or -title is required")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	migrationsDir := filepath.Join(cfg.MigrationsPath, db.Dialect.MigrationsSubdir())
	if err := db.RunMigrations(migrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Missing translations are filled in during import when Gemini is
	// configured, from the built-in word sets otherwise.
	var provider content.Provider
	if cfg.GeminiAPIKey != "" {
		provider = content.NewGemini(content.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	}
	listService := service.NewListService(repository.NewListRepository(db), provider)

	if *sourceLang == "" {
		*sourceLang = cfg.SourceLanguage
	}
	if *targetLang == "" {
		*targetLang = cfg.TargetLanguage
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("failed to open workbook")
	}
	defer f.Close()

	words, err := excel.ParseWords(f)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse workbook")
	}

	if *listID == 0 {
		list, err := listService.CreateList(*title, *description, *sourceLang, *targetLang)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create list")
		}
		*listID = list.ID
		log.Info().Int64("list", list.ID).Str("title", list.Title).Msg("list created")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	imported, err := listService.ImportWords(ctx, *listID, words)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().Int("imported", imported).Int64("list", *listID).Msg("import complete")
}

func printUsage() {
	fmt.Println("WordPecker Word List Importer")
	fmt.Println()
	fmt.Println("Imports words from an Excel workbook (.xlsx) into a word list.")
	fmt.Println("The first sheet is read; recognized columns are term, translation,")
	fmt.Println("pronunciation and example. A header row is detected automatically.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  import -file words.xlsx -list 3")
	fmt.Println("  import -file words.xlsx -title \"Kitchen words\" -target es")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./wordpecker.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  GEMINI_API_KEY   Enables translation of rows without one")
}
