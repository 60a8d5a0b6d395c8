// Command wordcount counts the words of a local file, looks up the most
// frequent ones in the configured dictionary and prints them as JSON.
//
// Usage:
//
//	wordcount -file story.docx [-limit 10] [-config config.yaml]
//
// Supported files: .txt, .docx, .pdf.
// Exit codes: 0 = success, 1 = error, 2 = usage error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/wordcount-backend/internal/adapter/document"
	"github.com/heartmarshall/wordcount-backend/internal/app"
	"github.com/heartmarshall/wordcount-backend/internal/config"
	"github.com/heartmarshall/wordcount-backend/internal/service/wordcount"
)

func main() {
	filePath := flag.String("file", "", "path to a .txt, .docx or .pdf file")
	limit := flag.Int("limit", 0, "number of most frequent words (default: wordcount.default_limit)")
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "wordcount: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *filePath, *limit, logger); err != nil {
		logger.Error("wordcount failed", slog.String("file", *filePath), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, limit int, logger *slog.Logger) error {
	mediaType := document.MediaTypeFromName(path)
	if mediaType == "" {
		return fmt.Errorf("unsupported file extension: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	text, err := document.Extract(mediaType, raw)
	if err != nil {
		return err
	}

	dict, err := app.NewDictionary(ctx, cfg.Dictionary, cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	defer dict.Close()

	if limit == 0 {
		limit = cfg.WordCount.DefaultLimit
	}

	svc := wordcount.NewService(logger, dict.Client, wordcount.Config{
		MaxLimit:      cfg.WordCount.MaxLimit,
		MaxConcurrent: cfg.Dictionary.MaxConcurrent,
	})
	result, err := svc.Process(ctx, wordcount.ProcessInput{Text: text, Limit: limit})
	if err != nil {
		return err
	}

	if result.Report.Status() != "complete" {
		logger.Warn("some lookups did not run",
			slog.String("status", result.Report.Status()),
			slog.Int("failed", result.Report.Failed),
		)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Words)
}
