package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/loyalty-processor/internal/checkpoint"
	"github.com/dvloznov/loyalty-processor/internal/config"
	"github.com/dvloznov/loyalty-processor/internal/logger"
	"github.com/dvloznov/loyalty-processor/internal/members"
	"github.com/dvloznov/loyalty-processor/internal/pipeline"
)

func main() {
	// Load environment variables from .env
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)

	// Parse CLI flags; defaults come from the environment config.
	merchant := flag.String("merchant", cfg.TargetMerchant, "merchant ID whose transactions earn points")
	rate := flag.String("rate", cfg.PointsRate.String(), "points awarded per dollar")
	checkpointPath := flag.String("checkpoint", cfg.CheckpointPath, "checkpoint file path")
	interval := flag.Int64("checkpoint-every", cfg.CheckpointInterval, "lines between checkpoint saves")
	membersPath := flag.String("members", cfg.MembersPath, "members snapshot file (empty uses the built-in seed set)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: processor [flags] <transaction-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	pointsRate, err := decimal.NewFromString(*rate)
	if err != nil || pointsRate.IsNegative() {
		log.Fatal().Str("rate", *rate).Msg("Rate must be a non-negative decimal")
	}
	if *interval < 1 {
		log.Fatal().Int64("checkpoint-every", *interval).Msg("Checkpoint interval must be at least 1")
	}

	// One run per checkpoint at a time.
	lock := checkpoint.NewRunLock(*checkpointPath)
	if err := lock.Acquire(); err != nil {
		log.Fatal().Err(err).Msg("Checkpoint is in use by another run")
	}
	defer lock.Release()

	store, err := loadMembers(*membersPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading members failed")
	}

	proc := pipeline.New(store, checkpoint.NewFileStore(*checkpointPath), pipeline.Options{
		TargetMerchant:     *merchant,
		PointsRate:         &pointsRate,
		CheckpointInterval: *interval,
	})

	// Add logger to context
	ctx := logger.WithContext(context.Background(), log)

	log.Info().Str("file", inputPath).Msg("Starting processing")

	report, err := proc.ProcessFile(ctx, inputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Processing failed, checkpoint kept for retry")
	}

	if *membersPath != "" {
		if err := store.SaveSnapshot(*membersPath); err != nil {
			log.Fatal().Err(err).Msg("Saving members snapshot failed")
		}
	}

	printSummary(ctx, report, store)
}

func loadMembers(path string) (*members.Store, error) {
	if path == "" {
		return members.NewSeededStore(), nil
	}
	return members.LoadSnapshot(path)
}

func printSummary(ctx context.Context, report *pipeline.Report, store *members.Store) {
	list, err := store.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listing members: %v\n", err)
		return
	}

	fmt.Println("\n=== Loyalty Points Summary ===")
	for _, member := range list {
		fmt.Printf("%-14s %s %8d points\n", member.Name, member.MaskedCard(), member.Points)
	}

	fmt.Printf("\nProcessed %d lines in %s\n", report.LinesRead, report.Finished.Sub(report.Started).Round(time.Millisecond))
	fmt.Printf("Accruals:       %d (%d points)\n", report.Accruals, report.PointsAwarded)
	fmt.Printf("Malformed:      %d\n", report.Malformed)
	fmt.Printf("Other merchant: %d\n", report.OtherMerchant)
	fmt.Printf("Unknown card:   %d\n", report.UnknownCard)
}
