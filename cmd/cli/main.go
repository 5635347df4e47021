package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/loyalty-processor/internal/checkpoint"
	"github.com/dvloznov/loyalty-processor/internal/config"
	"github.com/dvloznov/loyalty-processor/internal/logger"
	"github.com/dvloznov/loyalty-processor/internal/members"
	"github.com/dvloznov/loyalty-processor/internal/pipeline"
	"github.com/dvloznov/loyalty-processor/internal/sample"
)

func main() {
	// Load environment variables from .env
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "process":
		runProcess(log, cfg)
	case "generate":
		runGenerate(log)
	case "members":
		runMembers(log, cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Loyalty Processor CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  process   Process a transaction log and award points")
	fmt.Println("  generate  Generate a sample transaction log")
	fmt.Println("  members   Print the members and their balances")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runProcess(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	merchant := fs.String("merchant", cfg.TargetMerchant, "merchant ID whose transactions earn points")
	rate := fs.String("rate", cfg.PointsRate.String(), "points awarded per dollar")
	checkpointPath := fs.String("checkpoint", cfg.CheckpointPath, "checkpoint file path")
	interval := fs.Int64("checkpoint-every", cfg.CheckpointInterval, "lines between checkpoint saves")
	membersPath := fs.String("members", cfg.MembersPath, "members snapshot file (empty uses the built-in seed set)")
	fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: cli process [options] <transaction-file>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	inputPath := fs.Arg(0)

	pointsRate, err := decimal.NewFromString(*rate)
	if err != nil || pointsRate.IsNegative() {
		log.Fatal().Str("rate", *rate).Msg("Rate must be a non-negative decimal")
	}
	if *interval < 1 {
		log.Fatal().Int64("checkpoint-every", *interval).Msg("Checkpoint interval must be at least 1")
	}

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

	printSummary(ctx, log, report, store)
}

func runGenerate(log zerolog.Logger) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "transactions.txt", "output file path")
	lines := fs.Int("lines", 100000, "number of transactions to generate")
	seed := fs.Int64("seed", 0, "random seed (0 picks one from the clock)")
	fs.Parse(os.Args[2:])

	if *lines < 1 {
		log.Fatal().Int("lines", *lines).Msg("Line count must be positive")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var cards []string
	for _, member := range members.Seed() {
		cards = append(cards, member.CardNumber)
	}

	gen := sample.NewGenerator(rng, cards)
	if err := gen.WriteFile(*out, *lines); err != nil {
		log.Fatal().Err(err).Msg("Generating transactions failed")
	}

	fmt.Printf("Generated %d transactions to %s\n", *lines, *out)
}

func runMembers(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("members", flag.ExitOnError)
	membersPath := fs.String("members", cfg.MembersPath, "members snapshot file (empty uses the built-in seed set)")
	fs.Parse(os.Args[2:])

	store, err := loadMembers(*membersPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Loading members failed")
	}

	ctx := logger.WithContext(context.Background(), log)
	list, err := store.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Listing members failed")
	}

	fmt.Println("=== Loyalty Members ===")
	for _, member := range list {
		fmt.Printf("%-14s %s %8d points\n", member.Name, member.MaskedCard(), member.Points)
	}
}

func printSummary(ctx context.Context, log zerolog.Logger, report *pipeline.Report, store *members.Store) {
	list, err := store.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Listing members failed")
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

func loadMembers(path string) (*members.Store, error) {
	if path == "" {
		return members.NewSeededStore(), nil
	}
	return members.LoadSnapshot(path)
}
