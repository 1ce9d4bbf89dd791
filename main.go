package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Luminc/iris/config"
	"github.com/Luminc/iris/internal/artisio"
	"github.com/Luminc/iris/internal/cost"
	"github.com/Luminc/iris/internal/images"
	"github.com/Luminc/iris/internal/pipeline"
	"github.com/Luminc/iris/internal/publish"
	"github.com/Luminc/iris/internal/research"
	"github.com/Luminc/iris/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		lotUUID      string
		outputDir    string
		imagesDir    string
		levelName    string
		model        string
		estimateOnly bool
		lotCount     int
	)
	flag.StringVar(&lotUUID, "lot", "", "UUID of the lot to generate a post for")
	flag.StringVar(&outputDir, "output", "posts", "directory for generated post documents")
	flag.StringVar(&imagesDir, "images", "images", "directory for persisted lot photos")
	flag.StringVar(&levelName, "level", "standard", "research level: basic, standard, comprehensive or premium")
	flag.StringVar(&model, "model", research.DefaultModel, "model for research and composition")
	flag.BoolVar(&estimateOnly, "estimate-only", false, "print a cost projection and exit without contacting the vision service")
	flag.IntVar(&lotCount, "lots", 100, "lot count for the -estimate-only projection")
	flag.Parse()

	// Accept the lot UUID as positional argument too.
	if lotUUID == "" && flag.NArg() > 0 {
		lotUUID = flag.Arg(0)
	}

	if estimateOnly {
		fmt.Print(cost.BudgetReport(lotCount))
		return
	}

	if lotUUID == "" {
		fmt.Fprintf(os.Stderr, "Usage: iris -lot <uuid> [-level standard] [-output posts]\n")
		fmt.Fprintf(os.Stderr, "       iris -estimate-only [-lots 100]\n")
		os.Exit(1)
	}

	level, err := images.ParseLevel(levelName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid research level")
	}

	config.LoadEnvFile()
	if missing := config.CheckRequiredConfig(); len(missing) > 0 {
		log.Fatal().Msgf("missing required config: %s", strings.Join(missing, ", "))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	completer, err := research.NewGeminiCompleter(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize completion client")
	}

	tracker := cost.NewTracker()
	researcher := research.NewResearcher(completer, tracker).WithModel(model)
	composer := research.NewComposer(completer, tracker).WithModel(model)
	aggregator := images.NewAggregator(images.NewDownloader(), imagesDir)

	// Usage ledger (optional; failures never stop a run).
	var ledger pipeline.Ledger
	dbPath := os.Getenv("IRIS_DB_PATH")
	if dbPath == "" {
		dbPath = "usage.db"
	}
	if l, err := storage.OpenLedger(dbPath); err != nil {
		log.Warn().Err(err).Str("dbPath", dbPath).Msg("failed to open usage ledger")
	} else {
		defer l.Close()
		ledger = l
	}

	// Telegram channel preview (optional).
	var publisher pipeline.Publisher
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		chatIDStr := os.Getenv("TELEGRAM_CHANNEL_ID")
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			log.Warn().Str("TELEGRAM_CHANNEL_ID", chatIDStr).Msg("BOT_TOKEN set but TELEGRAM_CHANNEL_ID invalid, publishing disabled")
		} else if p, err := publish.NewPublisher(token, chatID); err != nil {
			log.Warn().Err(err).Msg("failed to initialize telegram publisher")
		} else {
			publisher = p
		}
	}

	generator := pipeline.NewGenerator(pipeline.Opts{
		Fetcher:    artisio.NewClient(artisio.ClientOpts{}),
		Aggregator: aggregator,
		Researcher: researcher,
		Composer:   composer,
		Tracker:    tracker,
		Publisher:  publisher,
		Ledger:     ledger,
		OutputDir:  outputDir,
		Level:      level,
	})

	path, err := generator.GeneratePost(ctx, lotUUID)
	if err != nil {
		log.Fatal().Err(err).Msg("post generation failed")
	}

	log.Info().Str("path", path).Float64("sessionCostUSD", tracker.SessionTotal()).Msg("done")
}
