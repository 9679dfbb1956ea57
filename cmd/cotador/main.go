package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/cli"
	"github.com/alexanderramin/cotador/internal/config"
	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/intelligence"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/repository"
	"github.com/alexanderramin/cotador/internal/seed"
	"github.com/alexanderramin/cotador/internal/service"
	"github.com/alexanderramin/cotador/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag picks --config out of the arguments before cobra parses them,
// since wiring needs the config ahead of command dispatch.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("cotador", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(config.Path(configFlag(os.Args[1:])))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Open the document store
	store, err := db.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	conn := store.Conn()
	supplierRepo := repository.NewSQLSupplierRepo(conn)
	offerRepo := repository.NewSQLOfferRepo(conn)
	quoteRepo := repository.NewSQLQuoteRepo(conn)
	uow := store.UnitOfWork()

	observer := service.NewZapUseCaseObserver(log)
	suppliers := service.NewSupplierService(supplierRepo, uow, observer)
	if err := seedIfEmpty(ctx, suppliers, cfg.Quote.SeedFile, log); err != nil {
		return err
	}

	// LLM-backed stages; each falls back to rules when the backend fails.
	var llmObserver llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		llmObserver = llm.NewZapObserver(log)
	}
	client, err := llm.NewClient(ctx, cfg.LLM, llmObserver)
	if err != nil {
		return err
	}

	sessions, err := session.Open(cfg.Session.Backend, cfg.Session.RedisURL, cfg.Session.TTL, store.Conn())
	if err != nil {
		return err
	}
	defer sessions.Close()

	budgets := service.NewBudgetService(quoteRepo, offerRepo, log, observer)
	workflow := service.NewWorkflowService(
		intelligence.NewClassifier(client, log),
		intelligence.NewManualNormalizer(client, log),
		intelligence.NewClothingNormalizer(client, log),
		service.NewLookupService(supplierRepo, log),
	)
	negotiation := service.NewNegotiationService(service.NegotiationDeps{
		Workflow:    workflow,
		Questions:   intelligence.NewQuestionGenerator(client, log),
		Interpreter: intelligence.NewInterpreter(client, offerRepo, log),
		FollowUps:   intelligence.NewFollowUpGenerator(client, log),
		Budgets:     budgets,
		Sessions:    sessions,
		MaxOffers:   cfg.Quote.MaxOffers,
		Log:         log,
	}, observer)

	app := &cli.App{
		Workflow:    workflow,
		Negotiation: negotiation,
		Budgets:     budgets,
		Suppliers:   suppliers,
		SeedFile:    cfg.Quote.SeedFile,
		Now:         time.Now,
		Health: []cli.HealthCheck{
			{Name: "store", Check: store.Ping},
			{Name: "llm", Check: func(ctx context.Context) error {
				if !cfg.LLM.Enabled {
					return errors.New("disabled; rule-based fallbacks in use")
				}
				if !client.Available(ctx) {
					return fmt.Errorf("%s at %s is not reachable", cfg.LLM.Provider, cfg.LLM.Endpoint)
				}
				return nil
			}},
			{Name: "sessions", Check: sessions.Ping},
		},
	}

	// Detect interactive terminal for the quote screens.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// seedIfEmpty loads the supplier directory on first run.
func seedIfEmpty(ctx context.Context, suppliers service.SupplierService, seedFile string, log *zap.Logger) error {
	n, err := suppliers.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting suppliers: %w", err)
	}
	if n > 0 {
		return nil
	}
	fixture, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	res, err := suppliers.Seed(ctx, fixture)
	if err != nil {
		return err
	}
	log.Info("supplier directory seeded", zap.Any("collections", res))
	return nil
}
