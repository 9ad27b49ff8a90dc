package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/civiclens/civiclens/internal/archive"
	"github.com/civiclens/civiclens/internal/config"
	"github.com/civiclens/civiclens/internal/notify"
	"github.com/civiclens/civiclens/internal/service"
	"github.com/civiclens/civiclens/internal/store"
)

var syncDate string
var syncState string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize officials from the federal and state registries",
	Long: `Sync reconciles the congressional and state legislative directories
against the local officials record.

For each jurisdiction the pipeline fetches both directories (consulting the
daily archive cache first), fingerprints every official, and presents the
new and updated records for interactive approval. Approved changes are
queued as pending change requests; nothing is written to the authoritative
record directly.

Examples:
  # Full interactive sync across all states
  ./civiclens sync

  # Re-run a single state against today's archive
  ./civiclens sync --state PA

  # Sync against a specific archive date
  ./civiclens sync --date 2026-08-30`,
	Run: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	today := time.Now().Format("2006-01-02")
	syncCmd.Flags().StringVarP(&syncDate, "date", "d", today, "Archive date to sync against (YYYY-MM-DD)")
	syncCmd.Flags().StringVarP(&syncState, "state", "s", "", "Sync only a specific state (two-letter code)")
}

func runSync(cmd *cobra.Command, args []string) {
	// Missing required configuration is fatal before any jurisdiction runs
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if syncDate == "" {
		syncDate = time.Now().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", syncDate)
	if err != nil {
		log.Fatalf("Invalid date format: %v", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Connect to database
	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create dependencies
	archives := archive.New(cfg.ArchiveDir)
	federal := service.NewFederalClient(cfg.CongressAPIKey, archives)
	stateClient := service.NewStateClient(cfg.OpenStatesAPIKey, archives)
	checksums := store.NewChecksumStore(db)
	requests := store.NewChangeRequestStore(db)
	engine := service.NewEngine(checksums)
	confirmer := service.NewStdinConfirmer(os.Stdin, os.Stdout)

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.SlackWebhookURL != "" {
		notifier = notify.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	syncer := service.NewSyncer(federal, stateClient, engine, checksums, requests, confirmer, notifier)

	jurisdictions := service.Jurisdictions
	if syncState != "" {
		jurisdictions = []string{strings.ToUpper(syncState)}
	}

	log.Printf("Starting officials sync for date: %s", syncDate)
	stats, err := syncer.Run(ctx, jurisdictions, date)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Sync cancelled")
			syncer.PrintSummary(stats)
			os.Exit(1)
		}
		log.Fatalf("Sync failed: %v", err)
	}
	syncer.PrintSummary(stats)

	pending, err := requests.CountPending(ctx)
	if err != nil {
		log.Printf("Warning: failed to count pending change requests: %v", err)
	} else {
		log.Printf("Pending change requests awaiting application: %d", pending)
	}
}
