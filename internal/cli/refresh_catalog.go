package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/books"
)

// RefreshCatalogCommand runs a one-shot remote catalog fetch into the
// local cache, outside the server process.
type RefreshCatalogCommand struct {
	DatabasePath string
	RemoteURL    string
	Timeout      time.Duration
}

// NewRefreshCatalogCommand creates a new RefreshCatalogCommand
func NewRefreshCatalogCommand() *RefreshCatalogCommand {
	return &RefreshCatalogCommand{}
}

// ParseFlags parses command line flags
func (cmd *RefreshCatalogCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("refresh-catalog", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.RemoteURL, "url", "", "Remote catalog endpoint to fetch from")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Fetch timeout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s refresh-catalog [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch the remote catalog and replace the local cache.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s refresh-catalog -url https://api.example.com/books\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.RemoteURL == "" {
		return fmt.Errorf("-url is required")
	}

	return nil
}

// Run executes the refresh-catalog command
func (cmd *RefreshCatalogCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	service := catalog.NewService(repo, catalog.NewClient(cmd.RemoteURL, cmd.Timeout))

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	if err := service.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Catalog refreshed: %d books cached in %s\n", count, cmd.DatabasePath)
	return nil
}
