// Package cmd implements the CLI application to manage an equity tax ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/andrelq/equitax"
	"github.com/andrelq/equitax/config"
	"github.com/andrelq/equitax/journal"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&mergeCmd{}, "ledger")
	c.Register(&txCmd{}, "ledger")

	c.Register(&processCmd{}, "tax")
	c.Register(&exportCmd{}, "tax")
	c.Register(&runsCmd{}, "tax")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "equitax.yaml", "Path to the configuration file")

// ErrExists is returned when a write would clobber an existing ledger file.
var ErrExists = errors.New("file already exists")

// LoadConfig loads the app configuration, falling back to defaults when
// the file does not exist.
func LoadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// DecodeLedgerFile reads a JSONL ledger from disk.
func DecodeLedgerFile(path string) (*equitax.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger file %q: %w", path, err)
	}
	defer f.Close()
	l, err := equitax.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger file %q: %w", path, err)
	}
	return l, nil
}

// EncodeLedgerFile writes a ledger to disk. Unless force is set, an
// existing file is never overwritten.
func EncodeLedgerFile(path string, l *equitax.Ledger, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite %q (use -f to force): %w", path, ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file %q: %w", path, err)
	}
	defer f.Close()
	if err := equitax.EncodeLedger(f, l); err != nil {
		return fmt.Errorf("writing ledger file %q: %w", path, err)
	}
	return nil
}

// archiveLedger moves the current ledger file into the archive directory,
// suffixed with today's date, before it gets replaced.
func archiveLedger(path, archiveDir string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("creating archive dir %q: %w", archiveDir, err)
	}
	base := filepath.Base(path)
	dest := filepath.Join(archiveDir, fmt.Sprintf("%s.%s", base, equitax.Today()))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("archiving %q: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Archived previous ledger to %s\n", dest)
	return nil
}

// openJournal opens the run journal named in the configuration, or nil
// when journaling is not configured.
func openJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.DBPath == "" {
		return nil, nil
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
