package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrelq/equitax"
)

func sampleLedger() *equitax.Ledger {
	return equitax.NewLedger(
		equitax.NewPurchase(equitax.MustParse("2023-01-05"), equitax.M(20, "EUR"), equitax.Q(10)),
		equitax.NewSale(equitax.MustParse("2023-01-10"), equitax.M(19, "EUR"), equitax.Q(4), equitax.M(76, "EUR")),
	)
}

func TestLedgerFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.jsonl")

	if err := EncodeLedgerFile(path, sampleLedger(), false); err != nil {
		t.Fatalf("EncodeLedgerFile() unexpected error: %v", err)
	}
	back, err := DecodeLedgerFile(path)
	if err != nil {
		t.Fatalf("DecodeLedgerFile() unexpected error: %v", err)
	}
	if back.Len() != 2 {
		t.Errorf("round trip = %d entries, want 2", back.Len())
	}
}

func TestEncodeLedgerFileOverwriteGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.jsonl")

	if err := EncodeLedgerFile(path, sampleLedger(), false); err != nil {
		t.Fatalf("EncodeLedgerFile() unexpected error: %v", err)
	}

	err := EncodeLedgerFile(path, sampleLedger(), false)
	if !errors.Is(err, ErrExists) {
		t.Errorf("EncodeLedgerFile() error = %v, want ErrExists", err)
	}

	if err := EncodeLedgerFile(path, sampleLedger(), true); err != nil {
		t.Errorf("EncodeLedgerFile(force) unexpected error: %v", err)
	}
}

func TestArchiveLedger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")
	archiveDir := filepath.Join(dir, "archive")

	if err := EncodeLedgerFile(path, sampleLedger(), false); err != nil {
		t.Fatalf("EncodeLedgerFile() unexpected error: %v", err)
	}
	if err := archiveLedger(path, archiveDir); err != nil {
		t.Fatalf("archiveLedger() unexpected error: %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("archiveLedger() left the original in place")
	}
	matches, err := filepath.Glob(filepath.Join(archiveDir, "ledger.jsonl.*"))
	if err != nil || len(matches) != 1 {
		t.Errorf("archive dir contents = %v, want one dated copy", matches)
	}

	// Archiving a missing file is a no-op.
	if err := archiveLedger(path, archiveDir); err != nil {
		t.Errorf("archiveLedger() on a missing file: %v", err)
	}
}
