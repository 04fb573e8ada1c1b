package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, started_at, ledger_path, tax_rate, entry_count, total_profit_brl, total_tax_brl)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt, r.LedgerPath, r.TaxRate,
		r.EntryCount, r.TotalProfitBRL, r.TotalTaxBRL,
	)
	return err
}

func (j *SQLite) RecordResult(r Result) error {
	_, err := j.db.Exec(`
		INSERT INTO results
		(run_id, seq, date, operation, quantity, running_quantity, conversion_rate, profit_brl, tax_brl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Seq, r.Date, r.Operation, r.Quantity,
		r.RunningQuantity, r.ConversionRate, r.ProfitBRL, r.TaxBRL,
	)
	return err
}

func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, started_at, ledger_path, tax_rate, entry_count, total_profit_brl, total_tax_brl
		FROM runs ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.LedgerPath, &r.TaxRate,
			&r.EntryCount, &r.TotalProfitBRL, &r.TotalTaxBRL); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (j *SQLite) ListResultsByRun(runID string) ([]Result, error) {
	rows, err := j.db.Query(`
		SELECT run_id, seq, date, operation, quantity, running_quantity, conversion_rate, profit_brl, tax_brl
		FROM results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.RunID, &r.Seq, &r.Date, &r.Operation, &r.Quantity,
			&r.RunningQuantity, &r.ConversionRate, &r.ProfitBRL, &r.TaxBRL); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
