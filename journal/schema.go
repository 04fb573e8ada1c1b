package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	ledger_path TEXT NOT NULL,
	tax_rate TEXT NOT NULL,
	entry_count INTEGER NOT NULL,
	total_profit_brl TEXT NOT NULL,
	total_tax_brl TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	operation TEXT NOT NULL,
	quantity TEXT NOT NULL,
	running_quantity TEXT NOT NULL,
	conversion_rate TEXT NOT NULL,
	profit_brl TEXT,
	tax_brl TEXT,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`
