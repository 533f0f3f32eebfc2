package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset TEXT NOT NULL,
    dataset_path TEXT,
    min_support REAL NOT NULL,
    min_confidence REAL NOT NULL,
    transaction_count INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS itemsets (
    run_id INTEGER NOT NULL,
    algorithm TEXT NOT NULL,
    position INTEGER NOT NULL,
    items TEXT NOT NULL,
    size INTEGER NOT NULL,
    support REAL NOT NULL,
    PRIMARY KEY (run_id, algorithm, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rules (
    run_id INTEGER NOT NULL,
    algorithm TEXT NOT NULL,
    position INTEGER NOT NULL,
    antecedent TEXT NOT NULL,
    consequent TEXT NOT NULL,
    support REAL NOT NULL,
    confidence REAL NOT NULL,
    PRIMARY KEY (run_id, algorithm, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS timings (
    run_id INTEGER NOT NULL,
    algorithm TEXT NOT NULL,
    seconds REAL NOT NULL,
    PRIMARY KEY (run_id, algorithm),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);
CREATE INDEX IF NOT EXISTS idx_itemsets_run ON itemsets(run_id, algorithm);
CREATE INDEX IF NOT EXISTS idx_rules_run ON rules(run_id, algorithm);
`
