package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    fetched_at           TEXT NOT NULL,
    provider_time        TEXT,
    base_code            TEXT NOT NULL,
    source               TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_rates (
    snapshot_id          INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    code                 TEXT NOT NULL,
    rate                 REAL NOT NULL,
    PRIMARY KEY (snapshot_id, code)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_fetched ON snapshots(fetched_at);
CREATE INDEX IF NOT EXISTS idx_snapshot_rates_code ON snapshot_rates(code);
`
