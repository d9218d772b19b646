package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         INTEGER PRIMARY KEY,
    phone      TEXT NOT NULL,
    full_name  TEXT,
    email      TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_phone_active
    ON users(phone) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS wines (
    id                 INTEGER PRIMARY KEY,
    user_id            INTEGER NOT NULL REFERENCES users(id),
    name               TEXT NOT NULL,
    producer           TEXT,
    vintage            INTEGER,
    wine_type          TEXT NOT NULL DEFAULT 'red'
                       CHECK (wine_type IN ('red', 'white', 'rose', 'sparkling', 'dessert', 'other')),
    country            TEXT,
    region             TEXT,
    grape_variety      TEXT,
    quantity           INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
    location           TEXT,
    supplier_name      TEXT,
    supplier_url       TEXT,
    supplier_sku       TEXT,
    purchase_price     REAL,
    purchase_date      TEXT,
    estimated_value    REAL,
    alcohol_percentage REAL,
    bottle_size        TEXT NOT NULL DEFAULT '750ml',
    notes              TEXT,
    rating             INTEGER CHECK (rating BETWEEN 1 AND 5),
    label_image        BLOB,
    label_mime         TEXT,
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wines_user
    ON wines(user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS otp_codes (
    id          TEXT PRIMARY KEY,
    phone       TEXT NOT NULL,
    code_hash   TEXT NOT NULL,
    attempts    INTEGER NOT NULL DEFAULT 0,
    expires_at  DATETIME NOT NULL,
    consumed_at DATETIME,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_otp_codes_phone
    ON otp_codes(phone, created_at DESC);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
