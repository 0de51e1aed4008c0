package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS staging_items (
    token       TEXT PRIMARY KEY,
    item_id     TEXT NOT NULL,
    category    TEXT NOT NULL,
    type        TEXT NOT NULL,
    subtype     TEXT NOT NULL DEFAULT 'unknown',
    color_name  TEXT NOT NULL,
    color_r     INTEGER NOT NULL CHECK (color_r BETWEEN 0 AND 255),
    color_g     INTEGER NOT NULL CHECK (color_g BETWEEN 0 AND 255),
    color_b     INTEGER NOT NULL CHECK (color_b BETWEEN 0 AND 255),
    color_group TEXT NOT NULL,
    fit         TEXT NOT NULL DEFAULT 'unknown',
    formality   TEXT NOT NULL DEFAULT 'unknown',
    season      TEXT NOT NULL DEFAULT '[]',
    image_path  TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'discarded')),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS wardrobe_items (
    id          TEXT PRIMARY KEY,
    category    TEXT NOT NULL,
    type        TEXT NOT NULL,
    subtype     TEXT NOT NULL DEFAULT 'unknown',
    color_name  TEXT NOT NULL,
    color_r     INTEGER NOT NULL CHECK (color_r BETWEEN 0 AND 255),
    color_g     INTEGER NOT NULL CHECK (color_g BETWEEN 0 AND 255),
    color_b     INTEGER NOT NULL CHECK (color_b BETWEEN 0 AND 255),
    color_group TEXT NOT NULL,
    fit         TEXT NOT NULL DEFAULT 'unknown',
    formality   TEXT NOT NULL DEFAULT 'unknown',
    season      TEXT NOT NULL DEFAULT '[]',
    image_path  TEXT NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at  DATETIME
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
