package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		nickname TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		avatar TEXT NOT NULL,
		coins INT NOT NULL DEFAULT 1000,
		login_streak INT NOT NULL DEFAULT 0,
		last_claim_date DATE,
		equipped_border_id INT,
		equipped_background_id INT,
		equipped_hands_id INT,
		wins INT NOT NULL DEFAULT 0,
		losses INT NOT NULL DEFAULT 0,
		total_earned INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price INT NOT NULL,
		image_id TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_items (
		user_id UUID NOT NULL REFERENCES users(id),
		item_id INT NOT NULL REFERENCES items(id),
		acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS match_history (
		id BIGSERIAL PRIMARY KEY,
		room_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		winner_id UUID NOT NULL,
		loser_id UUID NOT NULL,
		reward INT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		ended_at TIMESTAMPTZ NOT NULL
	)`,
}

// seedItems is the launch catalog, inserted once into an empty items table.
var seedItems = []struct {
	name    string
	price   int
	imageID string
	color   string
	typ     string
}{
	{"Neon Frame", 250, "border-1", "#00f0ff", "border"},
	{"Golden Frame", 500, "border-2", "#ffd700", "border"},
	{"Glitch Frame", 750, "border-3", "#ff0055", "border"},
	{"Night City", 400, "background-1", "#1a1a2e", "background"},
	{"Synth Sunset", 600, "background-2", "#ff6ec7", "background"},
	{"Data Stream", 800, "background-3", "#0aff9d", "background"},
	{"Chrome Hands", 300, "hands-1", "#c0c0c0", "hands"},
	{"Plasma Hands", 550, "hands-2", "#8a2be2", "hands"},
	{"Inferno Hands", 900, "hands-3", "#ff4500", "hands"},
}

// EnsureSchema creates missing tables and seeds the cosmetics catalog when it
// is empty. Safe to run on every startup.
func EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, it := range seedItems {
			_, err := tx.Exec(ctx,
				`INSERT INTO items (name, price, image_id, color, type) VALUES ($1, $2, $3, $4, $5)`,
				it.name, it.price, it.imageID, it.color, it.typ,
			)
			if err != nil {
				return fmt.Errorf("seed item %q: %w", it.name, err)
			}
		}
		return nil
	})
}
