// Command migrate creates the events table used by the postgres storage
// backend. It reads the same environment the server does.
package main

import (
	"log"

	"github.com/usm-dti/event-tracker-api/pkg/config"
	"github.com/usm-dti/event-tracker-api/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id                  TEXT PRIMARY KEY,
    title               TEXT NOT NULL,
    description         TEXT NOT NULL DEFAULT '',
    campus              TEXT NOT NULL DEFAULT '',
    category            TEXT NOT NULL,
    public              TEXT NOT NULL,
    organizer_unit      TEXT NOT NULL DEFAULT '',
    specific_department TEXT NOT NULL DEFAULT '',
    start_date          TEXT NOT NULL,
    end_date            TEXT NOT NULL,
    start_time          TEXT NOT NULL DEFAULT '',
    end_time            TEXT NOT NULL DEFAULT '',
    status              TEXT NOT NULL DEFAULT '',
    image_url           TEXT NOT NULL DEFAULT '',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_events_created_at ON events (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_events_dates ON events (start_date, end_date);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("events table ready")
}
