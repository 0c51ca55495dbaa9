package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"link-tracker-service/models"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS links (
	link_id TEXT PRIMARY KEY,
	destination_url TEXT NOT NULL,
	cloaked_url TEXT NOT NULL,
	clicks BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS captures (
	id BIGSERIAL PRIMARY KEY,
	link_id TEXT NOT NULL,
	ip_address TEXT,
	user_agent TEXT,
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	accuracy DOUBLE PRECISION,
	city TEXT,
	country TEXT,
	browser TEXT,
	os TEXT,
	captured_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_captures_link_id ON captures(link_id);
CREATE INDEX IF NOT EXISTS idx_captures_captured_at ON captures(captured_at DESC);
`

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(databaseURL string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Close() error {
	return p.db.Close()
}

// Ping checks database connectivity
func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresDB) CreateLink(ctx context.Context, link *models.Link) error {
	query := `INSERT INTO links (link_id, destination_url, cloaked_url, clicks, created_at)
	          VALUES ($1, $2, $3, 0, $4) RETURNING created_at`

	err := p.db.QueryRowContext(ctx, query, link.ID, link.DestinationURL, link.CloakedURL, time.Now()).
		Scan(&link.CreatedAt)
	if err != nil {
		return &models.StorageError{Op: "create link", Err: err}
	}
	return nil
}

func (p *PostgresDB) GetLink(ctx context.Context, id string) (*models.Link, error) {
	query := `SELECT link_id, destination_url, cloaked_url, clicks, created_at
	          FROM links WHERE link_id = $1`

	link := &models.Link{}
	err := p.db.QueryRowContext(ctx, query, id).
		Scan(&link.ID, &link.DestinationURL, &link.CloakedURL, &link.Clicks, &link.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Message: "link not found"}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get link", Err: err}
	}
	return link, nil
}

// IncrementClicks bumps the counter in a single UPDATE so concurrent
// resolutions of the same id never lose an increment.
func (p *PostgresDB) IncrementClicks(ctx context.Context, id string) error {
	query := `UPDATE links SET clicks = clicks + 1 WHERE link_id = $1`

	res, err := p.db.ExecContext(ctx, query, id)
	if err != nil {
		return &models.StorageError{Op: "increment clicks", Err: err}
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return &models.StorageError{Op: "increment clicks", Err: err}
	}
	if rows == 0 {
		return &models.NotFoundError{Message: "link not found"}
	}
	return nil
}

func (p *PostgresDB) ListLinks(ctx context.Context) ([]*models.Link, error) {
	query := `SELECT link_id, destination_url, cloaked_url, clicks, created_at
	          FROM links ORDER BY created_at DESC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.StorageError{Op: "list links", Err: err}
	}
	defer rows.Close()

	var links []*models.Link
	for rows.Next() {
		link := &models.Link{}
		if err := rows.Scan(&link.ID, &link.DestinationURL, &link.CloakedURL, &link.Clicks, &link.CreatedAt); err != nil {
			return nil, &models.StorageError{Op: "scan link", Err: err}
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list links", Err: err}
	}

	return links, nil
}

func (p *PostgresDB) InsertCapture(ctx context.Context, event *models.CaptureEvent) error {
	query := `INSERT INTO captures (link_id, ip_address, user_agent, latitude, longitude, accuracy,
	                                city, country, browser, os, captured_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`

	var lat, lon, acc *float64
	if event.Location != nil {
		lat = event.Location.Latitude
		lon = event.Location.Longitude
		acc = event.Location.Accuracy
	}

	err := p.db.QueryRowContext(ctx, query, event.LinkID, event.IPAddress, event.UserAgent,
		lat, lon, acc, event.City, event.Country, event.Browser, event.OS, event.CapturedAt).
		Scan(&event.ID)
	if err != nil {
		return &models.StorageError{Op: "insert capture", Err: err}
	}
	return nil
}

func (p *PostgresDB) ListCaptures(ctx context.Context) ([]*models.CaptureEvent, error) {
	query := `SELECT id, link_id, ip_address, user_agent, latitude, longitude, accuracy,
	                 city, country, browser, os, captured_at
	          FROM captures ORDER BY captured_at DESC, id DESC`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.StorageError{Op: "list captures", Err: err}
	}
	defer rows.Close()

	var events []*models.CaptureEvent
	for rows.Next() {
		event := &models.CaptureEvent{}
		var ip, ua, city, country, browser, os sql.NullString
		var lat, lon, acc sql.NullFloat64
		if err := rows.Scan(&event.ID, &event.LinkID, &ip, &ua, &lat, &lon, &acc,
			&city, &country, &browser, &os, &event.CapturedAt); err != nil {
			return nil, &models.StorageError{Op: "scan capture", Err: err}
		}
		event.IPAddress = ip.String
		event.UserAgent = ua.String
		event.City = city.String
		event.Country = country.String
		event.Browser = browser.String
		event.OS = os.String
		if lat.Valid || lon.Valid || acc.Valid {
			event.Location = &models.Geolocation{}
			if lat.Valid {
				v := lat.Float64
				event.Location.Latitude = &v
			}
			if lon.Valid {
				v := lon.Float64
				event.Location.Longitude = &v
			}
			if acc.Valid {
				v := acc.Float64
				event.Location.Accuracy = &v
			}
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "list captures", Err: err}
	}

	return events, nil
}
