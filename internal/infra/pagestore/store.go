// Package pagestore provides a SQLite implementation of DocumentStore.
package pagestore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/salesdeck/salesdeck/internal/domain"
)

//go:embed schema.sql
var schema string

// Store persists page rows in a SQLite database.
// The data column holds the page body as JSON text and is returned untouched
// apart from decoding, so fields the application does not model survive.
type Store struct {
	db    *sql.DB
	clock domain.Clock
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, clock: domain.RealClock{}}, nil
}

// WithClock sets the clock used for created_at and updated_at.
func (s *Store) WithClock(clock domain.Clock) *Store {
	s.clock = clock
	return s
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const selectColumns = "slug, data, created_at, updated_at, company_name, person_name"

// Get returns the row for slug, or nil if it does not exist.
func (s *Store) Get(ctx context.Context, slug string) (domain.Document, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM pages WHERE slug = ?",
		slug,
	)
	doc, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get page %q: %w", slug, err)
	}
	return doc, nil
}

// List returns all rows, most recently updated first.
func (s *Store) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM pages ORDER BY updated_at DESC, slug ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	return docs, nil
}

// Put inserts or updates the row identified by its slug.
// created_at is set on insert only; updated_at is set on every write.
func (s *Store) Put(ctx context.Context, row domain.Document) error {
	slug, ok := row.NonEmptyString(domain.RowSlug)
	if !ok {
		return domain.ErrEmptySlug
	}

	body, ok := row.Map(domain.RowData)
	if !ok {
		body = map[string]any{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal page data: %w", err)
	}

	now := domain.FormatTimestamp(s.clock.Now())
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (slug, data, created_at, updated_at, company_name, person_name)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			company_name = excluded.company_name,
			person_name = excluded.person_name`,
		slug, string(data), now, now,
		nullString(row, domain.RowCompanyName), nullString(row, domain.RowPersonName),
	)
	if err != nil {
		return fmt.Errorf("put page %q: %w", slug, err)
	}

	return nil
}

// Delete removes the row for slug.
func (s *Store) Delete(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("delete page %q: %w", slug, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete page %q: %w", slug, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (domain.Document, error) {
	var (
		slug, data, createdAt, updatedAt string
		company, person                  sql.NullString
	)
	if err := sc.Scan(&slug, &data, &createdAt, &updatedAt, &company, &person); err != nil {
		return nil, err
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(data), &body); err != nil || body == nil {
		// Corrupt or non-object data is surfaced as an empty body.
		body = map[string]any{}
	}

	return domain.Document{
		domain.RowSlug:        slug,
		domain.RowData:        body,
		domain.RowCreatedAt:   createdAt,
		domain.RowUpdatedAt:   updatedAt,
		domain.RowCompanyName: nullable(company),
		domain.RowPersonName:  nullable(person),
	}, nil
}

func nullString(row domain.Document, key string) sql.NullString {
	v, ok := row.String(key)
	return sql.NullString{String: v, Valid: ok}
}

func nullable(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}

// Ensure Store implements DocumentStore.
var _ domain.DocumentStore = (*Store)(nil)
