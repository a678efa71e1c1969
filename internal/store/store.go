// Package store persists processed documents and their extracted fields in
// SQLite. The pipeline itself is stateless; everything about a document
// after processing, including which fields a human has since corrected,
// lives here.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"idextract/internal/extract"
	"idextract/internal/logger"
	"idextract/pkg/models"
)

// Common store errors
var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrFieldNotFound is returned when a correction targets a field the
	// document does not have.
	ErrFieldNotFound = errors.New("field not found on document")
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id            TEXT PRIMARY KEY,
	filename      TEXT NOT NULL,
	document_type TEXT NOT NULL,
	type_label    TEXT NOT NULL,
	complete      INTEGER NOT NULL DEFAULT 0,
	advisories    TEXT NOT NULL DEFAULT '[]',
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS extracted_fields (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id      TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	field_name       TEXT NOT NULL,
	field_value      TEXT NOT NULL,
	is_required      INTEGER NOT NULL DEFAULT 0,
	needs_correction INTEGER NOT NULL DEFAULT 0,
	confidence_score REAL NOT NULL DEFAULT 0,
	error_message    TEXT NOT NULL DEFAULT '',
	corrected        INTEGER NOT NULL DEFAULT 0,
	corrected_at     TIMESTAMP,
	UNIQUE (document_id, field_name)
);

CREATE INDEX IF NOT EXISTS idx_extracted_fields_document
	ON extracted_fields (document_id);
`

// Store is a SQLite-backed document store.
type Store struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// Open opens (and if needed creates) the SQLite database at path and
// applies the schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// modernc sqlite is single-writer; one connection avoids SQLITE_BUSY
	// and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{
		db:  db,
		log: logger.WithComponent("store"),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type documentRow struct {
	models.Document
	AdvisoriesJSON string `db:"advisories"`
}

// SaveResult stores a freshly processed document and returns the stored
// record.
func (s *Store) SaveResult(ctx context.Context, filename string, result *extract.Result) (*models.Document, error) {
	doc := &models.Document{
		ID:           uuid.NewString(),
		Filename:     filename,
		DocumentType: result.DocumentType,
		TypeLabel:    result.TypeLabel,
		Complete:     result.Complete,
		CreatedAt:    time.Now().UTC(),
		Advisories:   result.Advisories,
	}

	advisories, err := json.Marshal(result.Advisories)
	if err != nil {
		return nil, fmt.Errorf("encoding advisories: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, filename, document_type, type_label, complete, advisories, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.DocumentType, doc.TypeLabel, doc.Complete, string(advisories), doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	for _, field := range result.Fields {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO extracted_fields (document_id, field_name, field_value, is_required, needs_correction, confidence_score, error_message)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			doc.ID, field.Name, field.Value, field.Required, field.NeedsCorrection, field.Confidence, field.Error)
		if err != nil {
			return nil, fmt.Errorf("inserting field %s: %w", field.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing: %w", err)
	}

	s.log.Info().
		Str("document_id", doc.ID).
		Str("document_type", doc.DocumentType).
		Int("fields", len(result.Fields)).
		Msg("Document saved")

	return s.Get(ctx, doc.ID)
}

// Get returns one document with its fields.
func (s *Store) Get(ctx context.Context, id string) (*models.Document, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, filename, document_type, type_label, complete, advisories, created_at
		 FROM documents WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	doc := row.Document
	if err := json.Unmarshal([]byte(row.AdvisoriesJSON), &doc.Advisories); err != nil {
		return nil, fmt.Errorf("decoding advisories: %w", err)
	}

	if err := s.db.SelectContext(ctx, &doc.Fields,
		`SELECT id, document_id, field_name, field_value, is_required, needs_correction, confidence_score, error_message, corrected, corrected_at
		 FROM extracted_fields WHERE document_id = ? ORDER BY field_name`, id); err != nil {
		return nil, fmt.Errorf("loading fields: %w", err)
	}

	return &doc, nil
}

// List returns stored documents, newest first, with their fields.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*models.Document, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var ids []string
	if err := s.db.SelectContext(ctx, &ids,
		`SELECT id FROM documents ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	docs := make([]*models.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes a document and its fields.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CorrectFields applies manual corrections to a document's fields. Each
// corrected field gets the new value, full confidence, a cleared
// needs-correction flag, and a correction timestamp.
func (s *Store) CorrectFields(ctx context.Context, id string, corrections map[string]string) (*models.Document, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for name, value := range corrections {
		res, err := tx.ExecContext(ctx,
			`UPDATE extracted_fields
			 SET field_value = ?, needs_correction = 0, error_message = '', confidence_score = 1.0, corrected = 1, corrected_at = ?
			 WHERE document_id = ? AND field_name = ?`,
			value, now, id, name)
		if err != nil {
			return nil, fmt.Errorf("correcting field %s: %w", name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, name)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing: %w", err)
	}

	s.log.Info().
		Str("document_id", id).
		Int("corrections", len(corrections)).
		Msg("Fields corrected")

	return s.Get(ctx, id)
}
