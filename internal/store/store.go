package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

//go:embed schema.sql
var schemaSQL string

var (
	// ErrNotFound reports a section or candidate ID with no matching row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange reports a timestamp update where start >= end or
	// start is negative.
	ErrInvalidRange = errors.New("invalid time range")
)

// Store manages the session document in an in-memory SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates a fresh, empty document store. The single connection
// serializes all writes; every Open starts from a blank schema.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection: database/sql would otherwise hand each goroutine its
	// own private :memory: database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadDocument replaces the store contents with a freshly parsed document.
func (s *Store) LoadDocument(ctx context.Context, doc *script.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM candidates"); err != nil {
		return fmt.Errorf("clear candidates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sections"); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE document SET title = ? WHERE id = 1", doc.Title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}

	for _, section := range doc.Sections {
		ideasJSON, err := marshalIdeas(section.Ideas)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections (id, idx, kind, heading, body, ideas_json)
             VALUES (?, ?, ?, ?, ?, ?)`,
			section.ID, section.Index, string(section.Kind), section.Heading, section.Text, ideasJSON,
		); err != nil {
			return fmt.Errorf("insert section %s: %w", section.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load tx: %w", err)
	}
	return nil
}

// Document materializes the full current document: title, sections ordered
// by index, candidates in insertion order. Removed candidates are included;
// aggregate queries filter them.
func (s *Store) Document(ctx context.Context) (*script.Document, error) {
	doc := &script.Document{}
	if err := s.db.QueryRowContext(ctx, "SELECT title FROM document WHERE id = 1").Scan(&doc.Title); err != nil {
		return nil, fmt.Errorf("read title: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, idx, kind, heading, body, ideas_json FROM sections ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*script.Section)
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, section)
		byID[section.ID] = section
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}

	candidateRows, err := s.db.QueryContext(ctx, selectCandidates+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer candidateRows.Close()

	for candidateRows.Next() {
		candidate, err := scanCandidate(candidateRows)
		if err != nil {
			return nil, err
		}
		if section, ok := byID[candidate.SectionID]; ok {
			section.Candidates = append(section.Candidates, candidate)
		}
	}
	if err := candidateRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	return doc, nil
}

// Section returns one section with its candidates.
func (s *Store) Section(ctx context.Context, sectionID string) (*script.Section, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, idx, kind, heading, body, ideas_json FROM sections WHERE id = ?", sectionID)
	section, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("section %s: %w", sectionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectCandidates+" WHERE section_id = ? ORDER BY rowid", sectionID)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		section.Candidates = append(section.Candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return section, nil
}

// SetIdeas stores the ideation result for a section.
func (s *Store) SetIdeas(ctx context.Context, sectionID string, ideas []script.Idea) error {
	ideasJSON, err := marshalIdeas(ideas)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "UPDATE sections SET ideas_json = ? WHERE id = ?", ideasJSON, sectionID)
	if err != nil {
		return fmt.Errorf("set ideas: %w", err)
	}
	return requireRow(res, "section "+sectionID)
}

type ideaRecord struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Query     string `json:"query"`
	Reasoning string `json:"reasoning"`
	Searched  bool   `json:"searched"`
}

func marshalIdeas(ideas []script.Idea) (string, error) {
	records := make([]ideaRecord, 0, len(ideas))
	for _, idea := range ideas {
		records = append(records, ideaRecord{
			ID:        idea.ID,
			Type:      string(idea.Type),
			Query:     idea.Query,
			Reasoning: idea.Reasoning,
			Searched:  idea.Searched,
		})
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal ideas: %w", err)
	}
	return string(encoded), nil
}

func unmarshalIdeas(data string) ([]script.Idea, error) {
	if data == "" {
		return nil, nil
	}
	var records []ideaRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal ideas: %w", err)
	}
	ideas := make([]script.Idea, 0, len(records))
	for _, record := range records {
		ideas = append(ideas, script.Idea{
			ID:        record.ID,
			Type:      script.IdeaType(record.Type),
			Query:     record.Query,
			Reasoning: record.Reasoning,
			Searched:  record.Searched,
		})
	}
	return ideas, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (*script.Section, error) {
	var section script.Section
	var kind, ideasJSON string
	if err := row.Scan(&section.ID, &section.Index, &kind, &section.Heading, &section.Text, &ideasJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan section: %w", err)
	}
	section.Kind = script.SectionKind(kind)
	ideas, err := unmarshalIdeas(ideasJSON)
	if err != nil {
		return nil, err
	}
	section.Ideas = ideas
	return &section, nil
}

func requireRow(res sql.Result, subject string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	}
	return nil
}
