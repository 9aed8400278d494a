package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/script"
)

const selectCandidates = `SELECT id, section_id, source, idea_type, search_query,
    media_id, media_title, channel, start_seconds, end_seconds,
    confidence, description, alternative_json, note, marked, removed
FROM candidates`

// AppendCandidate inserts a candidate at the end of its section's list.
func (s *Store) AppendCandidate(ctx context.Context, candidate *script.Candidate) error {
	if candidate == nil {
		return errors.New("candidate required")
	}
	if candidate.Start < 0 || candidate.End <= candidate.Start {
		return fmt.Errorf("candidate %s: %d-%d: %w", candidate.ID, candidate.Start, candidate.End, ErrInvalidRange)
	}
	alternativeJSON, err := marshalAlternative(candidate.Alternative)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO candidates (
            id, section_id, source, idea_type, search_query,
            media_id, media_title, channel, start_seconds, end_seconds,
            confidence, description, alternative_json, note, marked, removed, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		candidate.ID, candidate.SectionID, string(candidate.Source), string(candidate.IdeaType),
		candidate.SearchQuery, candidate.MediaID, candidate.MediaTitle, candidate.Channel,
		candidate.Start, candidate.End, string(candidate.Confidence), candidate.Description,
		alternativeJSON, candidate.Note, boolToInt(candidate.MarkedForDownload), boolToInt(candidate.Removed),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// Candidate returns one candidate by ID.
func (s *Store) Candidate(ctx context.Context, candidateID string) (*script.Candidate, error) {
	row := s.db.QueryRowContext(ctx, selectCandidates+" WHERE id = ?", candidateID)
	candidate, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
	}
	return candidate, err
}

// UpdateTimestamps changes a candidate's clip bounds.
func (s *Store) UpdateTimestamps(ctx context.Context, candidateID string, start, end int) error {
	if start < 0 || end <= start {
		return fmt.Errorf("%d-%d: %w", start, end, ErrInvalidRange)
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE candidates SET start_seconds = ?, end_seconds = ? WHERE id = ?",
		start, end, candidateID)
	if err != nil {
		return fmt.Errorf("update timestamps: %w", err)
	}
	return requireRow(res, "candidate "+candidateID)
}

// ToggleMark flips a candidate's download mark and returns the new state.
func (s *Store) ToggleMark(ctx context.Context, candidateID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE candidates SET marked = CASE marked WHEN 0 THEN 1 ELSE 0 END WHERE id = ?",
		candidateID)
	if err != nil {
		return false, fmt.Errorf("toggle mark: %w", err)
	}
	if err := requireRow(res, "candidate "+candidateID); err != nil {
		return false, err
	}
	var marked int
	if err := s.db.QueryRowContext(ctx,
		"SELECT marked FROM candidates WHERE id = ?", candidateID).Scan(&marked); err != nil {
		return false, fmt.Errorf("read mark: %w", err)
	}
	return marked != 0, nil
}

// MarkAll marks every non-removed candidate for download and returns the
// number of rows changed.
func (s *Store) MarkAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE candidates SET marked = 1 WHERE removed = 0 AND marked = 0")
	if err != nil {
		return 0, fmt.Errorf("mark all candidates: %w", err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all candidates: %w", err)
	}
	return int(changed), nil
}

// Remove soft-deletes a candidate. The row stays for the session so the
// removal can be audited or undone.
func (s *Store) Remove(ctx context.Context, candidateID string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE candidates SET removed = 1 WHERE id = ?", candidateID)
	if err != nil {
		return fmt.Errorf("remove candidate: %w", err)
	}
	return requireRow(res, "candidate "+candidateID)
}

// SwapAlternative exchanges a candidate's primary segment with its stored
// alternative; the previous primary becomes the new alternative. Candidates
// without an alternative are left untouched. Swapping twice restores the
// original state.
func (s *Store) SwapAlternative(ctx context.Context, candidateID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin swap tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var start, end int
	var description string
	var alternativeJSON sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT start_seconds, end_seconds, description, alternative_json FROM candidates WHERE id = ?",
		candidateID).Scan(&start, &end, &description, &alternativeJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read candidate: %w", err)
	}

	alternative, err := unmarshalAlternative(alternativeJSON)
	if err != nil {
		return err
	}
	if alternative == nil {
		return nil
	}

	newAlternativeJSON, err := marshalAlternative(&script.Segment{
		Start:       start,
		End:         end,
		Description: description,
	})
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE candidates
         SET start_seconds = ?, end_seconds = ?, description = ?, alternative_json = ?
         WHERE id = ?`,
		alternative.Start, alternative.End, alternative.Description, newAlternativeJSON, candidateID,
	); err != nil {
		return fmt.Errorf("swap alternative: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit swap tx: %w", err)
	}
	return nil
}

// MarkedCandidates returns every non-removed candidate marked for download,
// ordered by section position then insertion order.
func (s *Store) MarkedCandidates(ctx context.Context) ([]*script.Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		selectCandidates+`
         WHERE marked = 1 AND removed = 0
           AND section_id IN (SELECT id FROM sections)
         ORDER BY (SELECT idx FROM sections WHERE sections.id = candidates.section_id), rowid`)
	if err != nil {
		return nil, fmt.Errorf("query marked candidates: %w", err)
	}
	defer rows.Close()

	var marked []*script.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		marked = append(marked, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate marked candidates: %w", err)
	}
	return marked, nil
}

// Stats aggregates the marked-candidate set.
type Stats struct {
	Count        int
	TotalSeconds int
}

// MarkedStats returns the count and summed duration of marked, non-removed
// candidates.
func (s *Store) MarkedStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(end_seconds - start_seconds), 0)
         FROM candidates WHERE marked = 1 AND removed = 0`).
		Scan(&stats.Count, &stats.TotalSeconds)
	if err != nil {
		return Stats{}, fmt.Errorf("marked stats: %w", err)
	}
	return stats, nil
}

func scanCandidate(row rowScanner) (*script.Candidate, error) {
	var candidate script.Candidate
	var source, ideaType, confidence string
	var alternativeJSON sql.NullString
	var marked, removed int
	err := row.Scan(
		&candidate.ID, &candidate.SectionID, &source, &ideaType, &candidate.SearchQuery,
		&candidate.MediaID, &candidate.MediaTitle, &candidate.Channel,
		&candidate.Start, &candidate.End, &confidence, &candidate.Description,
		&alternativeJSON, &candidate.Note, &marked, &removed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan candidate: %w", err)
	}
	candidate.Source = script.CandidateSource(source)
	candidate.IdeaType = script.IdeaType(ideaType)
	candidate.Confidence = script.Confidence(confidence)
	candidate.MarkedForDownload = marked != 0
	candidate.Removed = removed != 0
	alternative, err := unmarshalAlternative(alternativeJSON)
	if err != nil {
		return nil, err
	}
	candidate.Alternative = alternative
	return &candidate, nil
}

func marshalAlternative(segment *script.Segment) (any, error) {
	if segment == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(segment)
	if err != nil {
		return nil, fmt.Errorf("marshal alternative: %w", err)
	}
	return string(encoded), nil
}

func unmarshalAlternative(value sql.NullString) (*script.Segment, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var segment script.Segment
	if err := json.Unmarshal([]byte(value.String), &segment); err != nil {
		return nil, fmt.Errorf("unmarshal alternative: %w", err)
	}
	return &segment, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
