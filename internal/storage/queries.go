package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/vbscout/internal/model"
)

// TranscriptExists returns true if a transcript with the given hash is already stored.
func (db *DB) TranscriptExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM transcripts WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertTranscript stores the transcript row and both event streams in one
// transaction. Re-inserting the same hash replaces the previous events.
func (db *DB) InsertTranscript(t *model.Transcript) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"receptions", "transitions"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE transcript_hash = ?", t.Hash); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO transcripts(hash, file_name, match_date, home_team, away_team, match_label, receptions, transitions, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Hash, t.FileName, t.Header.Date, t.Header.HomeTeam, t.Header.AwayTeam, t.Header.Label(),
		len(t.Events.Receptions), len(t.Events.Transitions),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert transcript: %w", err)
	}

	recStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO receptions(transcript_hash, seq, rotation, passer, grade, custom_code)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer recStmt.Close()

	for i, r := range t.Events.Receptions {
		if _, err := recStmt.Exec(t.Hash, i, int(r.Rotation), r.Passer, string(r.Grade), r.Code); err != nil {
			return fmt.Errorf("insert reception %d: %w", i, err)
		}
	}

	trStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO transitions(transcript_hash, seq, rotation, attacker, custom_code)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer trStmt.Close()

	for i, e := range t.Events.Transitions {
		if _, err := trStmt.Exec(t.Hash, i, int(e.Rotation), e.Attacker, e.Code); err != nil {
			return fmt.Errorf("insert transition %d: %w", i, err)
		}
	}
	return tx.Commit()
}

const summaryColumns = `hash, file_name, match_date, home_team, away_team, match_label, receptions, transitions, parsed_at`

func scanSummary(row interface{ Scan(...any) error }) (model.TranscriptSummary, error) {
	var s model.TranscriptSummary
	err := row.Scan(&s.Hash, &s.FileName, &s.MatchDate, &s.HomeTeam, &s.AwayTeam,
		&s.MatchLabel, &s.Receptions, &s.Transitions, &s.ParsedAt)
	return s, err
}

// ListTranscripts returns all stored transcripts ordered by match_date desc.
func (db *DB) ListTranscripts() ([]model.TranscriptSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + summaryColumns + `
		FROM transcripts ORDER BY match_date DESC, file_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TranscriptSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetTranscriptByPrefix finds the first transcript whose hash starts with prefix.
// It returns nil, nil when nothing matches.
func (db *DB) GetTranscriptByPrefix(prefix string) (*model.TranscriptSummary, error) {
	s, err := scanSummary(db.conn.QueryRow(`SELECT `+summaryColumns+`
		FROM transcripts WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteTranscript removes a transcript and its events. It reports whether a row was deleted.
func (db *DB) DeleteTranscript(hash string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, table := range []string{"receptions", "transitions"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE transcript_hash = ?", hash); err != nil {
			return false, fmt.Errorf("delete %s: %w", table, err)
		}
	}
	res, err := tx.Exec("DELETE FROM transcripts WHERE hash = ?", hash)
	if err != nil {
		return false, fmt.Errorf("delete transcript: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
// NULL values are rendered as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
