package storage

import (
	"fmt"
	"strings"

	"github.com/pable/vbscout/internal/model"
)

// EventFilter selects which stored transcripts contribute events.
// Empty fields do not filter.
type EventFilter struct {
	HomeTeam  string
	Opponents []string // away team names
	Hashes    []string
}

func (f EventFilter) where() (string, []any) {
	var clauses []string
	var args []any
	if f.HomeTeam != "" {
		clauses = append(clauses, "t.home_team = ?")
		args = append(args, f.HomeTeam)
	}
	if len(f.Opponents) > 0 {
		clauses = append(clauses, fmt.Sprintf("t.away_team IN (%s)", placeholders(len(f.Opponents))))
		for _, o := range f.Opponents {
			args = append(args, o)
		}
	}
	if len(f.Hashes) > 0 {
		clauses = append(clauses, fmt.Sprintf("t.hash IN (%s)", placeholders(len(f.Hashes))))
		for _, h := range f.Hashes {
			args = append(args, h)
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// LoadEvents reloads the event streams of every transcript matching f, ordered
// by match date, then transcript, then original position.
func (db *DB) LoadEvents(f EventFilter) (model.Events, error) {
	var ev model.Events
	where, args := f.where()

	rows, err := db.conn.Query(`
		SELECT t.match_label, r.rotation, r.passer, r.grade, r.custom_code
		FROM receptions r
		JOIN transcripts t ON t.hash = r.transcript_hash
		`+where+`
		ORDER BY t.match_date, t.hash, r.seq`, args...)
	if err != nil {
		return ev, fmt.Errorf("load receptions: %w", err)
	}
	for rows.Next() {
		var r model.ReceptionEvent
		var rot int
		var grade string
		if err := rows.Scan(&r.Match, &rot, &r.Passer, &grade, &r.Code); err != nil {
			rows.Close()
			return ev, err
		}
		r.Rotation = model.Rotation(rot)
		r.Grade = model.Grade(grade)
		ev.Receptions = append(ev.Receptions, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return ev, err
	}

	rows, err = db.conn.Query(`
		SELECT t.match_label, e.rotation, e.attacker, e.custom_code
		FROM transitions e
		JOIN transcripts t ON t.hash = e.transcript_hash
		`+where+`
		ORDER BY t.match_date, t.hash, e.seq`, args...)
	if err != nil {
		return ev, fmt.Errorf("load transitions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e model.TransitionEvent
		var rot int
		if err := rows.Scan(&e.Match, &rot, &e.Attacker, &e.Code); err != nil {
			return ev, err
		}
		e.Rotation = model.Rotation(rot)
		ev.Transitions = append(ev.Transitions, e)
	}
	return ev, rows.Err()
}

// ListTeams returns the distinct home team names, sorted.
func (db *DB) ListTeams() ([]string, error) {
	return db.distinct(`SELECT DISTINCT home_team FROM transcripts ORDER BY home_team`)
}

// ListOpponents returns the distinct away teams faced by home, sorted.
func (db *DB) ListOpponents(home string) ([]string, error) {
	return db.distinct(`SELECT DISTINCT away_team FROM transcripts WHERE home_team = ? ORDER BY away_team`, home)
}

func (db *DB) distinct(query string, args ...any) ([]string, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// placeholders returns a comma-separated string of n "?" for SQL IN clauses,
// e.g. placeholders(3) → "?,?,?".
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
