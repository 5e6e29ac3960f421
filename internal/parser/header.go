package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pable/vbscout/internal/model"
)

const (
	matchSection = "[3MATCH]"
	teamsSection = "[3TEAMS]"
)

// ParseHeader extracts the match date and team names from a transcript's header
// sections. It always returns a usable header: fields that cannot be read keep
// their placeholder value, and the returned error lists which ones fell back.
func ParseHeader(lines []string) (model.MatchHeader, error) {
	h := model.MatchHeader{
		Date:     model.PlaceholderDate,
		HomeTeam: model.PlaceholderHome,
		AwayTeam: model.PlaceholderAway,
	}

	var (
		errs               []error
		sawMatch, sawTeams bool
	)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case !sawMatch && strings.HasPrefix(trimmed, matchSection):
			sawMatch = true
			date, err := matchDate(lines[i+1:])
			if err != nil {
				errs = append(errs, err)
				continue
			}
			h.Date = date
		case !sawTeams && strings.HasPrefix(trimmed, teamsSection):
			sawTeams = true
			home, away := teamNames(lines[i+1:])
			if home != "" {
				h.HomeTeam = home
			} else {
				errs = append(errs, errors.New("home team not found"))
			}
			if away != "" {
				h.AwayTeam = away
			} else {
				errs = append(errs, errors.New("away team not found"))
			}
		}
	}
	if !sawMatch {
		errs = append(errs, fmt.Errorf("no %s section", matchSection))
	}
	if !sawTeams {
		errs = append(errs, fmt.Errorf("no %s section", teamsSection))
	}
	return h, errors.Join(errs...)
}

// matchDate reads "day/month/year" from the first field of the line after
// [3MATCH] and returns "month.day".
func matchDate(rest []string) (string, error) {
	if len(rest) == 0 {
		return "", errors.New("match line missing")
	}
	line := strings.TrimSpace(rest[0])
	if line == "" {
		return "", errors.New("match line empty")
	}
	field, _, _ := strings.Cut(line, ";")
	parts := strings.Split(field, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date format: %q", field)
	}
	return parts[1] + "." + parts[0], nil
}

// teamNames returns the second field of the first two team lines. Comment lines
// (leading ';') and lines with fewer than three fields are skipped; the block
// ends at the next section header.
func teamNames(rest []string) (home, away string) {
	for _, line := range rest {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[3") {
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		fields := strings.Split(trimmed, ";")
		if len(fields) < 3 {
			continue
		}
		name := strings.TrimSpace(fields[1])
		if home == "" {
			home = name
			continue
		}
		away = name
		break
	}
	return home, away
}
