package parser

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/pable/vbscout/internal/model"
)

// ReadTranscript reads and parses the transcript at path.
func ReadTranscript(path string) (*model.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return ParseTranscript(filepath.Base(path), data)
}

// ParseTranscript parses raw transcript bytes. Scouting software writes
// transcripts in ISO-8859-1; they are decoded to UTF-8 before scanning.
func ParseTranscript(name string, data []byte) (*model.Transcript, error) {
	// Hash the raw bytes for the idempotency key.
	hash := fmt.Sprintf("%x", sha256.Sum256(data))

	text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	lines := SplitLines(string(text))

	header, err := ParseHeader(lines)
	if err != nil {
		slog.Warn("transcript header incomplete, using placeholders",
			"file", name, "date", header.Date, "home", header.HomeTeam, "away", header.AwayTeam, "err", err)
	}

	return &model.Transcript{
		Hash:     hash,
		FileName: name,
		Header:   header,
		Events:   Scan(lines, header.Label()),
	}, nil
}

// SplitLines splits text on '\n' and drops a trailing '\r' from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
