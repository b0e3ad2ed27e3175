package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"adpod/internal/config"
	"adpod/internal/cpl"
)

// readCPL loads a composition playlist from disk and extracts its metadata.
// The file name, not the full path, becomes the fallback title.
func readCPL(path string) (string, cpl.Metadata, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", cpl.Metadata{}, fmt.Errorf("resolve cpl path %q: %w", path, err)
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return "", cpl.Metadata{}, fmt.Errorf("read cpl %q: %w", path, err)
	}
	fileName := filepath.Base(expanded)
	return fileName, cpl.Extract(string(raw), fileName), nil
}

// displaySource turns a CPL file path into a human friendly label for table
// output. Separators collapse to spaces and each word is title cased.
func displaySource(path string) string {
	if path == "" {
		return "Unknown CPL"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	label := strings.TrimSpace(cleaned.String())
	if label == "" {
		return "Unknown CPL"
	}
	return cases.Title(language.Und).String(label)
}

func formatDisplayTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Local().Format("2006-01-02 15:04")
}

func formatStatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	parts := strings.Split(status, "_")
	for i, part := range parts {
		lower := strings.ToLower(part)
		if lower == "" {
			continue
		}
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
