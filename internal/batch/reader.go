// Package batch parses batch-mode input: a plain list of URLs or a
// tabular file with a recognized column.
package batch

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Recognized header names for the URL column, checked in order.
var urlColumns = []string{"URL", "url", "Link", "ID"}

// ReadSources extracts one source string per item from r. Input with a
// recognized CSV header is read as a table; anything else is treated as
// one URL per line. Blank lines are skipped.
func ReadSources(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}
	text := string(data)

	if sources, ok := parseTable(text); ok {
		return sources, nil
	}
	return parseLines(text), nil
}

// parseTable handles CSV/semicolon-separated input when the first row
// names a recognized URL column.
func parseTable(text string) ([]string, bool) {
	delimiter := sniffDelimiter(text)
	if delimiter == 0 {
		// Single-column table: first line is just the column name.
		header, rest, _ := strings.Cut(text, "\n")
		for _, want := range urlColumns {
			if strings.TrimSpace(header) == want {
				return parseLines(rest), true
			}
		}
		return nil, false
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil, false
	}

	col := -1
	for _, want := range urlColumns {
		for i, name := range records[0] {
			if strings.TrimSpace(name) == want {
				col = i
				break
			}
		}
		if col >= 0 {
			break
		}
	}
	if col < 0 {
		return nil, false
	}

	var sources []string
	for _, record := range records[1:] {
		if col >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[col]); v != "" {
			sources = append(sources, v)
		}
	}
	return sources, true
}

func sniffDelimiter(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	switch {
	case strings.Contains(header, ","):
		return ','
	case strings.Contains(header, ";"):
		return ';'
	default:
		return 0
	}
}

func parseLines(text string) []string {
	var sources []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sources = append(sources, line)
		}
	}
	return sources
}
