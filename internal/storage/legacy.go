package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fintrack/internal/logging"
)

// LegacyRecord is one line of the old "Description: d, Amount: a, Category: c,
// Date: t" text ledger. Category is empty for the three-field variant.
type LegacyRecord struct {
	Line        int
	Description string
	Amount      string
	Category    string
	Date        string
}

var legacyKeys = map[string]bool{
	"Description": true,
	"Amount":      true,
	"Category":    true,
	"Date":        true,
}

// ReadLegacy parses a legacy text ledger. Malformed lines are skipped with a
// warning; only reader failures are returned as errors.
func ReadLegacy(r io.Reader, logger logging.Logger) ([]LegacyRecord, error) {
	logger = logging.OrNop(logger)

	var records []LegacyRecord
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := ParseLegacyLine(line)
		if err != nil {
			logger.Warn("Skipping malformed line",
				logging.F(logging.FieldLine, lineNo),
				logging.F(logging.FieldReason, err.Error()))
			continue
		}
		rec.Line = lineNo
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading legacy ledger: %w", err)
	}

	logger.Debug("Read legacy ledger", logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// ParseLegacyLine parses a single "Key: value, Key: value" line.
func ParseLegacyLine(line string) (LegacyRecord, error) {
	parts := strings.Split(strings.TrimSpace(line), ", ")
	if len(parts) != 3 && len(parts) != 4 {
		return LegacyRecord{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(parts))
	}

	values := make(map[string]string, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(part, ": ", 2)
		if len(kv) != 2 {
			return LegacyRecord{}, fmt.Errorf("field %q is not in 'Key: value' form", part)
		}
		key := strings.TrimSpace(kv[0])
		if !legacyKeys[key] {
			return LegacyRecord{}, fmt.Errorf("unknown field %q", key)
		}
		if _, dup := values[key]; dup {
			return LegacyRecord{}, fmt.Errorf("duplicate field %q", key)
		}
		values[key] = kv[1]
	}

	for _, required := range []string{"Description", "Amount", "Date"} {
		if _, ok := values[required]; !ok {
			return LegacyRecord{}, fmt.Errorf("missing field %q", required)
		}
	}

	return LegacyRecord{
		Description: values["Description"],
		Amount:      values["Amount"],
		Category:    values["Category"],
		Date:        values["Date"],
	}, nil
}

// FormatLegacyLine renders rec back into the legacy line format.
func FormatLegacyLine(rec LegacyRecord) string {
	if rec.Category == "" {
		return fmt.Sprintf("Description: %s, Amount: %s, Date: %s", rec.Description, rec.Amount, rec.Date)
	}
	return fmt.Sprintf("Description: %s, Amount: %s, Category: %s, Date: %s",
		rec.Description, rec.Amount, rec.Category, rec.Date)
}

// WriteLegacy writes one line per record.
func WriteLegacy(w io.Writer, records []LegacyRecord) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(FormatLegacyLine(rec) + "\n"); err != nil {
			return fmt.Errorf("error writing legacy ledger: %w", err)
		}
	}
	return bw.Flush()
}
