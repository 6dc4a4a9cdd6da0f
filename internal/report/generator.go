// Package report renders the reflection report, a short spent/received
// overview of the ledger, as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/ledger"
	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Reflection is the spent/received overview.
type Reflection struct {
	GeneratedAt   string          `json:"generated_at" yaml:"generated_at"`
	TotalSpent    decimal.Decimal `json:"total_spent" yaml:"-"`
	TotalReceived decimal.Decimal `json:"total_received" yaml:"-"`
	Net           decimal.Decimal `json:"net" yaml:"-"`

	// yaml.v3 does not know decimal.Decimal, so YAML gets the string forms.
	TotalSpentText    string `json:"-" yaml:"total_spent"`
	TotalReceivedText string `json:"-" yaml:"total_received"`
	NetText           string `json:"-" yaml:"net"`
}

// Generator builds and renders reflection reports.
type Generator struct {
	logger logging.Logger
	now    func() time.Time
}

// NewGenerator creates a Generator. now may be nil.
func NewGenerator(logger logging.Logger, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		logger: logging.OrNop(logger).WithField("component", "ReportGenerator"),
		now:    now,
	}
}

// Reflection builds a report from a ledger summary.
func (g *Generator) Reflection(summary ledger.Summary) Reflection {
	return Reflection{
		GeneratedAt:       dateutils.FormatTimestamp(g.now()),
		TotalSpent:        summary.Expenses,
		TotalReceived:     summary.Income,
		Net:               summary.Net,
		TotalSpentText:    summary.Expenses.StringFixed(2),
		TotalReceivedText: summary.Income.StringFixed(2),
		NetText:           summary.Net.StringFixed(2),
	}
}

// Render encodes r in the given format.
func (g *Generator) Render(r Reflection, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return []byte(fmt.Sprintf("Reflection Report\nTotal Spent: %s\nTotal Received: %s\n",
			models.FormatAmount(r.TotalSpent), models.FormatAmount(r.TotalReceived))), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return data, nil
	default:
		return nil, ledgererror.Invalid("format", format, "must be text, json or yaml")
	}
}
