// Package interchange implements the delimited-text bulk format: one project
// per line, free-text fields quoted, dates as epoch milliseconds.
package interchange

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saubh/planwise/internal/domain/project"
)

// Header is the exact first line of every export.
const Header = "ID,Client Name,Phone Number,Description,Total Payment,Advance Payment,Is Completed,Is Paid,Creation Date,Last Modified Date"

const fieldCount = 10

// Export writes the projects to w in the interchange format.
func Export(w io.Writer, projects []project.Project) error {
	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range projects {
		line := fmt.Sprintf("%d,%s,%s,%s,%s,%s,%t,%t,%d,%d\n",
			p.ID,
			quote(p.ClientName),
			p.PhoneNumber,
			quote(p.Description),
			formatAmount(p.TotalPayment),
			formatAmount(p.AdvancePayment),
			p.IsCompleted,
			p.IsPaid,
			p.CreationDate.UnixMilli(),
			p.LastModifiedDate.UnixMilli(),
		)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("writing project %d: %w", p.ID, err)
		}
	}

	return nil
}

// quote wraps a free-text field in double quotes, doubling inner quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Parse reads interchange rows into drafts. Rows that cannot be parsed are
// counted and skipped rather than aborting the whole file.
func Parse(r io.Reader) (drafts []project.Project, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != fieldCount || header[0] != "ID" {
		return nil, 0, fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		draft, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		drafts = append(drafts, draft)
	}

	return drafts, skipped, nil
}

func parseRow(row []string) (project.Project, bool) {
	if len(row) != fieldCount {
		return project.Project{}, false
	}

	id, _ := strconv.ParseInt(row[0], 10, 64)
	total, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return project.Project{}, false
	}
	advance, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return project.Project{}, false
	}

	createdMs, err := strconv.ParseInt(row[8], 10, 64)
	if err != nil {
		createdMs = time.Now().UnixMilli()
	}
	modifiedMs, err := strconv.ParseInt(row[9], 10, 64)
	if err != nil {
		modifiedMs = time.Now().UnixMilli()
	}

	return project.Project{
		ID:               id,
		ClientName:       row[1],
		PhoneNumber:      row[2],
		Description:      row[3],
		TotalPayment:     total,
		AdvancePayment:   advance,
		IsCompleted:      row[6] == "true",
		IsPaid:           row[7] == "true",
		CreationDate:     time.UnixMilli(createdMs),
		LastModifiedDate: time.UnixMilli(modifiedMs),
	}, true
}

// ImportResult summarizes one import run.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Importer feeds parsed rows back through the project service.
type Importer struct {
	svc    *project.Service
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(svc *project.Service, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{svc: svc, logger: logger}
}

// Import parses r and adds each row via the service, so imported ids are
// discarded and fresh ones assigned. Each run is tagged with a batch id.
func (i *Importer) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	result := ImportResult{BatchID: uuid.NewString()}

	drafts, skipped, err := Parse(r)
	if err != nil {
		return result, err
	}
	result.Skipped = skipped

	for _, draft := range drafts {
		if _, err := i.svc.Add(ctx, draft); err != nil {
			return result, fmt.Errorf("importing row for %q: %w", draft.ClientName, err)
		}
		result.Imported++
	}

	i.logger.Info("import finished",
		"batch", result.BatchID,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}
