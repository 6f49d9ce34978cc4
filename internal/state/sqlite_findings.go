package state

import (
	"fmt"
	"log/slog"

	"github.com/apistyle/apilint/pkg/core"
)

// SaveFindings persists the findings of a run in order. Saving an
// empty slice is a no-op.
func (s *SQLiteStore) SaveFindings(runID string, findings []core.FindingRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if len(findings) == 0 {
		return nil
	}

	s.logger.Debug("saving findings",
		slog.String("run_id", runID),
		slog.Int("count", len(findings)),
	)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO findings (run_id, document, rule_id, rule, kind, severity, path, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		_, err = stmt.Exec(runID, f.Document, f.RuleID, f.Rule, f.Kind, f.Severity, f.Path, f.Message)
		if err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindingsForRun retrieves a run's findings in saved order.
func (s *SQLiteStore) FindingsForRun(runID string) ([]core.FindingRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT run_id, document, rule_id, rule, kind, severity, path, message
		 FROM findings WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get findings: %w", err)
	}
	defer rows.Close()

	var findings []core.FindingRecord
	for rows.Next() {
		var f core.FindingRecord
		err := rows.Scan(&f.RunID, &f.Document, &f.RuleID, &f.Rule, &f.Kind, &f.Severity, &f.Path, &f.Message)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}

	return findings, rows.Err()
}
