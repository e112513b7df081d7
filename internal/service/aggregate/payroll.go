// Package aggregate holds the read-only transforms that shape raw HR
// records into the form report handlers consume.
package aggregate

import (
	"sort"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// MatchPayrollHistory keeps the runs that contain a record for employeeID,
// pairs each with that record, and orders them most recent period first.
// Runs without a match are dropped. Runs sharing a start date keep their
// input order.
func MatchPayrollHistory(runs []domain.PayrollRun, employeeID string) []domain.PayrollHistoryEntry {
	entries := make([]domain.PayrollHistoryEntry, 0, len(runs))
	if employeeID == "" {
		return entries
	}

	for _, run := range runs {
		for _, rec := range run.Records {
			if rec.EmployeeID != employeeID {
				continue
			}
			entries = append(entries, domain.PayrollHistoryEntry{
				RunID:   run.ID,
				Period:  run.Period,
				PayDate: run.PayDate,
				Record:  rec,
			})
			break
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Period.Start.After(entries[j].Period.Start)
	})
	return entries
}
