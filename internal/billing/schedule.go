// Package billing holds the pure billing arithmetic: the monthly due-date
// schedule generated for a contract and the commission owed on an invoice.
// Nothing here performs I/O, so every rule is directly testable.
package billing

import "time"

// DueDates returns one due date per month of the contract window, from the
// month of issue through the month of end inclusive. The first month is
// included only when the contract was issued on or before its billing day;
// a contract signed after that month's due date starts billing the month
// after. dayOfMonth ranges 1..30.
//
// Months shorter than dayOfMonth overflow into the next month, matching
// how the desktop system always billed (Feb 30 lands on early March).
func DueDates(issue, end time.Time, dayOfMonth int) []time.Time {
	cur := time.Date(issue.Year(), issue.Month(), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.Local)

	var due []time.Time
	first := true
	for !cur.After(last) {
		if !first || issue.Day() <= dayOfMonth {
			due = append(due, DueDate(cur.Year(), cur.Month(), dayOfMonth))
		}
		first = false
		cur = cur.AddDate(0, 1, 0)
	}
	return due
}

// DueDate builds the due date for a single competence month.
func DueDate(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.Local)
}
