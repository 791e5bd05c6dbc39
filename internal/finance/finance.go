// Package finance computes the dashboard KPIs from plain entity slices.
// Compute is a pure function of its inputs: services fetch, this package
// aggregates, handlers serialize.
package finance

import (
	"fmt"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/billing"
	"github.com/coder-muller/radio-cultura-go/internal/domain"
)

// Period identifies a reporting month.
type Period struct {
	Month time.Month
	Year  int
}

// Contains reports whether t falls inside the period (local time).
func (p Period) Contains(t time.Time) bool {
	return t.Month() == p.Month && t.Year() == p.Year
}

// Offset returns the period n months away (negative for past months).
func (p Period) Offset(n int) Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, n, 0)
	return Period{Month: t.Month(), Year: t.Year()}
}

var monthAbbrev = [...]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// Label renders the period as the dashboard shows it, e.g. "Fev/24".
func (p Period) Label() string {
	return fmt.Sprintf("%s/%02d", monthAbbrev[p.Month-1], p.Year%100)
}

// Compute aggregates every dashboard KPI for the reporting period. The same
// inputs always produce the same output; now is passed in so overdue and
// active-contract cutoffs are reproducible in tests.
func Compute(invoices []domain.Invoice, contracts []domain.Contract, clients []domain.Client, p Period, now time.Time) *domain.DashboardMetrics {
	byContract := make(map[int64]*domain.Contract, len(contracts))
	for i := range contracts {
		byContract[contracts[i].ID] = &contracts[i]
	}

	gross, commission := revenueFor(invoices, byContract, p)
	net := gross - commission

	prevGross, prevCommission := revenueFor(invoices, byContract, p.Offset(-1))
	prevNet := prevGross - prevCommission

	growth := 0.0
	if prevNet > 0 {
		growth = (net - prevNet) / prevNet * 100
	}

	payingClients := map[int64]struct{}{}
	for _, inv := range invoices {
		if inv.PaidDate != nil && p.Contains(*inv.PaidDate) {
			payingClients[inv.ClientID] = struct{}{}
		}
	}
	ticket := 0.0
	if len(payingClients) > 0 {
		ticket = net / float64(len(payingClients))
	}

	var mrr, contractValue float64
	activeCount := 0
	activeClients := map[int64]struct{}{}
	for _, c := range contracts {
		if c.EndDate.Before(now) {
			continue
		}
		activeCount++
		activeClients[c.ClientID] = struct{}{}
		if c.Value != nil {
			mrr += *c.Value / 12
			contractValue += *c.Value
		}
	}
	acv := 0.0
	if activeCount > 0 {
		acv = contractValue / float64(activeCount)
	}

	m := &domain.DashboardMetrics{
		Month:           int(p.Month),
		Year:            p.Year,
		GrossRevenue:    gross,
		TotalCommission: commission,
		NetRevenue:      net,
		AverageTicket:   ticket,
		GrowthMoM:       growth,
		MRR:             mrr,
		NewClients:      newClients(clients, contracts, p),
		ActiveClients:   len(activeClients),
		ACV:             acv,
		PaidOnTimePct:   paidOnTimePct(invoices, p),
	}

	overdueClients := map[int64]struct{}{}
	for _, inv := range invoices {
		if inv.PaidDate != nil || inv.DueDate == nil || !inv.DueDate.Before(now) {
			continue
		}
		overdueClients[inv.ClientID] = struct{}{}
		days := int(now.Sub(*inv.DueDate).Hours() / 24)
		switch {
		case days <= 30:
			m.Aging.UpTo30 += inv.Amount()
		case days <= 60:
			m.Aging.UpTo60 += inv.Amount()
		default:
			m.Aging.Over60 += inv.Amount()
		}
	}
	m.OverdueClients = len(overdueClients)

	m.MonthlyRevenue, m.MonthlyGrowth = series(invoices, p)
	return m
}

// revenueFor sums paid invoice value and the commission owed on it for one
// month. Commission comes from the originating contract; an invoice with no
// surviving contract, agent or percentage owes none.
func revenueFor(invoices []domain.Invoice, byContract map[int64]*domain.Contract, p Period) (gross, commission float64) {
	for _, inv := range invoices {
		if inv.PaidDate == nil || !p.Contains(*inv.PaidDate) {
			continue
		}
		gross += inv.Amount()
		commission += billing.Commission(inv.Amount(), contractPct(inv, byContract))
	}
	return gross, commission
}

func contractPct(inv domain.Invoice, byContract map[int64]*domain.Contract) float64 {
	if inv.ContractID == nil {
		return 0
	}
	c, ok := byContract[*inv.ContractID]
	if !ok || c.CommissionPct == nil {
		return 0
	}
	return *c.CommissionPct
}

// newClients counts clients whose first contract was created in the period.
func newClients(clients []domain.Client, contracts []domain.Contract, p Period) int {
	earliest := map[int64]time.Time{}
	for _, c := range contracts {
		if c.CreatedAt == nil {
			continue
		}
		cur, ok := earliest[c.ClientID]
		if !ok || c.CreatedAt.Before(cur) {
			earliest[c.ClientID] = *c.CreatedAt
		}
	}
	count := 0
	for _, cl := range clients {
		if first, ok := earliest[cl.ID]; ok && p.Contains(first) {
			count++
		}
	}
	return count
}

// paidOnTimePct is the share of invoices issued in the period that were
// paid within the period and no later than their due date.
func paidOnTimePct(invoices []domain.Invoice, p Period) float64 {
	issued, onTime := 0, 0
	for _, inv := range invoices {
		if inv.IssueDate == nil || !p.Contains(*inv.IssueDate) {
			continue
		}
		issued++
		if inv.PaidDate != nil && p.Contains(*inv.PaidDate) &&
			inv.DueDate != nil && !inv.PaidDate.After(*inv.DueDate) {
			onTime++
		}
	}
	if issued == 0 {
		return 0
	}
	return float64(onTime) / float64(issued) * 100
}

// series builds the six-month paid revenue history ending at the reporting
// period, plus month-over-month growth. The first point and any month whose
// predecessor collected nothing report zero growth.
func series(invoices []domain.Invoice, p Period) (revenue, growth []domain.SeriesPoint) {
	revenue = make([]domain.SeriesPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := p.Offset(-i)
		total := 0.0
		for _, inv := range invoices {
			if inv.PaidDate != nil && month.Contains(*inv.PaidDate) {
				total += inv.Amount()
			}
		}
		revenue = append(revenue, domain.SeriesPoint{Label: month.Label(), Value: total})
	}

	growth = make([]domain.SeriesPoint, 0, 6)
	for i, point := range revenue {
		pct := 0.0
		if i > 0 && revenue[i-1].Value > 0 {
			pct = (point.Value - revenue[i-1].Value) / revenue[i-1].Value * 100
		}
		growth = append(growth, domain.SeriesPoint{Label: point.Label, Value: pct})
	}
	return revenue, growth
}
