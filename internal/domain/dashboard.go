package domain

// ============================================================
// Dashboard — KPI response for GET /v1/dashboard
// ============================================================

// DashboardMetrics holds every KPI shown on the dashboard for a single
// reporting month. Revenue figures consider only paid invoices; contract
// figures consider contracts whose end date has not passed.
type DashboardMetrics struct {
	Month int `json:"mes"`
	Year  int `json:"ano"`

	GrossRevenue    float64 `json:"rbm"`            // paid invoice value in the month
	TotalCommission float64 `json:"comissaoTotal"`  // commission owed on those invoices
	NetRevenue      float64 `json:"rlm"`            // gross minus commission
	AverageTicket   float64 `json:"ticketMedio"`    // net revenue per distinct paying client
	GrowthMoM       float64 `json:"crescimentoMoM"` // net revenue growth vs previous month, percent
	MRR             float64 `json:"mrr"`            // active contract value spread over 12 months
	NewClients      int     `json:"novosClientes"`
	ActiveClients   int     `json:"clientesAtivos"`
	ACV             float64 `json:"acv"` // mean active contract value
	PaidOnTimePct   float64 `json:"pagasEmDiaPct"`
	OverdueClients  int     `json:"clientesInadimplentes"`

	Aging          AgingBuckets  `json:"aging"`
	MonthlyRevenue []SeriesPoint `json:"faturamentoMensal"`
	MonthlyGrowth  []SeriesPoint `json:"crescimentoMensal"`
}

// AgingBuckets splits overdue unpaid value by how long it has been due.
type AgingBuckets struct {
	UpTo30 float64 `json:"ate30"`
	UpTo60 float64 `json:"ate60"`
	Over60 float64 `json:"acima60"`
}

// SeriesPoint is one month in a dashboard time series. Label is the
// Portuguese month abbreviation plus two-digit year, e.g. "Fev/24".
type SeriesPoint struct {
	Label string  `json:"mes"`
	Value float64 `json:"valor"`
}
