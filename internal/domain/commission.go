package domain

// ============================================================
// Commissions — report for GET /v1/comissoes
// ============================================================

// AgentUnassigned is the display sentinel for rows whose invoice has no
// agent or whose agent record no longer exists.
const AgentUnassigned = "Não atribuído"

// CommissionRow is one paid invoice with its commission resolved against
// the originating contract. Date fields are formatted DD/MM/YYYY.
type CommissionRow struct {
	InvoiceID     int64   `json:"faturaId"`
	AgentName     string  `json:"corretor"`
	ClientName    string  `json:"cliente"`
	ProgramName   string  `json:"programa"`
	IssueDate     string  `json:"dataEmissao,omitempty"`
	DueDate       string  `json:"dataVencimento,omitempty"`
	PaidDate      string  `json:"dataPagamento"`
	Value         float64 `json:"valor"`
	CommissionPct float64 `json:"comissao"`
	Commission    float64 `json:"valorComissao"`
}

// CommissionReport is the full commission statement for a period.
type CommissionReport struct {
	Rows            []CommissionRow `json:"comissoes"`
	TotalValue      float64         `json:"valorTotal"`
	TotalCommission float64         `json:"comissaoTotal"`
}
