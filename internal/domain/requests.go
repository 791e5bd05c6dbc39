package domain

// ============================================================
// Request bodies (user-facing API)
// ============================================================
//
// Dates typed by operators arrive as DD/MM/YYYY text and are parsed at the
// handler boundary. Everything forwarded to the data service is RFC 3339.

// AgentRequest is the body for POST/PUT on /v1/corretores.
type AgentRequest struct {
	Name    string `json:"nome"`
	Email   string `json:"email,omitempty"`
	Address string `json:"endereco,omitempty"`
	Phone   string `json:"fone,omitempty"`
	HiredAt string `json:"dataAdmissao,omitempty"` // DD/MM/YYYY
}

// ContractRequest is the body for POST/PUT on /v1/contratos.
type ContractRequest struct {
	ClientID        int64    `json:"clienteId"`
	ProgramID       int64    `json:"programaId"`
	IssueDate       string   `json:"dataEmissao,omitempty"` // DD/MM/YYYY
	EndDate         string   `json:"dataVencimento"`        // DD/MM/YYYY
	Insertions      *int     `json:"numInsercoes,omitempty"`
	Value           *float64 `json:"valor,omitempty"`
	AgentID         *int64   `json:"corretorId,omitempty"`
	CommissionPct   *float64 `json:"comissao,omitempty"`
	BillingDay      *int     `json:"diaVencimento,omitempty"`
	PaymentMethodID *int64   `json:"formaPagamentoId,omitempty"`
	Status          string   `json:"status,omitempty"`
	Description     string   `json:"descritivo,omitempty"`
}

// ContractResponse returns the stored contract plus the outcome of the
// invoice writes the mutation triggered.
type ContractResponse struct {
	Contract *Contract    `json:"contrato"`
	Invoices *BatchResult `json:"faturas,omitempty"`
}

// GenerateInvoiceRequest is the body for POST /v1/contratos/{id}/faturas.
// It asks for a single invoice in the given competence month.
type GenerateInvoiceRequest struct {
	Month int `json:"mes"`
	Year  int `json:"ano"`
}

// PaymentRequest is the body for PUT /v1/faturamento/{id}/pagamento.
type PaymentRequest struct {
	PaidDate        string `json:"dataPagamento"` // DD/MM/YYYY
	PaymentMethodID int64  `json:"formaPagamentoId"`
}
