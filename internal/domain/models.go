// Package domain defines the core business entities for the Rádio Cultura
// back office. Field JSON tags follow the column names of the CGM Cloud data
// service, so every struct round-trips through the external API unchanged.
package domain

import "time"

// ============================================================
// Clients (Clientes)
// ============================================================

// Client is an advertiser account. Every record belongs to a tenant
// identified by TenantKey ("chave").
type Client struct {
	ID           int64      `json:"id"`
	TenantKey    string     `json:"chave"`
	LegalName    string     `json:"razaoSocial"`
	TradeName    string     `json:"nomeFantasia,omitempty"`
	Contact      string     `json:"contato,omitempty"`
	CPF          string     `json:"cpf,omitempty"`
	CNPJ         string     `json:"cnpj,omitempty"`
	Street       string     `json:"endereco,omitempty"`
	Number       string     `json:"numero,omitempty"`
	District     string     `json:"bairro,omitempty"`
	City         string     `json:"cidade,omitempty"`
	State        string     `json:"estado,omitempty"`
	PostalCode   string     `json:"cep,omitempty"`
	MunicipalReg string     `json:"inscMunicipal,omitempty"`
	Activity     string     `json:"atividade,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"fone,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// ============================================================
// Agents (Corretores)
// ============================================================

// Agent is a sales agent (corretor) who earns commission on paid invoices.
type Agent struct {
	ID        int64      `json:"id"`
	TenantKey string     `json:"chave"`
	Name      string     `json:"nome"`
	Email     string     `json:"email,omitempty"`
	Address   string     `json:"endereco,omitempty"`
	Phone     string     `json:"fone,omitempty"`
	HiredAt   *time.Time `json:"dataAdmissao,omitempty"`
}

// ============================================================
// Programs (Programação)
// ============================================================

// Program is a broadcast slot that contracts sponsor.
type Program struct {
	ID               int64   `json:"id"`
	TenantKey        string  `json:"chave"`
	Name             string  `json:"programa"`
	StartTime        string  `json:"horaInicio,omitempty"`
	EndTime          string  `json:"horaFim,omitempty"`
	Presenter        string  `json:"apresentador,omitempty"`
	Days             string  `json:"diasApresentacao,omitempty"`
	SponsorshipValue float64 `json:"valorPatrocinio,omitempty"`
	Style            string  `json:"estilo,omitempty"`
}

// ============================================================
// Payment methods (Formas de pagamento)
// ============================================================

// PaymentMethod is a way invoices get settled (boleto, PIX, dinheiro...).
type PaymentMethod struct {
	ID        int64  `json:"id"`
	TenantKey string `json:"chave"`
	Name      string `json:"formaPagamento"`
}

// ============================================================
// Contracts (Contratos)
// ============================================================

// Contract statuses as stored by the data service.
const (
	ContractActive    = "ativo"
	ContractInactive  = "inativo"
	ContractCancelled = "cancelado"
)

// Contract is an advertising agreement between a client and the station.
// Nullable columns map to pointers so absent values survive the round trip.
type Contract struct {
	ID              int64      `json:"id"`
	TenantKey       string     `json:"chave"`
	ClientID        int64      `json:"clienteId"`
	ProgramID       int64      `json:"programaId"`
	IssueDate       *time.Time `json:"dataEmissao,omitempty"`
	EndDate         time.Time  `json:"dataVencimento"`
	Insertions      *int       `json:"numInsercoes,omitempty"`
	Value           *float64   `json:"valor,omitempty"`
	AgentID         *int64     `json:"corretorId,omitempty"`
	CommissionPct   *float64   `json:"comissao,omitempty"`
	BillingDay      *int       `json:"diaVencimento,omitempty"`
	PaymentMethodID *int64     `json:"formaPagamentoId,omitempty"`
	Status          string     `json:"status,omitempty"`
	Description     string     `json:"descritivo,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`

	// Expanded relations, present when the data service embeds them.
	Client        *Client        `json:"cliente,omitempty"`
	Program       *Program       `json:"programacao,omitempty"`
	Agent         *Agent         `json:"corretor,omitempty"`
	PaymentMethod *PaymentMethod `json:"formaPagamento,omitempty"`
	Invoices      []Invoice      `json:"faturamento,omitempty"`
}

// ============================================================
// Invoices (Faturamento)
// ============================================================

// Invoice is a monthly charge generated from a contract. An invoice with a
// nil PaidDate is pending; a due date in the past makes it overdue.
type Invoice struct {
	ID              int64      `json:"id"`
	TenantKey       string     `json:"chave"`
	ClientID        int64      `json:"clienteId"`
	ContractID      *int64     `json:"contratoId,omitempty"`
	ProgramID       int64      `json:"programaId"`
	AgentID         *int64     `json:"corretoresId,omitempty"`
	IssueDate       *time.Time `json:"dataEmissao,omitempty"`
	DueDate         *time.Time `json:"dataVencimento,omitempty"`
	PaidDate        *time.Time `json:"dataPagamento,omitempty"`
	Value           *float64   `json:"valor,omitempty"`
	CommissionPct   *float64   `json:"comissao,omitempty"`
	PaymentMethodID *int64     `json:"formaPagamentoId,omitempty"`
	Description     string     `json:"descritivo,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`

	Client        *Client        `json:"cliente,omitempty"`
	Contract      *Contract      `json:"contrato,omitempty"`
	Program       *Program       `json:"programa,omitempty"`
	Agent         *Agent         `json:"corretores,omitempty"`
	PaymentMethod *PaymentMethod `json:"formaPagamento,omitempty"`
}

// Paid reports whether the invoice has a payment registered.
func (i Invoice) Paid() bool { return i.PaidDate != nil }

// Amount returns the invoice value, treating a missing value as zero.
func (i Invoice) Amount() float64 {
	if i.Value == nil {
		return 0
	}
	return *i.Value
}

// ============================================================
// Activity log (Logs)
// ============================================================

// LogEntry is an audit record the data service keeps per mutation.
type LogEntry struct {
	ID        int64      `json:"id"`
	TenantKey string     `json:"chave"`
	Kind      string     `json:"tipo"`
	Table     string     `json:"tabela"`
	Message   string     `json:"mensagem"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ============================================================
// Batch outcomes
// ============================================================

// BatchResult reports the outcome of a best-effort fan-out of remote writes,
// such as generating the invoice run of a new contract. Individual failures
// never abort the batch; they are counted and carried here.
type BatchResult struct {
	Attempted int      `json:"attempted"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Record adds one item outcome to the result.
func (b *BatchResult) Record(err error) {
	b.Attempted++
	if err != nil {
		b.Failed++
		b.Errors = append(b.Errors, err.Error())
		return
	}
	b.Succeeded++
}

// ============================================================
// Generic API Response wrappers
// ============================================================

// ListResponse wraps paginated list results.
type ListResponse[T any] struct {
	Data     []T  `json:"data"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// SuccessResponse wraps a successful mutation with no entity body.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
