package service

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/infra/observability"
	"github.com/coder-muller/radio-cultura-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var devTracer = otel.Tracer("service/devtools")

// Tables the legacy importer accepts. The caller names the destination
// table explicitly (the ?tabela= query parameter on the import route).
var importableTables = map[string]bool{
	"clientes":       true,
	"corretores":     true,
	"programacao":    true,
	"formaPagamento": true,
	"contratos":      true,
	"faturamento":    true,
}

// DevToolsService loads legacy desktop exports into the data service. The
// exports are the XML dumps of the old Access database, one file per table,
// rows as <row> elements and columns as <column name="..."> children.
type DevToolsService struct {
	store   port.DataStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDevToolsService creates the devtools service with all dependencies injected.
func NewDevToolsService(store port.DataStore, metrics *observability.Metrics, logger *zap.Logger) *DevToolsService {
	return &DevToolsService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

type xmlColumn struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlRow struct {
	Columns []xmlColumn `xml:"column"`
}

// ImportXML parses a legacy table dump and loads it row by row. Rows are
// pushed best effort: a row that fails to load is counted and skipped, the
// rest of the file still goes through.
func (s *DevToolsService) ImportXML(ctx context.Context, tenantKey, table string, data []byte) (*domain.DevImportResponse, error) {
	ctx, span := devTracer.Start(ctx, "DevToolsService.ImportXML")
	defer span.End()

	if !importableTables[table] {
		return nil, &domain.ErrValidation{Field: "tabela", Message: fmt.Sprintf("tabela desconhecida: %s", table)}
	}

	rows, err := parseRows(data)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "arquivo", Message: "XML inválido: " + err.Error()}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrValidation{Field: "arquivo", Message: "o arquivo não contém registros"}
	}

	batchID := uuid.New().String()
	start := time.Now()
	s.logger.Info("DEV: import started",
		zap.String("batch_id", batchID),
		zap.String("table", table),
		zap.Int("rows", len(rows)),
	)

	var result domain.BatchResult
	for _, row := range rows {
		record := recordFrom(row, tenantKey)
		err := s.importRecord(ctx, tenantKey, table, record)
		if err != nil {
			s.logger.Warn("DEV: row import failed",
				zap.String("batch_id", batchID),
				zap.String("table", table),
				zap.Error(err),
			)
			s.metrics.IncrExternalError(table)
		}
		result.Record(err)
	}

	s.logger.Info("DEV: import finished",
		zap.String("batch_id", batchID),
		zap.String("table", table),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(start)),
	)

	return &domain.DevImportResponse{
		Table:   table,
		Result:  result,
		Message: fmt.Sprintf("%d de %d registros importados", result.Succeeded, result.Attempted),
	}, nil
}

// importRecord reshapes one row for its destination table and loads it.
func (s *DevToolsService) importRecord(ctx context.Context, tenantKey, table string, record map[string]any) error {
	switch table {
	case "contratos":
		renameKeys(record, map[string]string{
			"id_cliente":        "clienteId",
			"id_programa":       "programaId",
			"id_corretor":       "corretorId",
			"id_formaPagamento": "formaPagamentoId",
		})
	case "faturamento":
		// Invoices carry denormalized contract fields; resolve them from
		// the already imported contract before loading the row.
		contractID, err := int64Field(record, "id_contrato")
		if err != nil {
			return err
		}
		contract, err := s.store.GetContract(ctx, tenantKey, contractID)
		if err != nil {
			return err
		}
		renameKeys(record, map[string]string{
			"id_cliente":        "clienteId",
			"id_contrato":       "contratoId",
			"id_programa":       "programaId",
			"id_formaPagamento": "formaPagamentoId",
		})
		if contract.AgentID != nil {
			record["corretoresId"] = *contract.AgentID
		}
		if contract.CommissionPct != nil {
			record["comissao"] = *contract.CommissionPct
		}
		if contract.Description != "" {
			record["descritivo"] = contract.Description
		}
	}
	return s.store.ImportRecord(ctx, table, record)
}

// parseRows walks the document and collects every <row> element, whatever
// the surrounding structure of the dump looks like.
func parseRows(data []byte) ([]xmlRow, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var rows []xmlRow
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}
		var row xmlRow
		if err := dec.DecodeElement(&row, &se); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// recordFrom flattens a row into the payload the data service accepts.
// Empty columns stay out of the record and the tenant key always wins over
// whatever the dump carried.
func recordFrom(row xmlRow, tenantKey string) map[string]any {
	record := make(map[string]any, len(row.Columns)+1)
	for _, col := range row.Columns {
		value := strings.TrimSpace(col.Value)
		if col.Name == "" || value == "" {
			continue
		}
		record[col.Name] = value
	}
	record["chave"] = tenantKey
	return record
}

func renameKeys(record map[string]any, mapping map[string]string) {
	for from, to := range mapping {
		if v, ok := record[from]; ok {
			record[to] = v
			delete(record, from)
		}
	}
}

func int64Field(record map[string]any, key string) (int64, error) {
	raw, ok := record[key]
	if !ok {
		return 0, &domain.ErrValidation{Field: key, Message: "required"}
	}
	str := fmt.Sprintf("%v", raw)
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, &domain.ErrValidation{Field: key, Message: "deve ser um número"}
	}
	return id, nil
}
