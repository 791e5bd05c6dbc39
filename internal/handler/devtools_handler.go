package handler

import (
	"io"
	"net/http"

	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dev Tools Handlers
// ============================================================

// Legacy export files can be large; cap the request body.
const maxImportBytes = 32 << 20

// devImportHandler accepts a legacy XML dump as the request body. The
// destination table comes from ?tabela=, the way the old importer derived it
// from the uploaded file name.
func devImportHandler(devSvc *service.DevToolsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/dev/import")
		defer span.End()

		table := r.URL.Query().Get("tabela")
		if table == "" {
			writeError(w, http.StatusBadRequest, "o parâmetro tabela é obrigatório")
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "falha ao ler o arquivo")
			return
		}

		resp, err := devSvc.ImportXML(ctx, TenantKeyFromContext(ctx), table, data)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
