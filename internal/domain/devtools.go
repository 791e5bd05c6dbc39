package domain

// ============================================================
// Dev Tools — endpoints for development/seeding
// ============================================================

// DevImportResponse is returned by POST /v1/dev/import.
// Legacy desktop exports arrive as XML dumps; each row is forwarded to the
// data service individually, so the response carries a per-row tally.
type DevImportResponse struct {
	Table   string      `json:"table"`
	Result  BatchResult `json:"result"`
	Message string      `json:"message"`
}
