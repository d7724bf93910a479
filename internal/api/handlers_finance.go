package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/callsight/internal/finance"
)

type extractRequest struct {
	DocumentID string `json:"document_id"`
}

// handleExtractFinancials extracts income-statement line items from a
// document and derives metrics from the extracted values.
func (s *Server) handleExtractFinancials(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.DocumentID == "" {
		jsonError(w, "document_id required in request body", http.StatusBadRequest)
		return
	}

	doc, ok := s.store.Get(req.DocumentID)
	if !ok {
		jsonError(w, "document not found, please upload first", http.StatusNotFound)
		return
	}

	periods := finance.ExtractPeriods(doc.Text)
	currency, unit := finance.DetectCurrencyUnit(doc.Text)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.AnalyzeTimeout)
	defer cancel()
	raw, err := s.llm.Complete(ctx, finance.SystemPrompt, finance.BuildExtractionPrompt(doc.Text, periods))
	if err != nil {
		jsonError(w, "extraction call failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	st, err := finance.ParseStatement(raw, doc.Filename)
	if err != nil {
		jsonError(w, "extraction output unusable: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	// Detected values win over model guesses when the model left them blank.
	if st.Currency == "" {
		st.Currency = currency
	}
	if st.Unit == "" {
		st.Unit = unit
	}
	if len(st.Periods) == 0 {
		st.Periods = periods
	}
	finance.Derive(st)

	s.store.SetFinancials(doc.ID, st)

	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"financials":  st,
		"status":      "completed",
	})
}

// handleExport serves the extracted financials as an XLSX workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, ok := s.store.Get(docID)
	if !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	if doc.Financials == nil {
		jsonError(w, "no financial extraction for this document, call /extract-financials first", http.StatusBadRequest)
		return
	}

	data, err := finance.BuildWorkbook(doc.Financials)
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename+".xlsx"))
	w.Write(data)
}
