package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/callsight/internal/pipeline"
)

type analyzeRequest struct {
	DocumentID string `json:"document_id"`
}

// handleAnalyze runs the chunk/analyze/validate/merge pipeline for an
// uploaded document and stores the result as the document's latest analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
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

	if _, running := s.inflight.LoadOrStore(doc.ID, struct{}{}); running {
		jsonError(w, "analysis already in progress for this document", http.StatusConflict)
		return
	}
	defer s.inflight.Delete(doc.ID)

	result, err := s.pipe.Analyze(r.Context(), doc.Text)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	// The document may have been deleted while the analysis ran; the result
	// is still returned, just not retained.
	s.store.SetAnalysis(doc.ID, result)

	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"analysis":    result,
		"status":      "completed",
	})
}

// writeAnalyzeError maps pipeline failures to structured responses. A chunk
// failure carries the chunk index and stage so the caller can retry with
// context; nothing here ever takes the process down.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrEmptyText) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var chunkErr *pipeline.ChunkError
	if errors.As(err, &chunkErr) {
		w.Header().Set("Content-Type", "application/json")
		code := http.StatusBadGateway
		if chunkErr.Stage == pipeline.StageValidate {
			code = http.StatusUnprocessableEntity
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"error": chunkErr.Error(),
			"chunk": chunkErr.Chunk,
			"stage": chunkErr.Stage,
		})
		return
	}
	jsonError(w, "analysis failed: "+err.Error(), http.StatusInternalServerError)
}
