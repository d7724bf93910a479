package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/callsight/internal/docstore"
	"github.com/dgallion1/callsight/internal/parser"
)

type uploadRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// handleUpload receives extracted text from the frontend. The browser does
// its own file processing; this path only stores text.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "empty text received, please ensure the file has content", http.StatusBadRequest)
		return
	}
	if int64(len(req.Text)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("text too large, maximum %d bytes allowed", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = "document.txt"
	}

	doc := &docstore.Document{
		ID:        docstore.NewID(),
		Filename:  sanitizeFilename(filename),
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	s.store.Put(doc)

	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"text_length": len(doc.Text),
		"status":      "ready",
	})
}

// handleUploadFile accepts a raw document file and extracts text server-side.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	text, err := p.Parse(io.LimitReader(file, s.cfg.MaxUploadBytes+1), filename)
	if err != nil {
		jsonError(w, "text extraction failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, "no extractable text in file", http.StatusUnprocessableEntity)
		return
	}
	if int64(len(text)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("extracted text too large, maximum %d bytes allowed", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	doc := &docstore.Document{
		ID:        docstore.NewID(),
		Filename:  filename,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.store.Put(doc)

	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"text_length": len(doc.Text),
		"status":      "ready",
	})
}

// handleListDocuments lists uploaded documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.store.List()
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, map[string]any{
			"document_id": d.ID,
			"filename":    d.Filename,
			"text_length": len(d.Text),
			"created_at":  d.CreatedAt.Format(time.RFC3339),
			"analyzed":    d.Analysis != nil,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out})
}

// handleDeleteDocument removes a document. Deleting an unknown id is a no-op,
// so repeated deletes always succeed.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	s.store.Delete(docID)
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": docID,
		"status":      "deleted",
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
