// Package docstore holds uploaded documents and their latest analysis in
// memory. Nothing is persisted: a restart clears the store, which is the
// documented lifecycle for this service.
package docstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/callsight/internal/analysis"
	"github.com/dgallion1/callsight/internal/finance"
)

// Document is an uploaded text plus whatever has been computed for it so far.
// Text is immutable after upload; Analysis and Financials hold the latest
// results only.
type Document struct {
	ID        string    `json:"document_id"`
	Filename  string    `json:"filename"`
	Text      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	Analysis   *analysis.Result   `json:"analysis,omitempty"`
	Financials *finance.Statement `json:"financials,omitempty"`
}

// Store is the minimal keyed interface the pipeline and API work against, so
// the in-memory map could be swapped for a persistent store without touching
// either.
type Store interface {
	Get(id string) (*Document, bool)
	Put(doc *Document)
	Delete(id string)
	List() []*Document
	SetAnalysis(id string, r *analysis.Result) bool
	SetFinancials(id string, st *finance.Statement) bool
}

// NewID returns a fresh document id.
func NewID() string {
	return uuid.NewString()
}

// MemoryStore is a mutex-guarded in-memory Store.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]*Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

func (s *MemoryStore) Get(id string) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	return doc, ok
}

func (s *MemoryStore) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

// Delete removes a document. Deleting an absent id is a no-op, so the
// operation is idempotent.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// List returns documents ordered by creation time, newest first.
func (s *MemoryStore) List() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// SetAnalysis records the latest analysis for a document. Returns false if
// the document is gone (deleted while the analysis was running).
func (s *MemoryStore) SetAnalysis(id string, r *analysis.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return false
	}
	doc.Analysis = r
	return true
}

// SetFinancials records the latest financial extraction for a document.
func (s *MemoryStore) SetFinancials(id string, st *finance.Statement) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return false
	}
	doc.Financials = st
	return true
}
