package search

import (
	"strings"
	"sync"
)

// Ticket identifies one search issued within a Session.
type Ticket struct {
	Seq   uint64
	Query string
}

// Session tracks the searches of a single input session so that only the
// most recently issued one reaches the visible candidate list.
type Session struct {
	mu         sync.Mutex
	seq        uint64
	query      string
	candidates []Candidate
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Begin records a new search and returns its ticket. Any ticket handed out
// earlier becomes stale.
func (s *Session) Begin(query string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.query = strings.TrimSpace(query)
	return Ticket{Seq: s.seq, Query: s.query}
}

// Apply stores candidates if t is the latest ticket and reports whether they
// were accepted.
func (s *Session) Apply(t Ticket, candidates []Candidate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Seq != s.seq {
		return false
	}
	s.candidates = append([]Candidate(nil), candidates...)
	return true
}

// Candidates returns a copy of the visible candidates.
func (s *Session) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Candidate(nil), s.candidates...)
}

// Query returns the query of the latest issued search.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}
