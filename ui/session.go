package ui

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/jibarix/map-viz/domain/property"
	"github.com/jibarix/map-viz/internal/config"
	"github.com/jibarix/map-viz/internal/ingest"
	"github.com/jibarix/map-viz/internal/testkit"
)

const sessionCookie = "mapviz_session"

// session holds one browser's loaded dataset.
type session struct {
	table    *property.Table
	filename string
}

// sessionStore maps session cookies to loaded datasets. Sessions that
// have not uploaded anything see a synthetic demo dataset so every tab
// renders out of the box.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	demo     *session
	analysis config.AnalysisConfig
}

func newSessionStore(analysis config.AnalysisConfig) *sessionStore {
	gen := testkit.NewPropertyGenerator(testkit.DefaultPropertyConfig())
	demo := &session{
		table:    ingest.Clean(gen.GenerateData(), analysis.ValidSaleThreshold),
		filename: "demo dataset",
	}
	return &sessionStore{
		sessions: make(map[string]*session),
		demo:     demo,
		analysis: analysis,
	}
}

// get returns the dataset for the request's session, falling back to
// the demo dataset.
func (s *sessionStore) get(r *http.Request) *session {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return s.demo
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[c.Value]; ok {
		return sess
	}
	return s.demo
}

// put stores a freshly loaded dataset and sets the session cookie.
func (s *sessionStore) put(w http.ResponseWriter, r *http.Request, table *property.Table, filename string) {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	if id == "" {
		id = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	s.mu.Lock()
	s.sessions[id] = &session{table: table, filename: filename}
	s.mu.Unlock()
}
