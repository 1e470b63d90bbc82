package http

import (
	"log/slog"
	"net/http"

	"nhatro/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ref, err := s.loadSnapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard snapshot load failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "error.html", map[string]string{"Message": msgLoadFailure})
		return
	}

	overview := core.BuildOverview(ref)

	// Most recent bills on top; the snapshot keeps backend order, which
	// the sqlite and remote backends already sort by month.
	recent := ref.Bills
	if len(recent) > 5 {
		recent = recent[:5]
	}

	s.render(w, r, "index.html", struct {
		Overview core.Overview
		Recent   []core.Bill
	}{Overview: overview, Recent: recent})
}
