package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/filter"
	"github.com/lehigh-university-libraries/glycemic/internal/metrics"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
	"github.com/lehigh-university-libraries/glycemic/internal/selection"
)

// ViewResponse is what a session currently shows: the filtered list with
// selection flags and the selection label.
type ViewResponse struct {
	Category  models.Category `json:"category"`
	Query     string          `json:"query"`
	Searching bool            `json:"searching"`
	Foods     []FoodView      `json:"foods"`
	Label     []string        `json:"label"`
}

// SummaryResponse is the calculator view of a session: every food sorted
// by name with selection flags, and the aggregate of the selection.
type SummaryResponse struct {
	Summary *metrics.Summary `json:"summary"`
	Label   []string         `json:"label"`
	Foods   []FoodView       `json:"foods"`
}

type toggleRequest struct {
	Name string `json:"name"`
}

type filterRequest struct {
	Category *string `json:"category"`
	Query    *string `json:"query"`
}

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.sessionStore.GetAll())
	case "POST":
		now := time.Now()
		session := &models.Session{
			ID:        uuid.New().String(),
			Category:  h.defaultCategory,
			Selected:  selection.New(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		h.sessionStore.Set(session.ID, session)
		h.writeJSONStatus(w, http.StatusCreated, session)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail serves /api/sessions/{id} and its actions
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID, action, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/")

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch action {
	case "":
		h.handleSession(w, r, session)
	case "toggle":
		h.handleToggle(w, r, sessionID)
	case "clear":
		h.handleClear(w, r, sessionID)
	case "filter":
		h.handleFilter(w, r, sessionID)
	case "view":
		h.handleView(w, r, session)
	case "summary":
		h.handleSummary(w, r, session)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request, session *models.Session) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, session)
	case "DELETE":
		h.sessionStore.Delete(session.ID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req toggleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	food, ok := catalog.Find(h.foods, req.Name)
	if !ok {
		h.writeError(w, "Food not found: "+req.Name, http.StatusNotFound)
		return
	}

	h.update(w, sessionID, func(s *models.Session) {
		s.Selected = selection.Toggle(s.Selected, food)
	})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.update(w, sessionID, func(s *models.Session) {
		s.Selected = selection.Clear(s.Selected)
	})
}

// handleFilter changes the active category and/or search text. A category
// change drops the search text unless a query is sent with it.
func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "PUT" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req filterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var category models.Category
	if req.Category != nil {
		parsed, ok := models.ParseCategory(*req.Category)
		if !ok {
			h.writeError(w, "Unknown category: "+*req.Category, http.StatusBadRequest)
			return
		}
		category = parsed
	}

	h.update(w, sessionID, func(s *models.Session) {
		view := filter.View{Category: s.Category, Query: s.Query}
		if req.Category != nil {
			view = view.WithCategory(category)
		}
		if req.Query != nil {
			view = view.WithQuery(*req.Query)
		}
		s.Category = view.Category
		s.Query = view.Query
	})
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request, session *models.Session) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view := filter.View{Category: session.Category, Query: session.Query}
	selected := selection.Selection(session.Selected)

	h.writeJSON(w, ViewResponse{
		Category:  view.Category,
		Query:     view.Query,
		Searching: view.Searching(),
		Foods:     foodViews(view.Records(h.foods), selected.Contains),
		Label:     selected.Label(),
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request, session *models.Session) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	selected := selection.Selection(session.Selected)

	h.writeJSON(w, SummaryResponse{
		Summary: metrics.Summarize(selected),
		Label:   selected.Label(),
		Foods:   foodViews(catalog.SortedByName(h.foods), selected.Contains),
	})
}

func (h *Handler) update(w http.ResponseWriter, sessionID string, fn func(*models.Session)) {
	session, ok := h.sessionStore.Update(sessionID, fn)
	if !ok {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, session)
}
