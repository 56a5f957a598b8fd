package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
	"github.com/lehigh-university-libraries/glycemic/internal/storage"
)

type Handler struct {
	sessionStore    *storage.SessionStore
	foods           []models.Food
	recipes         []models.Recipe
	defaultCategory models.Category
}

// New creates a handler serving the given catalog. The catalog and recipes
// are read-only for the handler's lifetime.
func New(foods []models.Food, recipes []models.Recipe, defaultCategory models.Category) *Handler {
	return &Handler{
		sessionStore:    storage.New(),
		foods:           foods,
		recipes:         recipes,
		defaultCategory: defaultCategory,
	}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/categories", h.HandleCategories)
	mux.HandleFunc("/api/foods", h.HandleFoods)
	mux.HandleFunc("/api/recipes", h.HandleRecipes)
	mux.HandleFunc("/api/recipes/", h.HandleRecipeDetail)
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Error("Unable to write JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message, "status", code)
	} else {
		slog.Debug(message, "status", code)
	}
	http.Error(w, message, code)
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.Session, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// FoodView is a food as listed to a client, flagged when it is selected
type FoodView struct {
	models.Food
	Selected bool `json:"selected"`
}

func foodViews(foods []models.Food, isSelected func(string) bool) []FoodView {
	views := make([]FoodView, 0, len(foods))
	for _, f := range foods {
		views = append(views, FoodView{Food: f, Selected: isSelected(f.Name)})
	}
	return views
}
