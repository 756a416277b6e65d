package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mit2nil/decorum/internal/services"
	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/condition"
	"github.com/mit2nil/decorum/pkg/house"
	"github.com/mit2nil/decorum/pkg/scenario"
	"github.com/mit2nil/decorum/pkg/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateSessionRequest starts a new game. When Scenario names a bundle
// file the house and conditions come from it; otherwise conditions are
// dealt at random. Seed is optional and makes the deal reproducible.
type CreateSessionRequest struct {
	Player1  string `json:"player1,omitempty"`
	Player2  string `json:"player2,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
}

// ActionRequest applies one operation to a session. Player must be the
// active player for anything that mutates the house or turn state.
type ActionRequest struct {
	Action string `json:"action"`
	Player int    `json:"player"`
	Room   *int   `json:"room,omitempty"`
	Slot   string `json:"slot,omitempty"`
	Style  string `json:"style,omitempty"`
	Color  string `json:"color,omitempty"`
}

// ActionResponse returns the updated session plus any query payload.
type ActionResponse struct {
	Session *session.Session   `json:"session"`
	Results []condition.Result `json:"results,omitempty"`
}

type SessionHandler struct {
	storage services.Storage
	logger  *slog.Logger
	dataDir string
}

func NewSessionHandler(storage services.Storage, logger *slog.Logger, dataDir string) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		logger:  logger,
		dataDir: dataDir,
	}
}

// ServeHTTP routes session operations:
// POST /v1/sessions                - create
// GET /v1/sessions/{id}            - read
// DELETE /v1/sessions/{id}         - delete
// POST /v1/sessions/{id}/actions   - apply an action
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	parts := []string{}
	if path != "" {
		parts = strings.Split(path, "/")
	}

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case len(parts) >= 1:
		id, err := uuid.Parse(parts[0])
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid session ID format")
			return
		}
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			h.handleRead(w, r, id)
		case len(parts) == 1 && r.Method == http.MethodDelete:
			h.handleDelete(w, r, id)
		case len(parts) == 2 && parts[1] == "actions" && r.Method == http.MethodPost:
			h.handleAction(w, r, id)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		h2     *house.House
		conds  [2][]condition.Condition
		report scenario.Report
	)
	if req.Scenario != "" {
		if strings.Contains(req.Scenario, "..") || strings.Contains(req.Scenario, "/") {
			h.writeError(w, http.StatusBadRequest, "invalid scenario filename")
			return
		}
		res, err := scenario.LoadFile(filepath.Join(h.dataDir, "scenarios", req.Scenario))
		if err != nil {
			h.logger.Warn("Failed to load scenario bundle", "file", req.Scenario, "error", err)
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h2 = res.House
		conds = res.Conditions
		report = res.Report
	} else {
		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		rng := rand.New(rand.NewSource(seed))
		h2 = house.New()
		conds[0], conds[1] = condition.Deal(rng)
	}

	s := session.New(h2, req.Player1, req.Player2, conds[0], conds[1])

	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "id", s.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.logger.Info("Session created", "id", s.ID,
		"scenario", req.Scenario, "unparsed_conditions", report.UnparsedConditions)

	w.WriteHeader(http.StatusCreated)
	h.encode(w, s)
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if s == nil {
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.encode(w, s)
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if s == nil {
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	// The non-active player has read-only visibility. Checking one's own
	// conditions and heart-to-hearts are out-of-turn allowances.
	if req.Action != "check" && req.Action != "heart_to_heart" && req.Player != s.CurrentPlayer {
		h.writeError(w, http.StatusForbidden, "not your turn")
		return
	}

	resp := ActionResponse{Session: s}
	actErr := h.apply(s, req, &resp)
	if actErr != nil {
		status := http.StatusConflict
		if errors.Is(actErr, errBadActionRequest) {
			status = http.StatusBadRequest
		}
		h.writeError(w, status, actErr.Error())
		return
	}

	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.encode(w, resp)
}

var errBadActionRequest = errors.New("invalid action request")

func (h *SessionHandler) apply(s *session.Session, req ActionRequest, resp *ActionResponse) error {
	switch req.Action {
	case "select":
		if req.Room == nil {
			return errBadActionRequest
		}
		if req.Slot != "" {
			typ, ok := catalog.ParseObjectType(req.Slot)
			if !ok {
				return errBadActionRequest
			}
			return s.SelectSlot(*req.Room, typ)
		}
		return s.SelectRoom(*req.Room)
	case "deselect":
		s.Deselect()
		return nil
	case "add":
		style, ok := catalog.ParseStyle(req.Style)
		if !ok {
			return errBadActionRequest
		}
		return s.AddObject(style)
	case "remove":
		return s.RemoveObject()
	case "swap":
		style, ok := catalog.ParseStyle(req.Style)
		if !ok {
			return errBadActionRequest
		}
		return s.SwapObject(style)
	case "paint":
		color, ok := catalog.ParseColor(req.Color)
		if !ok {
			return errBadActionRequest
		}
		return s.PaintWalls(color)
	case "undo":
		return s.Undo()
	case "end_turn":
		s.EndTurn()
		return nil
	case "heart_to_heart":
		return s.HeartToHeart()
	case "check":
		results, err := s.CheckConditions(req.Player)
		if err != nil {
			return err
		}
		resp.Results = results
		return nil
	default:
		return errBadActionRequest
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

func (h *SessionHandler) encode(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
