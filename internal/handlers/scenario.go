package handlers

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mit2nil/decorum/pkg/scenario"
)

// ScenarioSummary describes a hydrated bundle without leaking which
// player holds which condition text to the wrong screen.
type ScenarioSummary struct {
	File                  string          `json:"file"`
	Name                  string          `json:"name,omitempty"`
	Player1ConditionCount int             `json:"player1_condition_count"`
	Player2ConditionCount int             `json:"player2_condition_count"`
	Report                scenario.Report `json:"report"`
}

type ScenarioHandler struct {
	logger  *slog.Logger
	dataDir string
}

func NewScenarioHandler(logger *slog.Logger, dataDir string) *ScenarioHandler {
	return &ScenarioHandler{
		logger:  logger,
		dataDir: dataDir,
	}
}

// ServeHTTP routes scenario reads:
// GET /v1/scenarios        - list bundle files
// GET /v1/scenarios/{file} - summarize one bundle
func (h *ScenarioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filename := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/scenarios"), "/")
	if filename == "" {
		h.handleList(w)
		return
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") {
		http.Error(w, "Invalid filename", http.StatusBadRequest)
		return
	}
	h.handleGet(w, filename)
}

func (h *ScenarioHandler) handleList(w http.ResponseWriter) {
	entries, err := os.ReadDir(filepath.Join(h.dataDir, "scenarios"))
	if err != nil {
		if os.IsNotExist(err) {
			h.encode(w, []string{})
			return
		}
		h.logger.Error("Failed to read scenarios directory", "error", err)
		http.Error(w, "Failed to list scenarios", http.StatusInternalServerError)
		return
	}

	files := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			files = append(files, entry.Name())
		}
	}
	h.encode(w, files)
}

func (h *ScenarioHandler) handleGet(w http.ResponseWriter, filename string) {
	res, err := scenario.LoadFile(filepath.Join(h.dataDir, "scenarios", filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		h.logger.Warn("Failed to load scenario bundle", "file", filename, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.encode(w, ScenarioSummary{
		File:                  filename,
		Name:                  res.Name,
		Player1ConditionCount: len(res.Conditions[0]),
		Player2ConditionCount: len(res.Conditions[1]),
		Report:                res.Report,
	})
}

func (h *ScenarioHandler) encode(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
