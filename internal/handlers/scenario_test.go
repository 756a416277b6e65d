package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioHandler_List(t *testing.T) {
	dataDir := t.TempDir()
	scenDir := filepath.Join(dataDir, "scenarios")
	require.NoError(t, os.MkdirAll(scenDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scenDir, "a.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(scenDir, "b.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(scenDir, "notes.txt"), []byte("x"), 0o644))

	handler := NewScenarioHandler(testLogger(), dataDir)

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var files []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&files))
	assert.ElementsMatch(t, []string{"a.json", "b.json"}, files)
}

func TestScenarioHandler_ListMissingDir(t *testing.T) {
	handler := NewScenarioHandler(testLogger(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var files []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&files))
	assert.Empty(t, files)
}

func TestScenarioHandler_Get(t *testing.T) {
	dataDir := t.TempDir()
	scenDir := filepath.Join(dataDir, "scenarios")
	require.NoError(t, os.MkdirAll(scenDir, 0o755))

	bundle := `{
		"name": "Summary Test",
		"player1_conditions": ["At least 1 Red object", "gibberish"],
		"player2_conditions": ["Every room needs a Lamp"]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(scenDir, "ok.json"), []byte(bundle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(scenDir, "bad.json"), []byte("{broken"), 0o644))

	handler := NewScenarioHandler(testLogger(), dataDir)

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios/ok.json", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var summary ScenarioSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, "ok.json", summary.File)
	assert.Equal(t, "Summary Test", summary.Name)
	assert.Equal(t, 1, summary.Player1ConditionCount)
	assert.Equal(t, 1, summary.Player2ConditionCount)
	assert.Equal(t, 1, summary.Report.UnparsedConditions)

	req = httptest.NewRequest(http.MethodGet, "/v1/scenarios/missing.json", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/scenarios/bad.json", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScenarioHandler_RejectsTraversal(t *testing.T) {
	handler := NewScenarioHandler(testLogger(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/v1/scenarios/..%2Fsecrets.json", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScenarioHandler_MethodNotAllowed(t *testing.T) {
	handler := NewScenarioHandler(testLogger(), t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/v1/scenarios", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
