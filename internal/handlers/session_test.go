package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mit2nil/decorum/internal/services"
	"github.com/mit2nil/decorum/pkg/catalog"
	"github.com/mit2nil/decorum/pkg/condition"
	"github.com/mit2nil/decorum/pkg/house"
	"github.com/mit2nil/decorum/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionHandler(t *testing.T) (*SessionHandler, *services.MockStorage, string) {
	t.Helper()
	storage := services.NewMockStorage()
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "scenarios"), 0o755))
	return NewSessionHandler(storage, testLogger(), dataDir), storage, dataDir
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Create(t *testing.T) {
	handler, _, _ := newSessionHandler(t)

	seed := int64(42)
	w := postJSON(t, handler, "/v1/sessions", CreateSessionRequest{
		Player1: "Ada",
		Seed:    &seed,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var s session.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, "Ada", s.Players[0].Name)
	assert.Equal(t, "Player 2", s.Players[1].Name)
	assert.Len(t, s.Players[0].Conditions, condition.HandSize)
	assert.Len(t, s.Players[1].Conditions, condition.HandSize)
	assert.Equal(t, 0, s.CurrentPlayer)
	require.NotNil(t, s.House)

	// Same seed, same deal.
	w2 := postJSON(t, handler, "/v1/sessions", CreateSessionRequest{Seed: &seed})
	var s2 session.Session
	require.NoError(t, json.NewDecoder(w2.Body).Decode(&s2))
	assert.Equal(t, s.Players[0].Conditions, s2.Players[0].Conditions)
}

func TestSessionHandler_CreateFromScenario(t *testing.T) {
	handler, _, dataDir := newSessionHandler(t)

	bundle := `{
		"name": "Test",
		"player1_conditions": ["At least 2 Red objects"],
		"player2_conditions": ["No Green objects in house"],
		"starting_walls": {"bathroom": "green"}
	}`
	path := filepath.Join(dataDir, "scenarios", "test.json")
	require.NoError(t, os.WriteFile(path, []byte(bundle), 0o644))

	w := postJSON(t, handler, "/v1/sessions", CreateSessionRequest{Scenario: "test.json"})
	require.Equal(t, http.StatusCreated, w.Code)

	var s session.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Len(t, s.Players[0].Conditions, 1)
	assert.Equal(t, catalog.Green, s.House.Room(0).WallColor)
}

func TestSessionHandler_CreateErrors(t *testing.T) {
	handler, _, _ := newSessionHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, handler, "/v1/sessions", CreateSessionRequest{Scenario: "../escape.json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, handler, "/v1/sessions", CreateSessionRequest{Scenario: "missing.json"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_ReadDelete(t *testing.T) {
	handler, storage, _ := newSessionHandler(t)

	s := session.New(house.New(), "", "", nil, nil)
	require.NoError(t, storage.SaveSession(context.Background(), s))

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+s.ID.String(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loaded session.Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loaded))
	assert.Equal(t, s.ID, loaded.ID)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/not-a-uuid", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/v1/sessions/"+s.ID.String(), nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+s.ID.String(), nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_Actions(t *testing.T) {
	handler, storage, _ := newSessionHandler(t)

	s := session.New(house.New(), "", "",
		[]condition.Condition{condition.MinObjectsOfColor(catalog.Blue, 1)},
		[]condition.Condition{condition.AllStylesPresent()})
	require.NoError(t, storage.SaveSession(context.Background(), s))
	actionsPath := fmt.Sprintf("/v1/sessions/%s/actions", s.ID)

	room := 0

	// Select a slot, place a modern lamp.
	w := postJSON(t, handler, actionsPath, ActionRequest{
		Action: "select", Player: 0, Room: &room, Slot: "lamp",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, handler, actionsPath, ActionRequest{
		Action: "add", Player: 0, Style: "modern",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ActionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Session.House.Room(0).Lamp)
	assert.Equal(t, catalog.Blue, resp.Session.House.Room(0).Lamp.Color)

	// Checking conditions is allowed out of turn and returns results.
	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "check", Player: 1})
	require.Equal(t, http.StatusOK, w.Code)
	resp = ActionResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].Met)

	// Pass the turn; player 0 is now out of turn.
	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "end_turn", Player: 0})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, handler, actionsPath, ActionRequest{
		Action: "select", Player: 0, Room: &room,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Precondition failures map to 409.
	w = postJSON(t, handler, actionsPath, ActionRequest{
		Action: "select", Player: 1, Room: &room, Slot: "lamp",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, handler, actionsPath, ActionRequest{
		Action: "add", Player: 1, Style: "retro",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Malformed requests map to 400.
	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "levitate", Player: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "select", Player: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "add", Player: 1, Style: "baroque"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_ActionUndoAndHearts(t *testing.T) {
	handler, storage, _ := newSessionHandler(t)

	s := session.New(house.New(), "", "", nil, nil)
	require.NoError(t, storage.SaveSession(context.Background(), s))
	actionsPath := fmt.Sprintf("/v1/sessions/%s/actions", s.ID)

	room := 2
	w := postJSON(t, handler, actionsPath, ActionRequest{
		Action: "select", Player: 0, Room: &room,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, handler, actionsPath, ActionRequest{
		Action: "paint", Player: 0, Color: "red",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "undo", Player: 0})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ActionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, catalog.DefaultWallColor(2), resp.Session.House.Room(2).WallColor)

	// Heart-to-hearts are allowed out of turn and run out after three.
	for i := 0; i < session.MaxHeartToHearts; i++ {
		w = postJSON(t, handler, actionsPath, ActionRequest{Action: "heart_to_heart", Player: 1})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w = postJSON(t, handler, actionsPath, ActionRequest{Action: "heart_to_heart", Player: 1})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionHandler_ActionMissingSession(t *testing.T) {
	handler, _, _ := newSessionHandler(t)

	w := postJSON(t, handler, "/v1/sessions/1b671a64-40d5-491e-99b0-da01ff1f3341/actions",
		ActionRequest{Action: "end_turn", Player: 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	handler, _, _ := newSessionHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodPut, "/v1/sessions/1b671a64-40d5-491e-99b0-da01ff1f3341", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
