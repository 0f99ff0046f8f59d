package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), service.NewBotService(logger), entity.PlayerO, true)

	ts := httptest.NewServer(New(logger, manager).Router())
	t.Cleanup(ts.Close)

	return ts
}

func doRequest(t *testing.T, method, url, body string) (int, gameResponse) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload gameResponse
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	}

	return resp.StatusCode, payload
}

func TestServer_Ping(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestServer_GameFlow(t *testing.T) {
	ts := newTestServer(t)

	// Given: a new game that uses the configured default mode
	status, created := doRequest(t, http.MethodPost, ts.URL+"/games", "")
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, created.Game)
	assert.True(t, created.Game.VsBot)
	gameURL := ts.URL + "/games/" + created.Game.ID

	// When: the human takes the center
	status, turned := doRequest(t, http.MethodPost, gameURL+"/turn", `{"cell":4}`)

	// Then: the response already contains the bot's corner reply
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.PlayerX, turned.Game.Board[4])
	assert.Equal(t, entity.PlayerO, turned.Game.Board[0])
	assert.Equal(t, entity.PlayerX, turned.Game.Turn)

	// When: the human plays an occupied cell
	status, failed := doRequest(t, http.MethodPost, gameURL+"/turn", `{"cell":0}`)

	// Then: the move is rejected as a conflict
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, failed.Error, "occupied")

	// When: fetching the game
	status, fetched := doRequest(t, http.MethodGet, gameURL, "")

	// Then: the stored state matches the last response
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, turned.Game, fetched.Game)

	// When: toggling the bot off
	status, toggled := doRequest(t, http.MethodPost, gameURL+"/mode", "")

	// Then: the board is cleared and the bot is off
	require.Equal(t, http.StatusOK, status)
	assert.False(t, toggled.Game.VsBot)
	assert.Equal(t, entity.Board{}, toggled.Game.Board)

	// When: resetting after a move
	_, _ = doRequest(t, http.MethodPost, gameURL+"/turn", `{"cell":8}`)
	status, reset := doRequest(t, http.MethodPost, gameURL+"/reset", "")

	// Then: the board is empty again
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.Board{}, reset.Game.Board)

	// When: deleting the game
	status, _ = doRequest(t, http.MethodDelete, gameURL, "")
	require.Equal(t, http.StatusNoContent, status)

	// Then: it is gone
	status, _ = doRequest(t, http.MethodGet, gameURL, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	_, created := doRequest(t, http.MethodPost, ts.URL+"/games", `{"vs_bot":false}`)
	require.NotNil(t, created.Game)
	assert.False(t, created.Game.VsBot)
	gameURL := ts.URL + "/games/" + created.Game.ID

	t.Run("Missing cell", func(t *testing.T) {
		status, resp := doRequest(t, http.MethodPost, gameURL+"/turn", `{}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "cell is required", resp.Error)
	})

	t.Run("Cell out of range", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodPost, gameURL+"/turn", `{"cell":9}`)

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Unknown game", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodPost, ts.URL+"/games/missing/turn", `{"cell":1}`)

		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Malformed body", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodPost, ts.URL+"/games", `{`)

		assert.Equal(t, http.StatusBadRequest, status)
	})
}
