package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cyberrps/arena/internal/auth"
	"github.com/cyberrps/arena/internal/game"
)

func testArenaServer() *ArenaServer {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &ArenaServer{
		Arena:  game.NewArena(nil, logger),
		Logger: logger,
	}
}

func authedRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	if err := auth.Init(); err != nil {
		t.Fatalf("auth init: %v", err)
	}
	token, err := auth.CreateToken(uuid.New().String())
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestTrainingHandlersRequireAuth(t *testing.T) {
	if err := auth.Init(); err != nil {
		t.Fatalf("auth init: %v", err)
	}
	srv := testArenaServer()

	endpoints := []http.HandlerFunc{
		StartTrainingHandler(srv),
		TrainingRoundHandler(srv),
		EndTrainingHandler(srv),
		CancelTrainingHandler(srv),
	}
	for i, h := range endpoints {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodPost, "/api/match", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("endpoint %d: expected 401, got %d", i, w.Code)
		}
	}
}

func TestTrainingRoundRejectsInvalidMove(t *testing.T) {
	srv := testArenaServer()
	r := authedRequest(t, http.MethodPost, "/api/match/round", `{"move":"lizard"}`)

	w := httptest.NewRecorder()
	TrainingRoundHandler(srv)(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTrainingRoundWithoutSession(t *testing.T) {
	srv := testArenaServer()
	r := authedRequest(t, http.MethodPost, "/api/match/round", `{"move":"rock"}`)

	w := httptest.NewRecorder()
	TrainingRoundHandler(srv)(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no active training match") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestStartTrainingCreatesSession(t *testing.T) {
	srv := testArenaServer()
	r := authedRequest(t, http.MethodPost, "/api/match/start-training", "")

	w := httptest.NewRecorder()
	StartTrainingHandler(srv)(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
