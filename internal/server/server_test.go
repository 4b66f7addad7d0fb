package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/store"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func newTestApp(t *testing.T, st store.Store) (*fiber.App, *Manager) {
	t.Helper()
	cfg := config.NewConfigBuilder().WithLogFile(io.Discard).Build()
	m := NewManager(st, io.Discard)
	return New(cfg, m), m
}

// request sends a request with an optional JSON body and returns the
// status and response body.
func request(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
		contentType = fiber.MIMEOctetStream
	case string:
		reader = bytes.NewReader([]byte(b))
		contentType = fiber.MIMEApplicationJSON
	default:
		data, err := json.Marshal(b)
		testutil.AssertNoError(t, err)
		reader = bytes.NewReader(data)
		contentType = fiber.MIMEApplicationJSON
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err, "%s %s", method, path)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	testutil.AssertNoError(t, err)
	return resp.StatusCode, data
}

func decodeState(t *testing.T, data []byte) State {
	t.Helper()
	var state State
	testutil.AssertNoError(t, json.Unmarshal(data, &state), "decode %s", data)
	return state
}

func createGame(t *testing.T, app *fiber.App, fen string) State {
	t.Helper()
	var body interface{}
	if fen != "" {
		body = CreateRequest{FEN: fen}
	}
	status, data := request(t, app, http.MethodPost, "/api/games", body)
	testutil.AssertEqual(t, status, fiber.StatusCreated, "create: %s", data)
	return decodeState(t, data)
}

func TestCreateGame(t *testing.T) {
	st := store.NewMemoryStore()
	app, _ := newTestApp(t, st)

	state := createGame(t, app, "")
	_, err := uuid.Parse(state.ID)
	testutil.AssertNoError(t, err, "game id")
	testutil.AssertEqual(t, state.SideToMove, "white")
	testutil.AssertEqual(t, state.Status, "active")
	testutil.AssertEqual(t, state.Board, []string{
		"rnbqkbnr", "pppppppp", "........", "........",
		"........", "........", "PPPPPPPP", "RNBQKBNR",
	})
	testutil.AssertEqual(t, st.Len(), 1, "stored games")

	custom := createGame(t, app, testutil.BackRankMate)
	testutil.AssertEqual(t, custom.Status, "checkmate")
	testutil.AssertTrue(t, custom.InCheck, "in check")

	status, _ := request(t, app, http.MethodPost, "/api/games", CreateRequest{FEN: "8/8/8 w - - 0 1"})
	testutil.AssertEqual(t, status, fiber.StatusBadRequest, "bad FEN")

	status, _ = request(t, app, http.MethodPost, "/api/games", "{not json")
	testutil.AssertEqual(t, status, fiber.StatusBadRequest, "bad body")
}

func TestGetGame_NotFound(t *testing.T) {
	app, _ := newTestApp(t, store.NewMemoryStore())

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		status, data := request(t, app, http.MethodGet, "/api/games/"+id, nil)
		testutil.AssertEqual(t, status, fiber.StatusNotFound, "GET %s: %s", id, data)
	}
}

func TestMove(t *testing.T) {
	st := store.NewMemoryStore()
	app, _ := newTestApp(t, st)
	id := createGame(t, app, "").ID
	path := "/api/games/" + id + "/move"

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"illegal", MoveRequest{From: "e2", To: "e5"}, fiber.StatusUnprocessableEntity},
		{"wrong side", MoveRequest{From: "e7", To: "e5"}, fiber.StatusUnprocessableEntity},
		{"off board", MoveRequest{From: "e2", To: "z9"}, fiber.StatusBadRequest},
		{"malformed", "{", fiber.StatusBadRequest},
		{"legal", MoveRequest{From: "e2", To: "e4"}, fiber.StatusOK},
		{"same move again", MoveRequest{From: "e2", To: "e4"}, fiber.StatusUnprocessableEntity},
		{"reply", MoveRequest{From: "E7", To: "E5"}, fiber.StatusOK},
	}

	for _, tt := range tests {
		status, data := request(t, app, http.MethodPost, path, tt.body)
		testutil.AssertEqual(t, status, tt.status, "%s: %s", tt.name, data)
	}

	status, data := request(t, app, http.MethodGet, "/api/games/"+id, nil)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	state := decodeState(t, data)
	testutil.AssertEqual(t, state.FEN, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1")

	rec, err := st.Load(context.Background(), id)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.FEN, state.FEN, "stored FEN")
}

func TestMoves(t *testing.T) {
	app, _ := newTestApp(t, store.NewMemoryStore())
	id := createGame(t, app, "").ID

	var resp struct {
		Moves []string `json:"moves"`
	}

	status, data := request(t, app, http.MethodGet, "/api/games/"+id+"/moves", nil)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	testutil.AssertNoError(t, json.Unmarshal(data, &resp))
	testutil.AssertEqual(t, len(resp.Moves), 20)

	status, data = request(t, app, http.MethodGet, "/api/games/"+id+"/moves?from=g1", nil)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	testutil.AssertNoError(t, json.Unmarshal(data, &resp))
	testutil.AssertEqual(t, resp.Moves, []string{"g1f3", "g1h3"})

	status, data = request(t, app, http.MethodGet, "/api/games/"+id+"/moves?from=g8", nil)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	testutil.AssertNoError(t, json.Unmarshal(data, &resp))
	testutil.AssertEqual(t, resp.Moves, []string{}, "moves of the side not to move")

	status, _ = request(t, app, http.MethodGet, "/api/games/"+id+"/moves?from=j9", nil)
	testutil.AssertEqual(t, status, fiber.StatusBadRequest)
}

func TestPromotionFlow(t *testing.T) {
	app, _ := newTestApp(t, store.NewMemoryStore())
	id := createGame(t, app, testutil.AboutToPromote).ID
	base := "/api/games/" + id

	status, data := request(t, app, http.MethodPost, base+"/move", MoveRequest{From: "a7", To: "a8"})
	testutil.AssertEqual(t, status, fiber.StatusOK, "%s", data)
	state := decodeState(t, data)
	testutil.AssertEqual(t, state.Promoting, "a8")
	testutil.AssertEqual(t, state.SideToMove, "white")

	status, _ = request(t, app, http.MethodPost, base+"/move", MoveRequest{From: "a1", To: "a2"})
	testutil.AssertEqual(t, status, fiber.StatusUnprocessableEntity, "move while promoting")

	var resp struct {
		Moves []string `json:"moves"`
	}
	_, data = request(t, app, http.MethodGet, base+"/moves", nil)
	testutil.AssertNoError(t, json.Unmarshal(data, &resp))
	testutil.AssertEqual(t, len(resp.Moves), 0, "moves while promoting")

	status, _ = request(t, app, http.MethodPost, base+"/promote", PromoteRequest{Piece: "king"})
	testutil.AssertEqual(t, status, fiber.StatusUnprocessableEntity, "promote to king")

	status, data = request(t, app, http.MethodPost, base+"/promote", PromoteRequest{Piece: "Q"})
	testutil.AssertEqual(t, status, fiber.StatusOK, "%s", data)
	state = decodeState(t, data)
	testutil.AssertEqual(t, state.Promoting, "")
	testutil.AssertEqual(t, state.SideToMove, "black")
	testutil.AssertEqual(t, state.Board[0], "Q.......")
}

func TestSnapshotEndpoints(t *testing.T) {
	app, _ := newTestApp(t, store.NewMemoryStore())
	source := createGame(t, app, testutil.Kiwipete)
	target := createGame(t, app, "")

	status, data := request(t, app, http.MethodGet, "/api/games/"+source.ID+"/snapshot", nil)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	testutil.AssertEqual(t, len(data), chess.SnapshotSize)

	status, _ = request(t, app, http.MethodPut, "/api/games/"+target.ID+"/snapshot", []byte("garbage"))
	testutil.AssertEqual(t, status, fiber.StatusBadRequest, "garbage snapshot")
	_, body := request(t, app, http.MethodGet, "/api/games/"+target.ID, nil)
	testutil.AssertEqual(t, decodeState(t, body).FEN, createGame(t, app, "").FEN, "state after rejected upload")

	status, body = request(t, app, http.MethodPut, "/api/games/"+target.ID+"/snapshot", data)
	testutil.AssertEqual(t, status, fiber.StatusOK, "%s", body)
	testutil.AssertEqual(t, decodeState(t, body).FEN, testutil.Kiwipete)
}

func TestRestoreFromStore(t *testing.T) {
	st := store.NewMemoryStore()
	app, _ := newTestApp(t, st)
	id := createGame(t, app, "").ID
	request(t, app, http.MethodPost, "/api/games/"+id+"/move", MoveRequest{From: "d2", To: "d4"})

	// A second server sharing the store knows nothing in memory.
	fresh, _ := newTestApp(t, st)
	status, data := request(t, fresh, http.MethodGet, "/api/games/"+id, nil)
	testutil.AssertEqual(t, status, fiber.StatusOK, "%s", data)
	testutil.AssertEqual(t, decodeState(t, data).SideToMove, "black")

	status, _ = request(t, fresh, http.MethodPost, "/api/games/"+id+"/move", MoveRequest{From: "d7", To: "d5"})
	testutil.AssertEqual(t, status, fiber.StatusOK)
}

func TestDeleteGame(t *testing.T) {
	st := store.NewMemoryStore()
	app, m := newTestApp(t, st)
	id := createGame(t, app, "").ID
	watcher := &recorder{}
	testutil.AssertNoError(t, m.Register(context.Background(), id, watcher))

	status, data := request(t, app, http.MethodDelete, "/api/games/"+id, nil)
	testutil.AssertEqual(t, status, fiber.StatusNoContent, "%s", data)
	testutil.AssertEqual(t, st.Len(), 0, "stored games")
	testutil.AssertEqual(t, watcher.last(t).Type, EventDeleted)

	status, _ = request(t, app, http.MethodGet, "/api/games/"+id, nil)
	testutil.AssertEqual(t, status, fiber.StatusNotFound, "get after delete")
	status, _ = request(t, app, http.MethodPost, "/api/games/"+id+"/move", MoveRequest{From: "e2", To: "e4"})
	testutil.AssertEqual(t, status, fiber.StatusNotFound, "move after delete")
	status, _ = request(t, app, http.MethodDelete, "/api/games/"+id, nil)
	testutil.AssertEqual(t, status, fiber.StatusNotFound, "second delete")
	status, _ = request(t, app, http.MethodDelete, "/api/games/"+uuid.NewString(), nil)
	testutil.AssertEqual(t, status, fiber.StatusNotFound, "unknown game")
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(t, store.NewMemoryStore())
	status, _ := request(t, app, http.MethodGet, "/ws/games/"+uuid.NewString(), nil)
	testutil.AssertEqual(t, status, fiber.StatusUpgradeRequired)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.ErrGameNotFound, fiber.StatusNotFound},
		{&errors.MoveError{Err: errors.ErrIllegalMove}, fiber.StatusUnprocessableEntity},
		{errors.Wrap(errors.ErrPromotionPending, "ctx"), fiber.StatusUnprocessableEntity},
		{errors.ErrInvalidPromotion, fiber.StatusUnprocessableEntity},
		{errors.ErrInvalidCoordinate, fiber.StatusBadRequest},
		{errors.ErrInvalidFEN, fiber.StatusBadRequest},
		{errors.ErrLoadFormatMismatch, fiber.StatusBadRequest},
		{fiber.ErrUpgradeRequired, fiber.StatusUpgradeRequired},
		{io.ErrUnexpectedEOF, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			testutil.AssertEqual(t, statusFor(tt.err), tt.want)
		})
	}
}

func TestParsePromotion(t *testing.T) {
	tests := []struct {
		in   string
		want chess.Kind
		ok   bool
	}{
		{"q", chess.Queen, true},
		{"N", chess.Knight, true},
		{"rook", chess.Rook, true},
		{" Bishop ", chess.Bishop, true},
		{"p", chess.Empty, false},
		{"k", chess.Empty, false},
		{"", chess.Empty, false},
		{"dragon", chess.Empty, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePromotion(tt.in)
			if tt.ok {
				testutil.AssertNoError(t, err)
			} else {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidPromotion)
			}
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}
