package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return NewServer(ServerOptions{
		Handler: Options{SearchDepth: 4, SearchTimeout: 5 * time.Second},
	}).Routes()
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newGame(t *testing.T, h http.Handler, position string) StateResponse {
	t.Helper()
	rec := post(t, h, "/api/new_game", NewGameRequest{Position: position})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[StateResponse](t, rec)
}

func TestNewGame(t *testing.T) {
	h := newTestServer(t)
	st := newGame(t, h, "")

	require.NotEmpty(t, st.GameID)
	require.Equal(t, "light", st.ToMove)
	require.Equal(t, "ongoing", st.Status)
	require.Len(t, st.Cells, 24)
	require.Nil(t, st.Selected)
	require.Empty(t, st.LegalDests)
	require.Equal(t, 0, st.HistoryLen)
	require.Equal(t, "1l1l1l1l/l1l1l1l1/1l1l1l1l/8/8/d1d1d1d1/1d1d1d1d/d1d1d1d1 l", st.Position)

	// 空 body 也能开局
	req := httptest.NewRequest(http.MethodPost, "/api/new_game", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestClickSelectAndMove(t *testing.T) {
	h := newTestServer(t)
	st := newGame(t, h, "")

	rec := post(t, h, "/api/click", ClickRequest{GameID: st.GameID, Row: 2, Col: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	click := decode[ClickResponse](t, rec)
	require.True(t, click.Accepted)
	require.Equal(t, &SquareDTO{Row: 2, Col: 1}, click.Selected)
	require.Equal(t, []SquareDTO{{Row: 3, Col: 0}, {Row: 3, Col: 2}}, click.LegalDests)

	click = decode[ClickResponse](t, post(t, h, "/api/click", ClickRequest{GameID: st.GameID, Row: 3, Col: 2}))
	require.True(t, click.Accepted)
	require.Equal(t, "dark", click.ToMove)
	require.Equal(t, 1, click.HistoryLen)
	require.Nil(t, click.Selected)

	// 非法点击返回 200，但 accepted=false
	click = decode[ClickResponse](t, post(t, h, "/api/click", ClickRequest{GameID: st.GameID, Row: 2, Col: 3}))
	require.False(t, click.Accepted)
	require.Equal(t, "dark", click.ToMove)

	state := decode[StateResponse](t, post(t, h, "/api/state", StateRequest{GameID: st.GameID}))
	require.Equal(t, click.Position, state.Position)
}

func TestClickCaptureEndsGame(t *testing.T) {
	h := newTestServer(t)
	st := newGame(t, h, "8/8/1l6/2d5/8/8/8/8 l")

	post(t, h, "/api/click", ClickRequest{GameID: st.GameID, Row: 2, Col: 1})
	click := decode[ClickResponse](t, post(t, h, "/api/click", ClickRequest{GameID: st.GameID, Row: 4, Col: 3}))
	require.True(t, click.Accepted)
	require.Equal(t, "light_wins", click.Status)
	require.Equal(t, ScoreDTO{Light: 1}, click.Score)
	require.Len(t, click.Cells, 1)
}

func TestBlockedStatus(t *testing.T) {
	h := newTestServer(t)
	st := newGame(t, h, "8/8/1l6/d1d5/3d4/8/8/8 l")
	require.Equal(t, "blocked", st.Status)

	rec := post(t, h, "/api/ai_move", AiMoveRequest{GameID: st.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	ai := decode[AiMoveResponse](t, rec)
	require.Nil(t, ai.Move)
	require.Equal(t, 0, ai.HistoryLen)
}

func TestAiMoveTakesCapture(t *testing.T) {
	h := newTestServer(t)
	st := newGame(t, h, "8/8/1l6/2d5/8/4d3/8/8 l")

	rec := post(t, h, "/api/ai_move", AiMoveRequest{GameID: st.GameID, MaxDepth: 3, TimeMs: 2000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ai := decode[AiMoveResponse](t, rec)
	require.NotNil(t, ai.Move)
	require.Equal(t, SquareDTO{Row: 2, Col: 1}, ai.Move.From)
	require.Equal(t, SquareDTO{Row: 6, Col: 5}, ai.Move.To)
	require.Len(t, ai.Move.Captured, 2)
	require.Equal(t, "light_wins", ai.Status)
	require.Equal(t, 1, ai.HistoryLen)

	// 分出胜负后不再走
	ai = decode[AiMoveResponse](t, post(t, h, "/api/ai_move", AiMoveRequest{GameID: st.GameID}))
	require.Nil(t, ai.Move)
	require.Equal(t, 1, ai.HistoryLen)
}

func TestAPIErrors(t *testing.T) {
	h := newTestServer(t)

	rec := post(t, h, "/api/state", StateRequest{GameID: "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "game not found", decode[map[string]string](t, rec)["error"])

	rec = post(t, h, "/api/new_game", NewGameRequest{Position: "garbage"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/click", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = post(t, h, "/api/unknown", struct{}{})
	require.Equal(t, http.StatusNotFound, rec.Code)

	big := `{"game_id":"` + strings.Repeat("x", int(maxJSONBodyBytes)) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader(big))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestStaticRedirect(t *testing.T) {
	h := NewServer(ServerOptions{WebDir: t.TempDir()}).Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/web_mobile/", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/?view=desktop", nil)
	req.Header.Set("User-Agent", "iphone")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "/web/", rec.Header().Get("Location"))
}

func TestListAndDeleteGames(t *testing.T) {
	h := newTestServer(t)
	first := newGame(t, h, "")
	second := newGame(t, h, "")

	list := decode[ListGamesResponse](t, post(t, h, "/api/games", struct{}{}))
	require.ElementsMatch(t, []string{first.GameID, second.GameID}, list.Games)

	rec := post(t, h, "/api/delete_game", DeleteGameRequest{GameID: first.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, DeleteGameResponse{GameID: first.GameID, Deleted: true}, decode[DeleteGameResponse](t, rec))

	rec = post(t, h, "/api/state", StateRequest{GameID: first.GameID})
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = post(t, h, "/api/delete_game", DeleteGameRequest{GameID: first.GameID})
	require.Equal(t, http.StatusNotFound, rec.Code)

	list = decode[ListGamesResponse](t, post(t, h, "/api/games", struct{}{}))
	require.Equal(t, []string{second.GameID}, list.Games)
}
