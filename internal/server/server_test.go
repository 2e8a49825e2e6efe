package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/tango/internal/auth"
	"github.com/five82/tango/internal/service"
	"github.com/five82/tango/internal/testutil"
	"github.com/five82/tango/internal/vocab"
)

const testToken = "tok-u1"

type fixture struct {
	store      *testutil.MockStore
	translator *testutil.MockTranslator
	logs       *observer.ObservedLogs
	handler    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	verifier, err := auth.NewStaticTokens([]auth.User{{ID: "u1", Token: testToken}})
	require.NoError(t, err)

	st := new(testutil.MockStore)
	tr := new(testutil.MockTranslator)
	h := NewHandler(Deps{
		Folders:    service.NewFolderService(st, logger),
		Words:      service.NewWordService(st, logger),
		Translator: tr,
		Verifier:   verifier,
		Logger:     logger,
	}, []string{"http://localhost:3000"})

	return &fixture{store: st, translator: tr, logs: logs, handler: h}
}

func (f *fixture) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestHealthz_IsUnauthenticated(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("down") }

func TestHealthz_ReportsDatabaseOutage(t *testing.T) {
	h := NewHandler(Deps{Pinger: failingPinger{}}, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnauthenticatedRequestsGet401(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/folders", ""},
		{http.MethodPost, "/folders", `{"folderName":"A"}`},
		{http.MethodDelete, "/folders/A", ""},
		{http.MethodGet, "/folders/A/words", ""},
		{http.MethodPost, "/folders/A/words", `{"korean":"a","japanese":"b"}`},
		{http.MethodDelete, "/folders/A/words/1", ""},
		{http.MethodPatch, "/folders/A/words/1/favorite", `{"isFavorite":true}`},
		{http.MethodPost, "/translate", `{"text":"a","from":"ko","to":"ja"}`},
	}
	for _, tt := range tests {
		rec := f.do(tt.method, tt.path, tt.body, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)
	}
	f.store.AssertNotCalled(t, "ListFolders", mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "CreateFolder", mock.Anything, mock.Anything, mock.Anything)
}

func TestListFolders(t *testing.T) {
	f := newFixture(t)
	f.store.On("ListFolders", mock.Anything, "u1").Return([]vocab.Folder(nil), nil).Once()

	rec := f.do(http.MethodGet, "/folders", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateFolder(t *testing.T) {
	f := newFixture(t)
	f.store.On("CreateFolder", mock.Anything, "u1", mock.MatchedBy(func(folder vocab.Folder) bool {
		return folder.Name == "TOPIK1" && folder.ID == "TOPIK1"
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/folders", `{"folderName":" TOPIK1 "}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var folder vocab.Folder
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&folder))
	assert.Equal(t, "TOPIK1", folder.Name)
}

func TestCreateFolder_Errors(t *testing.T) {
	f := newFixture(t)
	f.store.On("CreateFolder", mock.Anything, "u1", mock.Anything).Return(vocab.ErrDuplicateName).Once()

	rec := f.do(http.MethodPost, "/folders", `{"folderName":"TOPIK1"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(http.MethodPost, "/folders", `{"folderName":""}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/folders", `{not json`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteFolder(t *testing.T) {
	f := newFixture(t)
	f.store.On("DeleteFolder", mock.Anything, "u1", "旅行").Return(nil).Once()

	rec := f.do(http.MethodDelete, "/folders/%E6%97%85%E8%A1%8C", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"folder deleted"}`, rec.Body.String())
	f.store.AssertExpectations(t)
}

func TestStoreFailureIsGeneric500AndLogged(t *testing.T) {
	f := newFixture(t)
	f.store.On("DeleteFolder", mock.Anything, "u1", "A").Return(errors.New("pq: connection refused")).Once()

	rec := f.do(http.MethodDelete, "/folders/A", "", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec))
	assert.Equal(t, 1, f.logs.FilterMessage("request failed").Len())

	completed := f.logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, zapcore.ErrorLevel, completed[0].Level)
	assert.Equal(t, "u1", completed[0].ContextMap()["user"])
}

func TestListWords(t *testing.T) {
	f := newFixture(t)
	words := []vocab.Word{{ID: "1", Korean: "안녕", Japanese: "こんにちは"}}
	f.store.On("ListWords", mock.Anything, "u1", "TOPIK1").Return(words, nil).Once()

	rec := f.do(http.MethodGet, "/folders/TOPIK1/words", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []vocab.Word
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, words, got)
}

func TestAddWord(t *testing.T) {
	f := newFixture(t)
	f.store.On("InsertWord", mock.Anything, "u1", "TOPIK1", mock.MatchedBy(func(w vocab.Word) bool {
		return w.Korean == "사랑" && w.Japanese == "愛" && w.ID != "" && !w.IsFavorite
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/folders/TOPIK1/words", `{"korean":"사랑","japanese":"愛"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var word vocab.Word
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&word))
	assert.NotEmpty(t, word.ID)
	assert.Equal(t, "사랑", word.Korean)
}

func TestAddWord_Validation(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`{"korean":"사랑"}`, `{"japanese":"愛"}`, `{}`, ``} {
		rec := f.do(http.MethodPost, "/folders/TOPIK1/words", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	f.store.AssertNotCalled(t, "InsertWord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddWord_MissingFolder(t *testing.T) {
	f := newFixture(t)
	f.store.On("InsertWord", mock.Anything, "u1", "nope", mock.Anything).Return(vocab.ErrNotFound).Once()

	rec := f.do(http.MethodPost, "/folders/nope/words", `{"korean":"a","japanese":"b"}`, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	completed := f.logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, zapcore.WarnLevel, completed[0].Level)
}

func TestDeleteWord(t *testing.T) {
	f := newFixture(t)
	f.store.On("DeleteWord", mock.Anything, "u1", "TOPIK1", "w1").Return(nil).Once()

	rec := f.do(http.MethodDelete, "/folders/TOPIK1/words/w1", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"word deleted"}`, rec.Body.String())
}

func TestSetFavorite(t *testing.T) {
	f := newFixture(t)
	words := []vocab.Word{{ID: "1"}, {ID: "2", IsFavorite: true}}
	f.store.On("SetFavorite", mock.Anything, "u1", "TOPIK1", "2", true).Return(words, nil).Once()

	rec := f.do(http.MethodPatch, "/folders/TOPIK1/words/2/favorite", `{"isFavorite":true}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	var got wordsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, words, got.Words)
}

func TestSetFavorite_RejectsNonBoolean(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`{"isFavorite":"yes"}`, `{"isFavorite":1}`, `{}`, `{"isFavorite":null}`} {
		rec := f.do(http.MethodPatch, "/folders/TOPIK1/words/2/favorite", body, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	f.store.AssertNotCalled(t, "SetFavorite", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetFavorite_MissingWord(t *testing.T) {
	f := newFixture(t)
	f.store.On("SetFavorite", mock.Anything, "u1", "TOPIK1", "9", false).Return(nil, vocab.ErrNotFound).Once()

	rec := f.do(http.MethodPatch, "/folders/TOPIK1/words/9/favorite", `{"isFavorite":false}`, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTranslate(t *testing.T) {
	f := newFixture(t)
	f.translator.On("Translate", mock.Anything, "사랑", "ko", "ja").
		Return(vocab.Translation{Text: "愛", To: "ja"}, nil).Once()

	rec := f.do(http.MethodPost, "/translate", `{"text":"사랑","from":"ko","to":"ja"}`, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"愛","to":"ja"}`, rec.Body.String())
}

func TestTranslate_Errors(t *testing.T) {
	f := newFixture(t)
	f.translator.On("Translate", mock.Anything, "사랑", "ko", "ja").
		Return(vocab.Translation{}, vocab.ErrUpstream).Once()

	rec := f.do(http.MethodPost, "/translate", `{"text":"사랑","from":"ko"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/translate", `{"text":"사랑","from":"ko","to":"ja"}`, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/folders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, statusFor(vocab.ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, statusFor(vocab.Invalid("x")))
	assert.Equal(t, http.StatusConflict, statusFor(vocab.ErrDuplicateName))
	assert.Equal(t, http.StatusNotFound, statusFor(vocab.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
