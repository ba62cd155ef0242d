package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"datasets/internal/app/server/config"
	"datasets/internal/infrastructure/storage"
)

type sentenceBody struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

type datasetBody struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	IsOpen    bool           `json:"is_open"`
	UseValue  bool           `json:"use_value"`
	ValueName *string        `json:"value_name"`
	Sentences []sentenceBody `json:"sentences"`
}

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Env: config.EnvProd,
		DB: config.DB{
			Driver:      config.DriverSQLite,
			DatabaseURI: filepath.Join(t.TempDir(), "api.db"),
		},
		Server: config.Server{AllowedOrigin: "*"},
		Auth:   config.Auth{BcryptCost: bcrypt.MinCost},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := storage.New(context.Background(), cfg, log)
	require.NoError(t, err)

	srv := httptest.NewServer(New(cfg, st, log))
	t.Cleanup(func() {
		srv.Close()
		_ = st.Close()
	})
	return &testServer{t: t, srv: srv}
}

func (ts *testServer) do(method, path string, body any) (*http.Response, []byte) {
	ts.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(ts.t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, r)
	require.NoError(ts.t, err)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)
	return resp, raw
}

func (ts *testServer) create(body map[string]any) int64 {
	ts.t.Helper()
	resp, raw := ts.do(http.MethodPost, "/datasets/new", body)
	require.Equal(ts.t, http.StatusCreated, resp.StatusCode, string(raw))

	var out struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	require.NoError(ts.t, json.Unmarshal(raw, &out))
	assert.Equal(ts.t, "Dataset added successfully", out.Message)
	return out.ID
}

func (ts *testServer) get(id int64) datasetBody {
	ts.t.Helper()
	resp, raw := ts.do(http.MethodGet, path(id, ""), nil)
	require.Equal(ts.t, http.StatusOK, resp.StatusCode, string(raw))

	var ds datasetBody
	require.NoError(ts.t, json.Unmarshal(raw, &ds))
	return ds
}

func path(id int64, action string) string {
	p := "/datasets/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}
	return p
}

func assertError(t *testing.T, raw []byte, msg string) {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	assert.Equal(t, map[string]any{"error": msg}, body)
}

func texts(ds datasetBody) []string {
	out := make([]string, 0, len(ds.Sentences))
	for _, s := range ds.Sentences {
		out = append(out, s.Text)
	}
	return out
}

func TestAPI_ListEmpty(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(http.MethodGet, "/datasets", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAPI_CreateThenGet(t *testing.T) {
	ts := newTestServer(t)

	id := ts.create(map[string]any{
		"name":       "Reviews",
		"password":   "secret",
		"is_open":    true,
		"use_value":  true,
		"value_name": "stars",
		"sentences": []map[string]any{
			{"text": "great", "value": 5},
			{"text": "bad", "value": "-5"},
			{"text": "meh"},
		},
		"unknown_field": "ignored",
	})

	ds := ts.get(id)
	assert.Equal(t, id, ds.ID)
	assert.Equal(t, "Reviews", ds.Name)
	assert.True(t, ds.IsOpen)
	assert.True(t, ds.UseValue)
	require.NotNil(t, ds.ValueName)
	assert.Equal(t, "stars", *ds.ValueName)
	assert.Equal(t, []string{"great", "bad", "meh"}, texts(ds))
	assert.Equal(t, int64(5), ds.Sentences[0].Value)
	assert.Equal(t, int64(-5), ds.Sentences[1].Value)
	assert.Equal(t, int64(0), ds.Sentences[2].Value)

	resp, raw := ts.do(http.MethodGet, "/datasets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":`+strconv.FormatInt(id, 10)+`,"name":"Reviews","is_open":true}]`, string(raw))
}

func TestAPI_GetErrors(t *testing.T) {
	ts := newTestServer(t)

	for _, p := range []string{"/datasets/999", "/datasets/abc"} {
		resp, raw := ts.do(http.MethodGet, p, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, p)
		assertError(t, raw, "Dataset not found")
	}
}

func TestAPI_CreateValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{name: "missing password", body: map[string]any{"name": "x"}, msg: "Dataset must have name and password"},
		{name: "long name", body: map[string]any{"name": strings.Repeat("n", 51), "password": "p"}, msg: "Dataset name must be less than 50 characters"},
		{name: "long value name", body: map[string]any{"name": "n", "password": "p", "value_name": strings.Repeat("v", 51)}, msg: "Value name must be less than 50 characters"},
		{name: "empty sentence", body: map[string]any{"name": "n", "password": "p", "sentences": []map[string]any{{"text": ""}}}, msg: "A dataset cannot contain an empty sentence"},
		{name: "long sentence", body: map[string]any{"name": "n", "password": "p", "sentences": []map[string]any{{"text": strings.Repeat("s", 251)}}}, msg: "Sentence(s) too long"},
		{name: "bad value", body: map[string]any{"name": "n", "password": "p", "sentences": []map[string]any{{"text": "s", "value": "5-"}}}, msg: "Invalid value(s)"},
		{name: "long password", body: map[string]any{"name": "n", "password": strings.Repeat("p", 73)}, msg: "Password too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := ts.do(http.MethodPost, "/datasets/new", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assertError(t, raw, tt.msg)
		})
	}

	t.Run("wrong json type", func(t *testing.T) {
		resp, raw := ts.do(http.MethodPost, "/datasets/new", `{"name": 5, "password": "p"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Len(t, body, 1)
		assert.NotEmpty(t, body["error"])
	})

	resp, raw := ts.do(http.MethodGet, "/datasets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAPI_Verify(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(map[string]any{"name": "v", "password": "right"})

	resp, raw := ts.do(http.MethodPost, path(id, "verify"), map[string]any{"password": "right"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Verified"}`, string(raw))

	for _, body := range []any{map[string]any{"password": "wrong"}, map[string]any{}, nil} {
		resp, raw = ts.do(http.MethodPost, path(id, "verify"), body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assertError(t, raw, "Incorrect password")
	}

	resp, _ = ts.do(http.MethodPost, path(id+100, "verify"), map[string]any{"password": "right"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_AddSentence(t *testing.T) {
	ts := newTestServer(t)
	open := ts.create(map[string]any{"name": "open", "password": "p", "is_open": true})
	closed := ts.create(map[string]any{"name": "closed", "password": "p"})

	resp, raw := ts.do(http.MethodPost, path(open, "add"), map[string]any{"new_text": "hello", "new_value": "-5"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{"message":"Sentence added successfully"}`, string(raw))

	ds := ts.get(open)
	require.Len(t, ds.Sentences, 1)
	assert.Equal(t, int64(-5), ds.Sentences[0].Value)

	tests := []struct {
		name   string
		id     int64
		body   map[string]any
		status int
		msg    string
	}{
		{name: "closed", id: closed, body: map[string]any{"new_text": "x", "password": "p"}, status: http.StatusForbidden, msg: "Dataset is not open for adding sentences"},
		{name: "missing dataset", id: open + 100, body: map[string]any{"new_text": "x"}, status: http.StatusNotFound, msg: "Dataset not found"},
		{name: "no text", id: open, body: map[string]any{}, status: http.StatusBadRequest, msg: "No sentence provided"},
		{name: "too long", id: open, body: map[string]any{"new_text": strings.Repeat("a", 251)}, status: http.StatusBadRequest, msg: "Sentence too long"},
		{name: "trailing minus", id: open, body: map[string]any{"new_text": "x", "new_value": "5-"}, status: http.StatusBadRequest, msg: "Invalid value"},
		{name: "letters", id: open, body: map[string]any{"new_text": "x", "new_value": "abc"}, status: http.StatusBadRequest, msg: "Invalid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := ts.do(http.MethodPost, path(tt.id, "add"), tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assertError(t, raw, tt.msg)
		})
	}

	assert.Len(t, ts.get(open).Sentences, 1)
	assert.Empty(t, ts.get(closed).Sentences)
}

func TestAPI_Delete(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(map[string]any{
		"name": "gone", "password": "p",
		"sentences": []map[string]any{{"text": "a"}, {"text": "b"}},
	})
	other := ts.create(map[string]any{"name": "stays", "password": "p", "sentences": []map[string]any{{"text": "c"}}})

	resp, raw := ts.do(http.MethodPost, path(id, "delete"), map[string]any{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertError(t, raw, "Incorrect password")

	resp, raw = ts.do(http.MethodPost, path(id, "delete"), map[string]any{"password": "p"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{"message":"Dataset deleted successfully"}`, string(raw))

	resp, _ = ts.do(http.MethodGet, path(id, ""), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = ts.do(http.MethodPost, path(id, "delete"), map[string]any{"password": "p"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertError(t, raw, "Dataset not found")

	assert.Equal(t, []string{"c"}, texts(ts.get(other)))
}

func TestAPI_Edit(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create(map[string]any{
		"name": "draft", "password": "p",
		"sentences": []map[string]any{{"text": "one"}, {"text": "two"}, {"text": "three"}},
	})
	before := ts.get(id)

	resp, raw := ts.do(http.MethodPost, path(id, "edit"), map[string]any{
		"password":            "p",
		"new_name":            "final",
		"new_is_open":         true,
		"new_sentences":       []map[string]any{{"text": "four", "value": 4}},
		"edited_sentences":    []map[string]any{{"id": before.Sentences[0].ID, "text": "ONE", "value": "1"}, {"id": 9999, "text": "fresh"}},
		"sentences_to_remove": []any{before.Sentences[1].ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{"message":"Dataset updated successfully"}`, string(raw))

	after := ts.get(id)
	assert.Equal(t, "final", after.Name)
	assert.True(t, after.IsOpen)
	assert.ElementsMatch(t, []string{"ONE", "three", "fresh", "four"}, texts(after))
	assert.Equal(t, before.Sentences[0].ID, after.Sentences[0].ID)
	assert.Equal(t, int64(1), after.Sentences[0].Value)

	tests := []struct {
		name   string
		id     int64
		body   map[string]any
		status int
		msg    string
	}{
		{name: "wrong password", id: id, body: map[string]any{"password": "x", "new_name": "hacked"}, status: http.StatusUnauthorized, msg: "Incorrect password"},
		{name: "missing", id: id + 100, body: map[string]any{"password": "p"}, status: http.StatusNotFound, msg: "Dataset not found"},
		{name: "long new sentence", id: id, body: map[string]any{"password": "p", "new_name": "x", "new_sentences": []map[string]any{{"text": strings.Repeat("a", 251)}}}, status: http.StatusBadRequest, msg: "Sentence(s) too long"},
		{name: "long edited sentence", id: id, body: map[string]any{"password": "p", "edited_sentences": []map[string]any{{"id": 1, "text": strings.Repeat("a", 251)}}}, status: http.StatusBadRequest, msg: "Sentence(s) too long"},
		{name: "bad remove id", id: id, body: map[string]any{"password": "p", "sentences_to_remove": []any{"x"}}, status: http.StatusBadRequest, msg: "Invalid sentences to remove"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := ts.do(http.MethodPost, path(tt.id, "edit"), tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assertError(t, raw, tt.msg)
		})
	}

	unchanged := ts.get(id)
	assert.Equal(t, "final", unchanged.Name)
	assert.Equal(t, texts(after), texts(unchanged))
}

func TestAPI_OutOfRangeNumbers(t *testing.T) {
	ts := newTestServer(t)
	a := ts.create(map[string]any{"name": "a", "password": "p", "is_open": true})
	b := ts.create(map[string]any{"name": "b", "password": "p", "is_open": true})

	resp, raw := ts.do(http.MethodPost, path(a, "edit"),
		`{"password":"p","edited_sentences":[{"id":"9223372036854775807","text":"x"}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertError(t, raw, "Invalid edited sentence id")

	resp, raw = ts.do(http.MethodPost, path(b, "add"), map[string]any{"new_text": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = ts.do(http.MethodPost, "/datasets/new",
		`{"name":"big","password":"p","sentences":[{"text":"x","value":9007199254740993}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertError(t, raw, "Invalid value(s)")

	resp, raw = ts.do(http.MethodPost, path(b, "add"), `{"new_text":"x","new_value":9007199254740993}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertError(t, raw, "Invalid value")

	// the same digits as a string are exact
	id := ts.create(map[string]any{
		"name": "exact", "password": "p",
		"sentences": []map[string]any{{"text": "x", "value": "9007199254740993"}},
	})
	ds := ts.get(id)
	require.Len(t, ds.Sentences, 1)
	assert.Equal(t, int64(9007199254740993), ds.Sentences[0].Value)
	assert.Equal(t, []string{"hello"}, texts(ts.get(b)))
}

func TestAPI_CORS(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(http.MethodGet, "/datasets", nil)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, raw := ts.do(http.MethodOptions, "/datasets/new", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestAPI_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"OK"}`, string(raw))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAPI_OpenAPI(t *testing.T) {
	ts := newTestServer(t)

	resp, raw := ts.do(http.MethodGet, "/openapi.json", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "/datasets/{id}/edit")
}
