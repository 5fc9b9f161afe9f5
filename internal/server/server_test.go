package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/idilsaglam/phonebook/internal/api"
	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/store/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, seed ...model.Entry) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(memstore.New(seed...), zaptest.NewLogger(t)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestListEmpty(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/persons", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `[]`, body)
}

func TestCreateThenGet(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/api/persons", `{"name":"Mira","number":"040-123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Entry
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Mira", created.Name)

	resp, body = do(t, srv, http.MethodGet, "/api/persons/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"number":"040-123"`)
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]struct {
		body string
		want string
	}{
		"missing number": {`{"name":"Mira"}`, `{"error":"name or number missing"}`},
		"blank name":     {`{"name":"  ","number":"1"}`, `{"error":"name or number missing"}`},
		"malformed":      {`{"name":`, `{"error":"malformed JSON"}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := do(t, srv, http.MethodPost, "/api/persons", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, tc.want, body)
		})
	}
}

func TestGetUnknownID(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/persons/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"unknown id"}`, body)
}

func TestDeleteIsIdempotent(t *testing.T) {
	srv := newTestServer(t,
		model.Entry{ID: "1", Name: "A", Number: "1"},
		model.Entry{ID: "2", Name: "B", Number: "2"},
	)

	resp, _ := do(t, srv, http.MethodDelete, "/api/persons/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodDelete, "/api/persons/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body := do(t, srv, http.MethodGet, "/api/persons", "")
	assert.JSONEq(t, `[{"id":"2","name":"B","number":"2"}]`, body)
}

func TestUnknownEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/api/people"},
		{http.MethodPut, "/api/persons"},
	} {
		resp, body := do(t, srv, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"unknown endpoint"}`, body)
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv := newTestServer(t)
	c, err := api.New(srv.URL, api.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	ctx := context.Background()

	created, err := c.Create(ctx, "Ada", "123")
	require.NoError(t, err)

	_, err = c.Create(ctx, "Ada", "")
	require.Error(t, err)
	assert.Equal(t, "name or number missing", err.Error())

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Entry{created}, list)

	require.NoError(t, c.Delete(ctx, created.ID))
	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(ln.Addr().String(), memstore.New(), zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	hc := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	require.Eventually(t, func() bool {
		resp, err := hc.Get("http://" + ln.Addr().String() + "/api/persons")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
