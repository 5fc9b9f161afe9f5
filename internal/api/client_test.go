package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/idilsaglam/phonebook/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithHTTPClient(srv.Client()), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:3001", "ftp://host", "http://"} {
		_, err := New(raw)
		assert.Error(t, err, "base url %q", raw)
	}
}

func TestListReturnsEntriesInServerOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/persons", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":2,"name":"B","number":"2"},{"id":1,"name":"A","number":"1"}]`)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Entry{
		{ID: "2", Name: "B", Number: "2"},
		{ID: "1", Name: "A", Number: "1"},
	}, got)
}

func TestListNullBodyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListStatusFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindStatus))
	assert.Equal(t, "GET /api/persons 500", err.Error())
}

func TestListDecodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDecode))
	assert.Contains(t, err.Error(), "GET /api/persons")
}

func TestListTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	srv.Close()

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
}

func TestListHonoursCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateSendsJSONAndDecodesEntry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"Ada","number":"123"}`, string(b))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"abc","name":"Ada","number":"123"}`)
	})

	got, err := c.Create(context.Background(), "Ada", "123")
	require.NoError(t, err)
	assert.Equal(t, model.Entry{ID: "abc", Name: "Ada", Number: "123"}, got)
}

func TestCreateUsesServerErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid number"}`)
	})

	_, err := c.Create(context.Background(), "Ada", "x")
	require.Error(t, err)
	assert.Equal(t, "invalid number", err.Error())

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
}

func TestCreateFallsBackToStatusMessage(t *testing.T) {
	cases := map[string]string{
		"no body":       ``,
		"not json":      `oops`,
		"empty error":   `{"error":""}`,
		"no error key":  `{"message":"nope"}`,
		"error not str": `{"error":42}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = io.WriteString(w, body)
			})

			_, err := c.Create(context.Background(), "Ada", "1")
			require.Error(t, err)
			assert.Equal(t, "POST /api/persons 422", err.Error())
		})
	}
}

func TestCreateDecodeFailureOnSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})

	_, err := c.Create(context.Background(), "Ada", "1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDecode))
}

func TestDeleteAcceptsAny2xx(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusAccepted, http.StatusNoContent} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/persons/7", r.URL.Path)
			w.WriteHeader(status)
		})
		assert.NoError(t, c.Delete(context.Background(), "7"), "status %d", status)
	}
}

func TestDeleteFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Delete(context.Background(), "7")
	require.Error(t, err)
	assert.Equal(t, "DELETE /api/persons/7 500", err.Error())
}

func TestDeleteEscapesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/persons/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "a/b"))
}

func TestBasePathPrefixIsKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/phonebook/api/persons", r.URL.Path)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/phonebook/", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.NoError(t, err)
}
