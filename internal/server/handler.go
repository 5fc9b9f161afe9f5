// Package server is a small reference implementation of the persons
// collection API that the client talks to.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type handler struct {
	store store.Store
	log   *zap.Logger
}

// NewHandler routes the persons API onto st.
func NewHandler(st store.Store, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{store: st, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/persons", h.list)
	mux.HandleFunc("POST /api/persons", h.create)
	mux.HandleFunc("GET /api/persons/{id}", h.get)
	mux.HandleFunc("DELETE /api/persons/{id}", h.remove)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "unknown endpoint")
	})

	return logRequests(log, mux)
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.Get(r.Context(), model.ID(r.PathValue("id")))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown id")
		return
	}
	if err != nil {
		h.fail(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type createBody struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON")
		return
	}
	name, number := strings.TrimSpace(body.Name), strings.TrimSpace(body.Number)
	if name == "" || number == "" {
		writeError(w, http.StatusBadRequest, "name or number missing")
		return
	}

	e, err := h.store.Create(r.Context(), name, number)
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	h.log.Info("person.created", zap.String("id", e.ID.String()))
	writeJSON(w, http.StatusCreated, e)
}

// remove answers 204 whether or not the id existed.
func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	id := model.ID(r.PathValue("id"))
	removed, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, "delete", err)
		return
	}
	h.log.Info("person.deleted", zap.String("id", id.String()), zap.Bool("existed", removed))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) fail(w http.ResponseWriter, op string, err error) {
	h.log.Error("store.failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("http.request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
