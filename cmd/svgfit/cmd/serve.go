// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/config"
	"cogentcore.org/svgfit/envelope"
	"cogentcore.org/svgfit/svg"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// shutdownTimeout is how long in-flight requests get to finish on shutdown.
const shutdownTimeout = 5 * time.Second

type requestIDKey struct{}

// Server serves envelope computations over HTTP:
//   - POST /v1/envelope computes a JSON element list (see [envelope.File]);
//   - POST /v1/svg fits an SVG document;
//   - GET /v1/live fits each SVG document sent over a websocket;
//   - GET /healthz reports that the server is up.
//
// The buffer query parameter overrides the configured buffer.
type Server struct {
	Config *config.Config
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Route("/v1", func(r chi.Router) {
		r.With(middleware.AllowContentEncoding("identity")).Post("/envelope", s.handleEnvelope)
		r.With(middleware.AllowContentEncoding("identity")).Post("/svg", s.handleSVG)
		r.Get("/live", s.handleLive)
	})
	return r
}

// Serve listens on the configured address until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// options returns the configured options with the request overrides.
func (s *Server) options(r *http.Request) (*config.Config, error) {
	c := *s.Config
	if b := r.URL.Query().Get("buffer"); b != "" {
		v, err := strconv.ParseFloat(b, 32)
		if err != nil || v < 0 {
			return nil, errors.New("buffer must be a non-negative number")
		}
		c.Buffer = float32(v)
	}
	return &c, nil
}

func (s *Server) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	c, err := s.options(r)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err)
		return
	}
	var f envelope.File
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.Config.Server.MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		httpError(w, r, bodyStatus(err), err)
		return
	}
	recs, err := f.Records(c.FlattenSegments)
	if err != nil {
		httpError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	res, err := envelope.Compute(r.Context(), recs, c.Options())
	if err != nil {
		httpError(w, r, computeStatus(err), err)
		return
	}
	writeJSONResponse(w, r, res)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	c, err := s.options(r)
	if err != nil {
		httpError(w, r, http.StatusBadRequest, err)
		return
	}
	sv, err := svg.ReadXML(http.MaxBytesReader(w, r.Body, s.Config.Server.MaxBody))
	if err != nil {
		httpError(w, r, bodyStatus(err), err)
		return
	}
	rep, err := FitDocument(r.Context(), c, sv)
	if err != nil {
		httpError(w, r, computeStatus(err), err)
		return
	}
	writeJSONResponse(w, r, rep)
}

func bodyStatus(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func computeStatus(err error) int {
	switch {
	case errors.Is(err, svg.ErrIndirectionCycle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSONResponse(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	errors.Warn(json.NewEncoder(w).Encode(v), "request", requestIDFrom(r.Context()))
}

func httpError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := requestIDFrom(r.Context())
	slog.Warn("request failed", "request", id, "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error(), "request": id})
}

// requestID gives each request an id, from the X-Request-Id header
// if it is a valid UUID, echoed in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		if err != nil {
			id = uuid.New()
		}
		w.Header().Set("X-Request-Id", id.String())
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id.String())))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		st := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("request", "request", requestIDFrom(r.Context()), "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "bytes", ww.BytesWritten(), "time", time.Since(st))
	})
}
