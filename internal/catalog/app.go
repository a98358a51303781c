package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BookCatalog/pkg/kit"
)

const (
	readyTimeout   = 1 * time.Second
	welcomeMessage = "Welcome to Book Management API"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.welcome)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Get("/books", s.list)
	r.Get("/books/", s.list)
	r.Get("/books/{key}", s.getByTitle)
	r.Get("/books/{key}/", s.listByAuthor)

	r.Post("/books/create_book", s.create)
	r.Put("/books/update_book", s.update)
	r.Delete("/books/delete_book/{title}", s.delete)

	return r
}

func (s *Server) welcome(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logWarn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// list serves the whole catalog, or only one category when the category
// query parameter is present.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	var (
		books []Book
		err   error
	)

	q := r.URL.Query()
	if q.Has("category") {
		books, err = s.Store.FilterByCategory(r.Context(), q.Get("category"))
	} else {
		books, err = s.Store.ListAll(r.Context())
	}
	if err != nil {
		s.serverError(w, r, "list books failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) getByTitle(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "key")

	b, err := s.Store.GetByTitle(r.Context(), title)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"title": title})
		return
	}
	if err != nil {
		s.serverError(w, r, "get book failed", err, zap.String("title", title))
		return
	}
	kit.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) listByAuthor(w http.ResponseWriter, r *http.Request) {
	author := pathParam(r, "key")

	q := r.URL.Query()
	if !q.Has("category") {
		kit.WriteError(w, r, http.StatusBadRequest, "category required", nil)
		return
	}

	books, err := s.Store.FilterByAuthorAndCategory(r.Context(), author, q.Get("category"))
	if err != nil {
		s.serverError(w, r, "filter books failed", err, zap.String("author", author))
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in BookInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	b, err := s.Store.Insert(r.Context(), in)
	if err != nil {
		s.writeMutationError(w, r, "insert book failed", err)
		return
	}

	s.logDebug("book created", zap.Int("id", b.ID), zap.String("title", b.Title))
	kit.WriteJSON(w, http.StatusCreated, b)
}

// update replaces the first book whose title matches the title in the body.
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var in BookInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	b, err := s.Store.ReplaceByTitle(r.Context(), in.Title, in)
	if err != nil {
		s.writeMutationError(w, r, "replace book failed", err)
		return
	}

	s.logDebug("book replaced", zap.Int("id", b.ID), zap.String("title", b.Title))
	kit.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")

	b, err := s.Store.DeleteByTitle(r.Context(), title)
	if err != nil {
		s.writeMutationError(w, r, "delete book failed", err)
		return
	}

	s.logDebug("book deleted", zap.Int("id", b.ID), zap.String("title", b.Title))
	kit.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) writeMutationError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
	case errors.Is(err, ErrInvalidBook):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid book", map[string]any{"cause": err.Error()})
	default:
		s.serverError(w, r, msg, err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) logWarn(msg string, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Warn(msg, fields...)
	}
}

func (s *Server) logDebug(msg string, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Debug(msg, fields...)
	}
}

// pathParam returns a decoded route parameter. chi hands back the escaped
// form when the request path carried an encoding such as %2F.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}
