package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// maxBodyBytes caps request bodies, page documents included.
const maxBodyBytes = 4 << 20

// Handlers serves the HTTP endpoints.
type Handlers struct {
	c *app.Container
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Board returns the current board.
func (h *Handlers) Board(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ShowBoardUseCase().Execute(r.Context(), usecase.ShowBoardInput{})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Board)
}

// History returns stored board revisions.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.BoardHistoryUseCase().Execute(r.Context(), usecase.BoardHistoryInput{
		Limit: intFromQuery(r, "limit", 0),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"revisions": out.Revisions})
}

// Moves returns recorded card moves.
func (h *Handlers) Moves(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ListMovesUseCase().Execute(r.Context(), usecase.ListMovesInput{
		CardID: r.URL.Query().Get("cardId"),
		Limit:  intFromQuery(r, "limit", 0),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": out.Moves})
}

type moveRequest struct {
	CardID         string `json:"cardId"`
	SourceColumnID string `json:"sourceColumnId"`
	DestColumnID   string `json:"destColumnId"`
	SourceIndex    int    `json:"sourceIndex"`
	DestIndex      int    `json:"destIndex"`
}

// MoveCard moves a card, either by id or by source position.
func (h *Handlers) MoveCard(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	out, err := h.c.MoveCardUseCase().Execute(r.Context(), usecase.MoveCardInput{
		CardID:         req.CardID,
		SourceColumnID: req.SourceColumnID,
		SourceIndex:    req.SourceIndex,
		DestColumnID:   req.DestColumnID,
		DestIndex:      req.DestIndex,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"board": out.Board,
		"event": out.Event,
	})
}

type columnRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AddColumn appends a column to the board.
func (h *Handlers) AddColumn(w http.ResponseWriter, r *http.Request) {
	var req columnRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	out, err := h.c.AddColumnUseCase().Execute(r.Context(), usecase.AddColumnInput{ID: req.ID, Title: req.Title})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Board)
}

// RemoveColumn removes an empty column.
func (h *Handlers) RemoveColumn(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.RemoveColumnUseCase().Execute(r.Context(), usecase.RemoveColumnInput{
		ID: chi.URLParam(r, "columnID"),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Board)
}

type cardRequest struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NextAction string `json:"nextAction"`
	Notes      string `json:"notes"`
}

// AddCard appends a card to a column.
func (h *Handlers) AddCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	out, err := h.c.AddCardUseCase().Execute(r.Context(), usecase.AddCardInput{
		ColumnID:   chi.URLParam(r, "columnID"),
		Name:       req.Name,
		Contact:    req.Contact,
		Email:      req.Email,
		Phone:      req.Phone,
		NextAction: req.NextAction,
		Notes:      req.Notes,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Card)
}

// ListPages returns pages, optionally filtered by status and tag.
func (h *Handlers) ListPages(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ListPagesUseCase().Execute(r.Context(), usecase.ListPagesInput{
		Status: domain.PageStatus(strings.ToLower(r.URL.Query().Get("status"))),
		Tag:    r.URL.Query().Get("tag"),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": out.Pages})
}

// ShowPage returns a single page.
func (h *Handlers) ShowPage(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ShowPageUseCase().Execute(r.Context(), usecase.ShowPageInput{Slug: chi.URLParam(r, "slug")})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Page)
}

// ExportPage returns the stored row of a page as is.
func (h *Handlers) ExportPage(w http.ResponseWriter, r *http.Request) {
	out, err := h.c.ExportPageUseCase().Execute(r.Context(), usecase.ExportPageInput{Slug: chi.URLParam(r, "slug")})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Row)
}

// ImportPage stores the request body as a page. The slug query parameter
// overrides any slug in the document.
func (h *Handlers) ImportPage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
				"error": fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		badRequest(w, err)
		return
	}
	out, err := h.c.ImportDocumentUseCase().Execute(r.Context(), usecase.ImportDocumentInput{
		Data: data,
		Slug: r.URL.Query().Get("slug"),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out.Page)
}

type pagePatch struct {
	Title       *string            `json:"title"`
	Status      *domain.PageStatus `json:"status"`
	Thumbnail   *string            `json:"thumbnail"`
	Prompt      *string            `json:"prompt"`
	CompanyName *string            `json:"companyName"`
	PersonName  *string            `json:"personName"`
	WordCount   *int               `json:"wordCount"`
	Tags        []string           `json:"tags"`
}

// SavePage applies a partial update to a page.
func (h *Handlers) SavePage(w http.ResponseWriter, r *http.Request) {
	var req pagePatch
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	out, err := h.c.SavePageUseCase().Execute(r.Context(), usecase.SavePageInput{
		Slug:        chi.URLParam(r, "slug"),
		Title:       req.Title,
		Status:      req.Status,
		Thumbnail:   req.Thumbnail,
		Prompt:      req.Prompt,
		CompanyName: req.CompanyName,
		PersonName:  req.PersonName,
		WordCount:   req.WordCount,
		Tags:        req.Tags,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Page)
}

// DeletePage removes a page.
func (h *Handlers) DeletePage(w http.ResponseWriter, r *http.Request) {
	err := h.c.DeletePageUseCase().Execute(r.Context(), usecase.DeletePageInput{Slug: chi.URLParam(r, "slug")})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func intFromQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return def
	}
	return i
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrColumnNotFound),
		errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrColumnExists),
		errors.Is(err, domain.ErrColumnNotEmpty):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyColumnID),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrEmptySlug),
		errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotInitialized),
		errors.Is(err, domain.ErrNoHistory):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func httpError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]any{
		"error": err.Error(),
	})
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
