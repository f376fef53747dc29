// Package handler exposes the staff console API over HTTP. It is a thin
// layer: query parsing, confirmation gating, and error translation live
// here; every decision about the data lives in the lifecycle controller.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bibliodesk/internal/console/lifecycle"
	"bibliodesk/internal/console/models"
	"bibliodesk/internal/console/session"
	"bibliodesk/internal/console/view"
	dErrors "bibliodesk/pkg/domain-errors"
	"bibliodesk/pkg/platform/httputil"
	"bibliodesk/pkg/requestcontext"
)

type Handler struct {
	sessions *session.Registry
	logger   *slog.Logger
}

func New(sessions *session.Registry, logger *slog.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger}
}

// Register mounts the console routes. The router is expected to carry the
// staff auth middleware; every handler here assumes an operator identity.
func (h *Handler) Register(r chi.Router) {
	r.Get("/borrows", h.handleListBorrows)
	r.Post("/borrows/{borrowID}/return", h.handleReturnBorrow)
	r.Delete("/borrows/{borrowID}", h.handleDeleteBorrow)

	r.Get("/fines", h.handleListFines)
	r.Post("/fines", h.handleCreateFine)
	r.Put("/fines/{fineID}", h.handleUpdateFine)
	r.Post("/fines/{fineID}/pay", h.handlePayFine)
	r.Delete("/fines/{fineID}", h.handleDeleteFine)
}

type borrowListResponse struct {
	view.Page[models.EnrichedBorrow]
	Stale bool `json:"stale"`
}

type fineListResponse struct {
	view.Page[models.EnrichedFine]
	Stale bool `json:"stale"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) handleListBorrows(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	q, err := parseListQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, stale, err := ctrl.Borrows(r.Context(), q.search, q.page, q.refresh)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, borrowListResponse{Page: page, Stale: stale})
}

func (h *Handler) handleReturnBorrow(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "borrowID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := ctrl.MarkReturned(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: "returned"})
}

func (h *Handler) handleDeleteBorrow(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if !h.requireConfirmed(w, r) {
		return
	}
	id, err := pathID(r, "borrowID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := ctrl.DeleteBorrow(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (h *Handler) handleListFines(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	q, err := parseListQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page, stale, err := ctrl.Fines(r.Context(), q.search, q.page, q.refresh)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fineListResponse{Page: page, Stale: stale})
}

func (h *Handler) handleCreateFine(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateFineRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := ctrl.CreateFine(ctx, req.Command()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, statusResponse{Status: "created"})
}

func (h *Handler) handleUpdateFine(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "fineID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateFineRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := ctrl.UpdateFine(ctx, id, req.Command()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: "updated"})
}

func (h *Handler) handlePayFine(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if !h.requireConfirmed(w, r) {
		return
	}
	id, err := pathID(r, "fineID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := ctrl.PayFine(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: "paid"})
}

func (h *Handler) handleDeleteFine(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	if !h.requireConfirmed(w, r) {
		return
	}
	id, err := pathID(r, "fineID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := ctrl.DeleteFine(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

// controller resolves the operator's console session from the request
// identity set by the auth middleware.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*lifecycle.Controller, bool) {
	operatorID := requestcontext.OperatorID(r.Context())
	if operatorID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing operator identity"))
		return nil, false
	}
	return h.sessions.Get(operatorID), true
}

// requireConfirmed gates irrecoverable operations on the X-Confirmed header
// the frontend sets after its confirm dialog.
func (h *Handler) requireConfirmed(w http.ResponseWriter, r *http.Request) bool {
	if !requestcontext.Confirmed(r.Context()) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConfirmationRequired,
			"operation requires the X-Confirmed: true header"))
		return false
	}
	return true
}

type listQuery struct {
	search  string
	page    int
	refresh bool
}

func parseListQuery(r *http.Request) (listQuery, error) {
	q := r.URL.Query()
	out := listQuery{
		search:  strings.TrimSpace(q.Get("search")),
		refresh: q.Get("refresh") == "true",
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return listQuery{}, dErrors.New(dErrors.CodeBadRequest, "page must be an integer")
		}
		// out-of-range pages clamp downstream; only non-numbers are rejected
		out.page = page
		if out.page < 1 {
			out.page = 1
		}
	}
	return out, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
