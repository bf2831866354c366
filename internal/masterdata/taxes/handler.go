package taxes

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/salesorder/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: httpx.NewValidator()}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	taxes, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list taxes failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, taxes)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	tax, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get tax failed", err, "id", id)
		return
	}
	httpx.JSON(w, http.StatusOK, tax)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ValidationErrors(err))
		return
	}
	tax, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, "create tax failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tax)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateTaxRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ValidationErrors(err))
		return
	}
	tax, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update tax failed", err, "id", id)
		return
	}
	httpx.JSON(w, http.StatusOK, tax)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete tax failed", err, "id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, msg string, err error, args ...any) {
	if httpx.StatusOf(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, append([]any{"error", err}, args...)...)
	}
	httpx.RespondError(w, err)
}
