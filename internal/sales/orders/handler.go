package orders

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/salesorder/internal/platform/httpx"
	"github.com/odyssey-erp/salesorder/internal/shared"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyModule = "sales_orders"
	totalCountHeader  = "X-Total-Count"
	totalPagesHeader  = "X-Total-Pages"
)

type Handler struct {
	logger      *slog.Logger
	service     *Service
	validator   *validator.Validate
	idempotency *shared.IdempotencyStore
}

func NewHandler(logger *slog.Logger, service *Service, idempotency *shared.IdempotencyStore) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		validator:   httpx.NewValidator(),
		idempotency: idempotency,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	orders, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, "list sales orders failed", err)
		return
	}
	page := shared.NewPagination(filter.Skip, filter.Take, total)
	w.Header().Set(totalCountHeader, strconv.Itoa(page.Total))
	w.Header().Set(totalPagesHeader, strconv.Itoa(page.TotalPages))
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get sales order failed", err, "id", id)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSalesOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ValidationErrors(err))
		return
	}

	key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
	if key != "" {
		if err := h.idempotency.CheckAndInsert(r.Context(), key, idempotencyModule); err != nil {
			h.respondError(w, "reserve idempotency key failed", err, "key", key)
			return
		}
	}

	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		if key != "" {
			if derr := h.idempotency.Delete(r.Context(), key, idempotencyModule); derr != nil {
				h.logger.Warn("release idempotency key", "error", derr, "key", key)
			}
		}
		h.respondError(w, "create sales order failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateSalesOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ValidationErrors(err))
		return
	}
	order, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update sales order failed", err, "id", id)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete sales order failed", err, "id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.Submit(r.Context(), id)
	if err != nil {
		h.respondError(w, "submit sales order failed", err, "id", id)
		return
	}
	h.logger.Info("sales order submitted", "id", order.ID, "so_number", order.SONumber)
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) respondError(w http.ResponseWriter, msg string, err error, args ...any) {
	if httpx.StatusOf(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, append([]any{"error", err}, args...)...)
	}
	httpx.RespondError(w, err)
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	skip, take := shared.ParseSkipTake(q)
	filter := ListFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Skip:   skip,
		Take:   take,
	}

	var err error
	if filter.DateFrom, err = httpx.OptionalDateQuery(r, "dateFrom"); err != nil {
		return ListFilter{}, err
	}
	if filter.DateTo, err = httpx.OptionalDateEndQuery(r, "dateTo"); err != nil {
		return ListFilter{}, err
	}
	if filter.ARAccountID, err = httpx.OptionalUUIDQuery(r, "arAccountId"); err != nil {
		return ListFilter{}, err
	}

	if v := strings.ToUpper(strings.TrimSpace(q.Get("status"))); v != "" {
		status := SalesOrderStatus(v)
		if status != StatusDraft && status != StatusSubmitted {
			return ListFilter{}, shared.NewValidationError("status", "must be DRAFT or SUBMITTED")
		}
		filter.Status = &status
	}
	if v := strings.ToUpper(strings.TrimSpace(q.Get("transactionType"))); v != "" {
		tt := TransactionType(v)
		if tt != TransactionGoods && tt != TransactionServices {
			return ListFilter{}, shared.NewValidationError("transactionType", "must be GOODS or SERVICES")
		}
		filter.TransactionType = &tt
	}
	return filter, nil
}

