package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/shopgate/internal/api"
	"github.com/dmitrymomot/shopgate/pkg/logger"
)

// Handler exposes token-gated product CRUD. The token middleware is applied
// by the router assembling these routes, not here.
//
//	POST   /         {pname, description?, price, stock} -> 201
//	GET    /         -> 200 [{id, name, description, price, stock}]
//	PUT    /{id}     partial fields -> 200
//	DELETE /{id}     -> 200
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the catalog routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// createRequest keeps the wire contract existing clients rely on: the
// product name travels as "pname". Pointer fields distinguish absent from
// zero values.
type createRequest struct {
	Name        string           `json:"pname"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int32           `json:"stock"`
}

type updateRequest struct {
	Name        *string          `json:"pname"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int32           `json:"stock"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Price == nil || req.Stock == nil {
		api.Error(w, http.StatusBadRequest, "missing fields")
		return
	}

	if _, err := h.svc.Create(r.Context(), req.Name, req.Description, *req.Price, *req.Stock); err != nil {
		h.respondError(w, r, err)
		return
	}

	api.Message(w, http.StatusCreated, "Product added")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// An empty catalog serializes as [], not null.
	if products == nil {
		products = []Product{}
	}

	api.JSON(w, http.StatusOK, products)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusNotFound, "product not found")
		return
	}

	var req updateRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := Update{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if err := h.svc.Update(r.Context(), id, upd); err != nil {
		h.respondError(w, r, err)
		return
	}

	api.Message(w, http.StatusOK, "Product updated")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	api.Message(w, http.StatusOK, "Product deleted")
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		api.Error(w, http.StatusNotFound, "product not found")
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrNegativePrice), errors.Is(err, ErrNegativeStock):
		api.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "catalog request failed", logger.Error(err), logger.Component("catalog"))
		api.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
