package seller

import (
	"log/slog"
	"net/http"

	"sellerbooks/internal/httpx"

	"github.com/pkg/errors"
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

type createReq struct {
	FirstName string `json:"first_name" validate:"notblank,max=255"`
	LastName  string `json:"last_name" validate:"notblank,max=255"`
	Email     string `json:"e_mail" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type updateReq struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"notblank,max=255"`
	LastName  string `json:"last_name" validate:"notblank,max=255"`
	Email     string `json:"e_mail" validate:"required,email,max=255"`
}

type listResponse struct {
	Sellers []Seller `json:"sellers"`
}

// Register mounts the seller routes under /api/v1/seller.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/seller/{$}", h.Create)
	mux.HandleFunc("POST /api/v1/seller", h.Create)
	mux.HandleFunc("GET /api/v1/seller/{$}", h.List)
	mux.HandleFunc("GET /api/v1/seller", h.List)
	mux.HandleFunc("GET /api/v1/seller/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/seller/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/seller/{id}", h.Delete)
}

// Create handles POST /api/v1/seller/
// @Summary Register a seller
// @Tags sellers
// @Accept json
// @Produce json
// @Param request body createReq true "Seller"
// @Success 201 {object} Seller
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /api/v1/seller/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.DecodeError(w, r, err)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, httpx.CodeValidation, "Invalid input", details)
		return
	}

	seller, err := h.service.Register(r.Context(), CreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, seller)
}

// List handles GET /api/v1/seller/
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Sellers: sellers})
}

// Get handles GET /api/v1/seller/{id}
// @Summary Get a seller with their books
// @Tags sellers
// @Produce json
// @Param id path int true "Seller ID"
// @Success 200 {object} WithBooks
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/seller/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}
	seller, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, seller)
}

// Update handles PUT /api/v1/seller/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}
	var req updateReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.DecodeError(w, r, err)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, httpx.CodeValidation, "Invalid input", details)
		return
	}

	seller, err := h.service.Update(r.Context(), id, UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, seller)
}

// Delete handles DELETE /api/v1/seller/{id}. The seller's books go with them.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, httpx.CodeValidation, validationErr.Message, []httpx.ErrorDetail{
			{Field: validationErr.Field, Message: validationErr.Message},
		})
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONError(w, r, http.StatusConflict, httpx.CodeAlreadyExists, "Email already exists", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "Seller not found", nil)
	default:
		h.logger.ErrorContext(r.Context(), "seller request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", httpx.RequestIDFrom(r)),
			slog.Any("error", err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
	}
}
