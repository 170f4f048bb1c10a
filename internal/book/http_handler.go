package book

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
	Title    string `json:"title" validate:"notblank,max=255"`
	Author   string `json:"author" validate:"notblank,max=255"`
	Pages    int    `json:"count_pages" validate:"gt=0,lte=100000"`
	Year     int    `json:"year" validate:"lte=9999"`
	SellerID int64  `json:"seller_id" validate:"gt=0"`
}

// updateReq may echo the book id; the id in the path wins.
type updateReq struct {
	ID       int64  `json:"id"`
	Title    string `json:"title" validate:"notblank,max=255"`
	Author   string `json:"author" validate:"notblank,max=255"`
	Pages    int    `json:"pages" validate:"gt=0,lte=100000"`
	Year     int    `json:"year" validate:"lte=9999"`
	SellerID int64  `json:"seller_id" validate:"gt=0"`
}

type listResponse struct {
	Books []Book `json:"books"`
}

// Register mounts the book routes under /api/v1/books.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/books/{$}", h.Create)
	mux.HandleFunc("POST /api/v1/books", h.Create)
	mux.HandleFunc("GET /api/v1/books/{$}", h.List)
	mux.HandleFunc("GET /api/v1/books", h.List)
	mux.HandleFunc("GET /api/v1/books/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/books/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/books/{id}", h.Delete)
}

// Create handles POST /api/v1/books/
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param request body createReq true "Book"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /api/v1/books/ [post]
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

	b, err := h.service.Create(r.Context(), Input{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Pages:    req.Pages,
		SellerID: req.SellerID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, b)
}

// List handles GET /api/v1/books/
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} listResponse
// @Router /api/v1/books/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Books: books})
}

// Get handles GET /api/v1/books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Update handles PUT /api/v1/books/{id}
// @Summary Replace a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body updateReq true "Book"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /api/v1/books/{id} [put]
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

	b, err := h.service.Update(r.Context(), id, Input{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Pages:    req.Pages,
		SellerID: req.SellerID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/v1/books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/books/{id} [delete]
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
	case errors.Is(err, ErrSellerNotFound):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, httpx.CodeValidation, "Seller not found", []httpx.ErrorDetail{
			{Field: "seller_id", Message: "Seller not found"},
		})
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "Book not found", nil)
	default:
		h.logger.ErrorContext(r.Context(), "book request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", httpx.RequestIDFrom(r)),
			slog.Any("error", err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
	}
}
