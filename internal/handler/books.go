package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/booknest/backend/internal/model"
	"github.com/booknest/backend/internal/service"
)

type BooksHandler struct {
	svc *service.BookService
}

func NewBooksHandler(svc *service.BookService) *BooksHandler {
	return &BooksHandler{svc: svc}
}

// List godoc
// @Summary List books with filters and pagination
// @Tags books
// @Produce json
// @Param search query string false "Match title or author"
// @Param genre query string false "Genre filter"
// @Param author query string false "Author filter"
// @Param minRating query number false "Minimum average rating"
// @Param sortBy query string false "title|rating|year|pages|author"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} model.Envelope
// @Router /books [get]
func (h *BooksHandler) List(c *gin.Context) {
	filters := model.BookFilters{
		Search: c.Query("search"),
		Genre:  c.Query("genre"),
		Author: c.Query("author"),
	}
	if raw := c.Query("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid minRating")
			return
		}
		filters.MinRating = minRating
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.svc.List(c.Request.Context(), filters, page, limit, c.DefaultQuery("sortBy", "title"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", result)
}

// Get godoc
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /books/{id} [get]
func (h *BooksHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid book id")
		return
	}

	book, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", book)
}

// Create godoc
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Router /books [post]
func (h *BooksHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.svc.Create(c.Request.Context(), GetAuthUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Book created successfully", book)
}

// Update godoc
// @Summary Update a book (creator or admin)
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} model.Envelope
// @Failure 403 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /books/{id} [put]
func (h *BooksHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid book id")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.svc.Update(c.Request.Context(), GetAuthUser(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Book updated successfully", book)
}

// Delete godoc
// @Summary Delete a book (creator or admin)
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} model.Envelope
// @Failure 403 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /books/{id} [delete]
func (h *BooksHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid book id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), GetAuthUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Book deleted successfully", nil)
}
