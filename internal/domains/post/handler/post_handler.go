package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

type PostHandler struct {
	service post.Service
	storage storage.ObjectStorage
}

func NewPostHandler(service post.Service, objectStorage storage.ObjectStorage) *PostHandler {
	return &PostHandler{
		service: service,
		storage: objectStorage,
	}
}

// List handles GET /blogPost?page=&perPage=. Out-of-range paging values
// are clamped, never rejected.
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "9"))

	res, err := h.service.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// GetByID handles GET /blogPost/:postId. Public.
func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, view)
}

// ListByAuthor handles GET /blogPost/author/:userId.
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	views, err := h.service.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, views)
}

// Create handles POST /blogPost. Multipart form; the cover image rides
// in the "cover" field and is optional.
func (h *PostHandler) Create(c *gin.Context) {
	var req post.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	coverURL, ok := h.uploadImage(c, "cover", "covers")
	if !ok {
		return
	}

	view, err := h.service.Create(c.Request.Context(), req, coverURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, view)
}

// Update handles PUT /blogPost/:postId, replacing every mutable field.
func (h *PostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// UpdateCover handles PATCH /blogPost/:postId/cover.
func (h *PostHandler) UpdateCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	coverURL, ok := h.uploadImage(c, "cover", "covers")
	if !ok {
		return
	}

	updated, err := h.service.ReplaceCover(c.Request.Context(), id, coverURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// Delete handles DELETE /blogPost/:postId.
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "post deleted successfully"})
}

func (h *PostHandler) uploadImage(c *gin.Context, field, prefix string) (*string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, true // no file sent
	}

	data, contentType, err := readMultipartFile(fileHeader)
	if err != nil {
		response.BadRequest(c, "could not read uploaded file")
		return nil, false
	}

	key := prefix + "/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	url, err := h.storage.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		logger.Error("image upload failed", err)
		response.BadRequest(c, "image upload failed")
		return nil, false
	}

	return &url, true
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return data, contentType, nil
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.BadRequest(c, err.Error())

	case errors.Is(err, post.ErrPostNotFound), errors.Is(err, post.ErrCommentNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("post handler error", err)
		response.InternalServerError(c, "internal server error")
	}
}
