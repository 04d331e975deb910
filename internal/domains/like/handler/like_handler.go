package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/domains/like"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

type LikeHandler struct {
	service like.Service
}

func NewLikeHandler(service like.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// Toggle handles POST /posts/:postId/likes/toggle. Landing on "liked"
// answers 201, landing on "unliked" answers 200.
func (h *LikeHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	res, err := h.service.Toggle(c.Request.Context(), postID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if res.Status == like.StatusLiked {
		status = http.StatusCreated
	}
	response.JSON(c, status, res)
}

// Check handles GET /posts/:postId/likes/check for the current user.
func (h *LikeHandler) Check(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	res, err := h.service.Check(c.Request.Context(), postID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// ListLikers handles GET /posts/:postId/likes. Public.
func (h *LikeHandler) ListLikers(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	res, err := h.service.ListLikers(c.Request.Context(), postID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

func (h *LikeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, like.ErrPostNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("like handler error", err)
		response.InternalServerError(c, "internal server error")
	}
}
