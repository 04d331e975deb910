package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/identity"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

type AuthorHandler struct {
	service  author.Service
	storage  storage.ObjectStorage
	provider identity.Provider
	google   config.GoogleConfig
}

func NewAuthorHandler(
	service author.Service,
	objectStorage storage.ObjectStorage,
	provider identity.Provider,
	google config.GoogleConfig,
) *AuthorHandler {
	return &AuthorHandler{
		service:  service,
		storage:  objectStorage,
		provider: provider,
		google:   google,
	}
}

// Register handles POST /authors. The body is a multipart form so the
// avatar can ride along; a missing avatar is fine.
func (h *AuthorHandler) Register(c *gin.Context) {
	var req author.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	avatarURL, ok := h.uploadImage(c, "avatar", "avatars")
	if !ok {
		return
	}

	created, err := h.service.Register(c.Request.Context(), req, avatarURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

// Login handles POST /authors/login. The issued token is echoed both in
// the Authorization response header and in the body.
func (h *AuthorHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Authorization", "Bearer "+res.Token)
	response.JSON(c, http.StatusOK, res)
}

// LoginGoogle handles GET /authors/login-google: redirect the browser
// into the federated handshake.
func (h *AuthorHandler) LoginGoogle(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthURL(state))
}

// CallbackGoogle handles GET /authors/callback-google: turn the code
// into a verified profile, log the author in (creating the record on
// first contact) and bounce back to the frontend with the token.
func (h *AuthorHandler) CallbackGoogle(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		response.BadRequest(c, "invalid oauth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing authorization code")
		return
	}

	profile, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Error("federated identity exchange failed", err)
		response.Error(c, http.StatusBadGateway, "identity provider unavailable")
		return
	}

	res, err := h.service.FederatedLogin(c.Request.Context(), *profile)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.google.FrontendURL+"?token="+res.Token)
}

// GetMe handles GET /authors/me, resolving the author from the token
// subject the guard stored on the context.
func (h *AuthorHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, a)
}

// List handles GET /authors.
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, authors)
}

// GetByID handles GET /authors/:userId.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, a)
}

// UpdateProfile handles PUT /authors/:userId. Self-only.
func (h *AuthorHandler) UpdateProfile(c *gin.Context) {
	actingID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req author.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), actingID, targetID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// UpdateAvatar handles PATCH /authors/:userId/avatar.
func (h *AuthorHandler) UpdateAvatar(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	avatarURL, ok := h.uploadImage(c, "avatar", "avatars")
	if !ok {
		return
	}

	updated, err := h.service.UpdateAvatar(c.Request.Context(), targetID, avatarURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// Delete handles DELETE /authors/:userId. Self-only; authored posts and
// comments survive with dangling author references (documented
// behavior, not an accident).
func (h *AuthorHandler) Delete(c *gin.Context) {
	actingID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actingID, targetID); err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "profile deleted successfully"})
}

// uploadImage pulls an optional multipart file and stores it, returning
// the URL. A missing file yields (nil, true); an upload failure writes
// the error response and yields (nil, false).
func (h *AuthorHandler) uploadImage(c *gin.Context, field, prefix string) (*string, bool) {
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

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.BadRequest(c, err.Error())

	case errors.Is(err, author.ErrInvalidPassword):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, author.ErrForbidden):
		response.Forbidden(c, err.Error())

	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, author.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	default:
		logger.Error("author handler error", err)
		response.InternalServerError(c, "internal server error")
	}
}
