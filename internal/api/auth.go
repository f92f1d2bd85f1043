package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liqma/backend/internal/middleware"
	"github.com/liqma/backend/internal/service"
	"github.com/liqma/backend/internal/types"
)

// maxAvatarBytes bounds sign-up image uploads.
const maxAvatarBytes = 5 << 20

type AuthHandler struct {
	authService service.IAuthService
	log         *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register signs a user up. The body is JSON, or a multipart form when an
// avatar is attached under "image".
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	multipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")

	var err error
	if multipart {
		err = c.ShouldBind(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	in := service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
	if multipart {
		if fh, err := c.FormFile("image"); err == nil {
			if fh.Size > maxAvatarBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
				return
			}
			contentType := fh.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "image/") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image must be an image file"})
				return
			}
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
				return
			}
			defer f.Close()
			in.Avatar = &service.Avatar{Filename: fh.Filename, ContentType: contentType, Body: f}
		}
	}

	res, err := h.authService.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, types.RegisterResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    types.NewUserResponse(res.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{
		Token: res.Token,
		User:  types.NewUserResponse(res.User),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":       types.NewUserResponse(user),
		"followers":  user.Followers,
		"following":  user.Following,
		"avg_rating": user.AvgRating,
	})
}
