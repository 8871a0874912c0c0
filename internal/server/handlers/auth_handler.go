package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/service/permission"
	"github.com/mamadbah2/packhouse/internal/store"
)

type credentials struct {
	Name     string `json:"name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler serves login, first-admin registration and the view list.
type AuthHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(s *store.Store, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{store: s, logger: logger}
}

// Status tells the client whether the first administrator still has to be created.
func (h *AuthHandler) Status(c *gin.Context) {
	resp := gin.H{"hasUsers": h.store.HasUsers()}
	if user, ok := h.store.CurrentUser(); ok {
		resp["currentUser"] = gin.H{"name": user.Name, "role": user.Role}
	}
	c.JSON(http.StatusOK, resp)
}

// Login checks credentials and records the current user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, err := h.store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("login rejected", zap.String("username", req.Username))
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "views": permission.VisibleViews(user)})
}

// RegisterAdmin creates the first administrator.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	user, err := h.store.RegisterAdmin(c.Request.Context(), req.Name, req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("administrator registered", zap.String("username", user.Username))
	c.JSON(http.StatusCreated, user)
}

// Logout clears the current user.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Views lists the tabs the caller may open.
func (h *AuthHandler) Views(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user, "views": permission.VisibleViews(user)})
}
