package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plateful/internal/middleware"
	"plateful/internal/pagination"
	"plateful/internal/service"
	"plateful/internal/types"
)

// UserHandler exposes account registration, user reads, avatar
// management and the subscription endpoints.
type UserHandler struct {
	authService         *service.AuthService
	userService         *service.UserService
	subscriptionService *service.SubscriptionService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService, subscriptionService *service.SubscriptionService) *UserHandler {
	return &UserHandler{
		authService:         authService,
		userService:         userService,
		subscriptionService: subscriptionService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("", middleware.OptionalAuth(h.authService), h.List)
		users.GET("/me", middleware.Auth(h.authService), h.Me)
		users.PUT("/me/avatar", middleware.Auth(h.authService), h.SetAvatar)
		users.DELETE("/me/avatar", middleware.Auth(h.authService), h.DeleteAvatar)
		users.GET("/subscriptions", middleware.Auth(h.authService), h.Subscriptions)
		users.GET("/:id", middleware.OptionalAuth(h.authService), h.Get)
		users.POST("/:id/subscribe", middleware.Auth(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.Auth(h.authService), h.Unsubscribe)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, token, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"auth_token": token,
	})
}

func (h *UserHandler) List(c *gin.Context) {
	params := pagination.FromQuery(c)
	users, total, err := h.userService.List(middleware.UserID(c), params.Offset(), params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(c.Request, params, total, users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.Get(id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Get(middleware.UserID(c), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req types.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	url, err := h.userService.SetAvatar(c.Request.Context(), middleware.UserID(c), req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.AvatarResponse{Avatar: url})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if err := h.userService.DeleteAvatar(middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	params := pagination.FromQuery(c)
	profiles, total, err := h.subscriptionService.ListSubscriptions(
		middleware.UserID(c), params.Offset(), params.Limit, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(c.Request, params, total, profiles))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := h.subscriptionService.Subscribe(middleware.UserID(c), id, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.subscriptionService.Unsubscribe(middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recipesLimit caps embedded recipe lists on subscription responses; 0
// means no cap.
func recipesLimit(c *gin.Context) int {
	if raw := c.Query("recipes_limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}
	return 0
}
