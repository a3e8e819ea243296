package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plateful/internal/middleware"
	"plateful/internal/pagination"
	"plateful/internal/service"
	"plateful/internal/types"
)

// RecipeHandler exposes recipe CRUD, the favorite/cart toggles and the
// shopping-list download.
type RecipeHandler struct {
	authService     *service.AuthService
	recipeService   *service.RecipeService
	relationService *service.RelationService
	shoppingService *service.ShoppingListService
	rateLimiter     *middleware.RateLimiter
}

func NewRecipeHandler(
	authService *service.AuthService,
	recipeService *service.RecipeService,
	relationService *service.RelationService,
	shoppingService *service.ShoppingListService,
	rateLimiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		authService:     authService,
		recipeService:   recipeService,
		relationService: relationService,
		shoppingService: shoppingService,
		rateLimiter:     rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.authService), h.List)
		recipes.POST("", middleware.Auth(h.authService), h.rateLimiter.Middleware(), h.Create)
		recipes.GET("/download_shopping_cart", middleware.Auth(h.authService), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuth(h.authService), h.Get)
		recipes.PUT("/:id", middleware.Auth(h.authService), h.Update)
		// Partial update is not supported: the API only replaces
		// recipes wholesale.
		recipes.PATCH("/:id", h.MethodNotAllowed)
		recipes.DELETE("/:id", middleware.Auth(h.authService), h.Delete)
		recipes.POST("/:id/favorite", middleware.Auth(h.authService), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.Auth(h.authService), h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.Auth(h.authService), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.Auth(h.authService), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	params := pagination.FromQuery(c)
	filter := service.RecipeFilter{
		TagSlugs:  c.QueryArray("tags"),
		Favorited: c.Query("is_favorited") == "1",
		InCart:    c.Query("is_in_shopping_cart") == "1",
		Offset:    params.Offset(),
		Limit:     params.Limit,
	}
	if raw := c.Query("author"); raw != "" {
		if id, err := parseUint(raw); err == nil {
			filter.AuthorID = id
		}
	}

	recipes, total, err := h.recipeService.List(middleware.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(c.Request, params, total, recipes))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipeService.Get(id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	recipe, err := h.recipeService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	recipe, err := h.recipeService.Update(c.Request.Context(), id, middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "method PATCH is not allowed, use PUT"})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipeService.Delete(id, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.relationService.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.relationService.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.relationService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.relationService.RemoveFromCart)
}

func (h *RecipeHandler) addRelation(c *gin.Context, add func(userID, recipeID uint) (*types.RecipeShortResponse, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := add(middleware.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(userID, recipeID uint) error) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := remove(middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	list, err := h.shoppingService.Build(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(list))
}
