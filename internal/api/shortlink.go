package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"plateful/internal/service"
	"plateful/internal/shortlink"
	"plateful/internal/types"
)

// ShortLinkHandler issues short links for recipes and resolves them
// back to the recipe page with a redirect.
type ShortLinkHandler struct {
	recipeService *service.RecipeService
	baseURL       string
}

func NewShortLinkHandler(recipeService *service.RecipeService, baseURL string) *ShortLinkHandler {
	return &ShortLinkHandler{recipeService: recipeService, baseURL: baseURL}
}

// RegisterRoutes wires the get-link endpoint under the API recipes group.
// The resolver itself lives at the root, see RegisterResolver.
func (h *ShortLinkHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/:id/get-link", h.GetLink)
}

// RegisterResolver mounts the public /s/:code redirect outside /api.
func (h *ShortLinkHandler) RegisterResolver(engine *gin.Engine) {
	engine.GET("/s/:code", h.Resolve)
}

func (h *ShortLinkHandler) GetLink(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	exists, err := h.recipeService.Exists(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	code := shortlink.Encode(uint64(id))
	c.JSON(http.StatusOK, types.ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s", h.baseURL, code),
	})
}

func (h *ShortLinkHandler) Resolve(c *gin.Context) {
	id, err := shortlink.Decode(c.Param("code"))
	if err != nil || id == 0 || id > 1<<31 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	exists, err := h.recipeService.Exists(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/recipes/%d", h.baseURL, id))
}
