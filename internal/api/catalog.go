package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"plateful/internal/models"
	"plateful/internal/types"
)

// CatalogHandler serves the read-only tag and ingredient catalogs.
// Both are unpaginated: the frontend loads them once.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
}

func (h *CatalogHandler) ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.db.Order("name").Find(&tags).Error; err != nil {
		respondError(c, err)
		return
	}
	result := make([]types.TagResponse, 0, len(tags))
	for _, t := range tags {
		result = append(result, types.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var tag models.Tag
	if err := h.db.First(&tag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	c.JSON(http.StatusOK, types.TagResponse{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
}

// ListIngredients supports a case-insensitive name prefix filter.
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	query := h.db.Order("name")
	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(name)+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		respondError(c, err)
		return
	}
	result := make([]types.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		result = append(result, types.IngredientResponse{
			ID:              ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var ing models.Ingredient
	if err := h.db.First(&ing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}
	c.JSON(http.StatusOK, types.IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		MeasurementUnit: ing.MeasurementUnit,
	})
}
