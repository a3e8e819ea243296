package service

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"plateful/internal/models"
)

// ShoppingListService renders the aggregated shopping list for a user's
// cart. Read-only; the list is derived on every call.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

type shoppingListRow struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// Build sums ingredient amounts across every recipe in the user's cart.
// Grouping is by the (name, measurement unit) text pair, not the
// ingredient id: distinct catalog rows that share both fields collapse
// into a single line. Lines are ordered by name then unit so repeated
// calls over the same cart produce identical output.
func (s *ShoppingListService) Build(userID uint) (string, error) {
	var rows []shoppingListRow
	err := s.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&rows).Error
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Список покупок:\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s - %d %s\n", row.Name, row.Total, row.MeasurementUnit)
	}
	return b.String(), nil
}
