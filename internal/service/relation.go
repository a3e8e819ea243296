package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"plateful/internal/models"
	"plateful/internal/types"
)

// RelationService implements the favorite and shopping-cart toggles.
// Both are intentionally idempotent-unsafe: a second ADD (or a REMOVE
// with no row) is a conflict, not a no-op. The composite unique indexes
// on the relation tables are the guard for concurrent ADDs.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

func (s *RelationService) AddFavorite(userID, recipeID uint) (*types.RecipeShortResponse, error) {
	return addRecipeRelation(s.db, "favorites",
		models.Favorite{UserID: userID, RecipeID: recipeID})
}

func (s *RelationService) RemoveFavorite(userID, recipeID uint) error {
	return removeRecipeRelation[models.Favorite](s.db, "favorites", userID, recipeID)
}

func (s *RelationService) AddToCart(userID, recipeID uint) (*types.RecipeShortResponse, error) {
	return addRecipeRelation(s.db, "the shopping cart",
		models.ShoppingCart{UserID: userID, RecipeID: recipeID})
}

func (s *RelationService) RemoveFromCart(userID, recipeID uint) error {
	return removeRecipeRelation[models.ShoppingCart](s.db, "the shopping cart", userID, recipeID)
}

type recipeLink interface {
	models.Favorite | models.ShoppingCart
}

// addRecipeRelation is the single ADD routine behind both toggles. link
// must carry the (user, recipe) pair; kind only feeds the error text.
func addRecipeRelation[T recipeLink](db *gorm.DB, kind string, link T) (*types.RecipeShortResponse, error) {
	recipeID := linkRecipeID(link)
	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Detail: fmt.Sprintf("recipe is already in %s", kind)}
		}
		return nil, err
	}

	resp := shortRecipeResponse(&recipe)
	return &resp, nil
}

func removeRecipeRelation[T recipeLink](db *gorm.DB, kind string, userID, recipeID uint) error {
	result := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &ConflictError{Detail: fmt.Sprintf("recipe is not in %s", kind)}
	}
	return nil
}

func linkRecipeID[T recipeLink](link T) uint {
	switch v := any(link).(type) {
	case models.Favorite:
		return v.RecipeID
	case models.ShoppingCart:
		return v.RecipeID
	}
	return 0
}
