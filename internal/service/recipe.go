package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plateful/internal/models"
	"plateful/internal/types"
)

// RecipeService owns recipe reads and the create/update/delete mutations.
// Writes replace the tag and ingredient link sets wholesale inside one
// transaction; there is no merge path.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// RecipeFilter narrows List results. Zero values disable each filter.
// Favorited and InCart are ignored for anonymous viewers.
type RecipeFilter struct {
	TagSlugs  []string
	AuthorID  uint
	Favorited bool
	InCart    bool
	Offset    int
	Limit     int
}

func (s *RecipeService) Create(ctx context.Context, authorID uint, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	verr := validateRecipeRequest(req, true)
	tags, ingredients, err := s.resolveLinks(req, verr)
	if err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	imageURL, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return nil, NewValidationError("image", err.Error())
	}

	recipe := models.Recipe{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    imageURL,
		AuthorID:    authorID,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return replaceRecipeLinks(tx, &recipe, tags, ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID, authorID)
}

func (s *RecipeService) Update(ctx context.Context, recipeID, actorID uint, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, ErrForbidden
	}

	verr := validateRecipeRequest(req, false)
	tags, ingredients, err := s.resolveLinks(req, verr)
	if err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	imageURL := recipe.ImageURL
	if req.Image != "" {
		url, err := s.storeImage(ctx, req.Image)
		if err != nil {
			return nil, NewValidationError("image", err.Error())
		}
		imageURL = url
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         req.Name,
			"text":         req.Text,
			"cooking_time": req.CookingTime,
			"image_url":    imageURL,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		return replaceRecipeLinks(tx, &recipe, tags, ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID, actorID)
}

func (s *RecipeService) Delete(recipeID, actorID uint) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != actorID {
		return ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		for _, m := range []interface{}{&models.Favorite{}, &models.ShoppingCart{}} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
}

func (s *RecipeService) Get(recipeID, viewerID uint) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp, err := recipeResponse(s.db, &recipe, viewerID)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Exists reports whether a recipe with the given ID is present.
func (s *RecipeService) Exists(recipeID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns recipes newest first, with the total count before paging.
func (s *RecipeService) List(viewerID uint, filter RecipeFilter) ([]types.RecipeResponse, int64, error) {
	query := s.db.Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		query = query.Where(
			"recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN ?)",
			filter.TagSlugs,
		)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Favorited && viewerID != 0 {
		query = query.Where("recipes.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", viewerID)
	}
	if filter.InCart && viewerID != 0 {
		query = query.Where("recipes.id IN (SELECT recipe_id FROM shopping_carts WHERE user_id = ?)", viewerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := query.
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp, err := recipeResponse(s.db, &recipes[i], viewerID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *RecipeService) storeImage(ctx context.Context, payload string) (string, error) {
	data, contentType, err := DecodeBase64Image(payload)
	if err != nil {
		return "", err
	}
	return s.images.Upload(ctx, data, contentType)
}

// validateRecipeRequest checks everything that does not need the
// database. A nil tag/ingredient slice means the key was absent from the
// payload, which gets its own message.
func validateRecipeRequest(req *types.RecipeRequest, creating bool) *ValidationError {
	verr := &ValidationError{}

	switch {
	case req.Tags == nil:
		verr.Add("tags", "this field is required")
	case len(req.Tags) == 0:
		verr.Add("tags", "at least one tag is required")
	default:
		seen := make(map[uint]bool, len(req.Tags))
		for _, id := range req.Tags {
			if seen[id] {
				verr.Add("tags", "tags must not repeat")
				break
			}
			seen[id] = true
		}
	}

	switch {
	case req.Ingredients == nil:
		verr.Add("ingredients", "this field is required")
	case len(req.Ingredients) == 0:
		verr.Add("ingredients", "at least one ingredient is required")
	default:
		seen := make(map[uint]bool, len(req.Ingredients))
		for _, entry := range req.Ingredients {
			if seen[entry.ID] {
				verr.Add("ingredients", "ingredients must not repeat")
			}
			seen[entry.ID] = true
			if entry.Amount < 1 {
				verr.Add("amount", "amount must be at least 1")
			}
		}
	}

	if req.CookingTime < 1 {
		verr.Add("cooking_time", "cooking time must be at least 1")
	}
	if creating && req.Image == "" {
		verr.Add("image", "an image is required")
	}
	return verr
}

// resolveLinks loads the referenced tags and ingredients, recording a
// validation failure when any referenced ID does not exist. A storage
// failure is returned as a plain error, never as a validation failure.
func (s *RecipeService) resolveLinks(req *types.RecipeRequest, verr *ValidationError) ([]models.Tag, []types.IngredientAmount, error) {
	var tags []models.Tag
	if _, tagged := verr.Fields["tags"]; !tagged && len(req.Tags) > 0 {
		if err := s.db.Where("id IN ?", req.Tags).Find(&tags).Error; err != nil {
			return nil, nil, err
		}
		if len(tags) != len(req.Tags) {
			verr.Add("tags", "tag does not exist")
		}
	}
	if _, bad := verr.Fields["ingredients"]; !bad && len(req.Ingredients) > 0 {
		ids := make([]uint, 0, len(req.Ingredients))
		for _, entry := range req.Ingredients {
			ids = append(ids, entry.ID)
		}
		var count int64
		if err := s.db.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return nil, nil, err
		}
		if count != int64(len(ids)) {
			verr.Add("ingredients", "ingredient does not exist")
		}
	}
	return tags, req.Ingredients, nil
}

// replaceRecipeLinks rewrites the recipe's tag and ingredient links:
// delete all, bulk insert the new set.
func replaceRecipeLinks(tx *gorm.DB, recipe *models.Recipe, tags []models.Tag, ingredients []types.IngredientAmount) error {
	if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	rows := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, entry := range ingredients {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		})
	}
	return tx.Create(&rows).Error
}
