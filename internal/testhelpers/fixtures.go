package testhelpers

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"plateful/internal/models"
)

// FakeImageStore records uploads and returns deterministic URLs.
type FakeImageStore struct {
	Uploads int
}

func (f *FakeImageStore) Upload(_ context.Context, _ []byte, contentType string) (string, error) {
	f.Uploads++
	return fmt.Sprintf("https://media.test/img-%d (%s)", f.Uploads, contentType), nil
}

// PNGDataURI is a minimal valid base64 image payload for requests.
const PNGDataURI = "data:image/png;base64,aGVsbG8="

func CreateUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateTag(t *testing.T, db *gorm.DB, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return ing
}

// CreateRecipe inserts a recipe with one tag and one ingredient link.
func CreateRecipe(t *testing.T, db *gorm.DB, authorID uint, name string, tag *models.Tag, ing *models.Ingredient, amount int) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:        name,
		Text:        "Cook it.",
		CookingTime: 10,
		ImageURL:    "https://media.test/seed.png",
		AuthorID:    authorID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if tag != nil {
		if err := db.Model(recipe).Association("Tags").Append(tag); err != nil {
			t.Fatalf("attach tag: %v", err)
		}
	}
	if ing != nil {
		link := &models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: ing.ID, Amount: amount}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("attach ingredient: %v", err)
		}
	}
	return recipe
}
