package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateful/internal/service"
	"plateful/internal/testhelpers"
)

func TestFavoriteToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	ing := testhelpers.CreateIngredient(t, db, "Salt", "g")
	recipe := testhelpers.CreateRecipe(t, db, user.ID, "Soup", tag, ing, 5)

	summary, err := svc.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, summary.ID)
	assert.Equal(t, "Soup", summary.Name)

	// Adding twice is a conflict, not a no-op.
	_, err = svc.AddFavorite(user.ID, recipe.ID)
	var conflict *service.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "recipe is already in favorites", conflict.Detail)

	require.NoError(t, svc.RemoveFavorite(user.ID, recipe.ID))

	// Removing what is not there is also a conflict.
	err = svc.RemoveFavorite(user.ID, recipe.ID)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "recipe is not in favorites", conflict.Detail)
}

func TestShoppingCartToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	ing := testhelpers.CreateIngredient(t, db, "Salt", "g")
	recipe := testhelpers.CreateRecipe(t, db, user.ID, "Soup", tag, ing, 5)

	_, err := svc.AddToCart(user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.AddToCart(user.ID, recipe.ID)
	var conflict *service.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "recipe is already in the shopping cart", conflict.Detail)

	require.NoError(t, svc.RemoveFromCart(user.ID, recipe.ID))
	err = svc.RemoveFromCart(user.ID, recipe.ID)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "recipe is not in the shopping cart", conflict.Detail)
}

func TestToggleUnknownRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")

	_, err := svc.AddFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.AddToCart(user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTogglesAreIndependentPerUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewRelationService(db)
	alice := testhelpers.CreateUser(t, db, "alice@example.com", "alice")
	bob := testhelpers.CreateUser(t, db, "bob@example.com", "bob")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	ing := testhelpers.CreateIngredient(t, db, "Salt", "g")
	recipe := testhelpers.CreateRecipe(t, db, alice.ID, "Soup", tag, ing, 5)

	_, err := svc.AddFavorite(alice.ID, recipe.ID)
	require.NoError(t, err)
	_, err = svc.AddFavorite(bob.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(alice.ID, recipe.ID))

	// Bob's favorite survives Alice's removal.
	var conflict *service.ConflictError
	_, err = svc.AddFavorite(bob.ID, recipe.ID)
	require.ErrorAs(t, err, &conflict)
}
