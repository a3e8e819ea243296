package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateful/internal/service"
	"plateful/internal/testhelpers"
)

func TestShoppingListAggregatesByNameAndUnit(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingListService(db)
	relations := service.NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	salt := testhelpers.CreateIngredient(t, db, "Salt", "g")
	pepper := testhelpers.CreateIngredient(t, db, "Pepper", "g")

	soup := testhelpers.CreateRecipe(t, db, user.ID, "Soup", tag, salt, 5)
	stew := testhelpers.CreateRecipe(t, db, user.ID, "Stew", tag, salt, 10)
	roast := testhelpers.CreateRecipe(t, db, user.ID, "Roast", tag, pepper, 2)

	for _, id := range []uint{soup.ID, stew.ID, roast.ID} {
		_, err := relations.AddToCart(user.ID, id)
		require.NoError(t, err)
	}

	list, err := svc.Build(user.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(list, "Список покупок:\n"))
	// Salt appears once with the summed amount.
	assert.Contains(t, list, "Salt - 15 g\n")
	assert.Contains(t, list, "Pepper - 2 g\n")
	assert.Equal(t, 1, strings.Count(list, "Salt"))
}

func TestShoppingListCollapsesDuplicateCatalogEntries(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingListService(db)
	relations := service.NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	// Two catalog rows sharing name and unit.
	saltA := testhelpers.CreateIngredient(t, db, "Salt", "g")
	saltB := testhelpers.CreateIngredient(t, db, "Salt", "g")

	soup := testhelpers.CreateRecipe(t, db, user.ID, "Soup", tag, saltA, 5)
	stew := testhelpers.CreateRecipe(t, db, user.ID, "Stew", tag, saltB, 7)
	for _, id := range []uint{soup.ID, stew.ID} {
		_, err := relations.AddToCart(user.ID, id)
		require.NoError(t, err)
	}

	list, err := svc.Build(user.ID)
	require.NoError(t, err)
	assert.Contains(t, list, "Salt - 12 g\n")
	assert.Equal(t, 1, strings.Count(list, "Salt"))
}

func TestShoppingListEmptyCart(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingListService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")

	list, err := svc.Build(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Список покупок:\n", list)
}

func TestShoppingListOnlyCountsOwnCart(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingListService(db)
	relations := service.NewRelationService(db)
	alice := testhelpers.CreateUser(t, db, "alice@example.com", "alice")
	bob := testhelpers.CreateUser(t, db, "bob@example.com", "bob")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	salt := testhelpers.CreateIngredient(t, db, "Salt", "g")

	soup := testhelpers.CreateRecipe(t, db, alice.ID, "Soup", tag, salt, 5)
	_, err := relations.AddToCart(bob.ID, soup.ID)
	require.NoError(t, err)

	list, err := svc.Build(alice.ID)
	require.NoError(t, err)
	assert.NotContains(t, list, "Salt")
}
