package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateful/internal/service"
	"plateful/internal/testhelpers"
)

// Runs the toggle conflict path against real postgres to confirm the
// unique-index guard behaves the same as on sqlite. Skipped without
// docker.
func TestToggleConflictsOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	db := testhelpers.SetupPostgresDB(t)
	svc := service.NewRelationService(db)
	user := testhelpers.CreateUser(t, db, "user@example.com", "user")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	ing := testhelpers.CreateIngredient(t, db, "Salt", "g")
	recipe := testhelpers.CreateRecipe(t, db, user.ID, "Soup", tag, ing, 5)

	_, err := svc.AddFavorite(user.ID, recipe.ID)
	require.NoError(t, err)

	var conflict *service.ConflictError
	_, err = svc.AddFavorite(user.ID, recipe.ID)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "recipe is already in favorites", conflict.Detail)

	subs := service.NewSubscriptionService(db)
	other := testhelpers.CreateUser(t, db, "other@example.com", "other")
	_, err = subs.Subscribe(user.ID, other.ID, 0)
	require.NoError(t, err)
	_, err = subs.Subscribe(user.ID, other.ID, 0)
	require.ErrorAs(t, err, &conflict)
}
