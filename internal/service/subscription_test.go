package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateful/internal/service"
	"plateful/internal/testhelpers"
)

func TestSubscribe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewSubscriptionService(db)
	follower := testhelpers.CreateUser(t, db, "follower@example.com", "follower")
	author := testhelpers.CreateUser(t, db, "author@example.com", "author")
	tag := testhelpers.CreateTag(t, db, "Dinner", "dinner")
	ing := testhelpers.CreateIngredient(t, db, "Salt", "g")
	for i := 0; i < 3; i++ {
		testhelpers.CreateRecipe(t, db, author.ID, "Recipe", tag, ing, 1)
	}

	profile, err := svc.Subscribe(follower.ID, author.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, profile.ID)
	assert.True(t, profile.IsSubscribed)
	assert.EqualValues(t, 3, profile.RecipesCount)
	assert.Len(t, profile.Recipes, 3)

	// recipes_limit caps the embedded recipes, not the count.
	subs, total, err := svc.ListSubscriptions(follower.ID, 0, 10, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Recipes, 2)
	assert.EqualValues(t, 3, subs[0].RecipesCount)
}

func TestSubscribeConflicts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewSubscriptionService(db)
	follower := testhelpers.CreateUser(t, db, "follower@example.com", "follower")
	author := testhelpers.CreateUser(t, db, "author@example.com", "author")

	_, err := svc.Subscribe(follower.ID, follower.ID, 0)
	assert.ErrorIs(t, err, service.ErrSelfSubscribe)

	_, err = svc.Subscribe(follower.ID, 9999, 0)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Subscribe(follower.ID, author.ID, 0)
	require.NoError(t, err)

	var conflict *service.ConflictError
	_, err = svc.Subscribe(follower.ID, author.ID, 0)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "you are already subscribed to this author", conflict.Detail)
}

func TestUnsubscribe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewSubscriptionService(db)
	follower := testhelpers.CreateUser(t, db, "follower@example.com", "follower")
	author := testhelpers.CreateUser(t, db, "author@example.com", "author")

	err := svc.Unsubscribe(follower.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var conflict *service.ConflictError
	err = svc.Unsubscribe(follower.ID, author.ID)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "you are not subscribed to this author", conflict.Detail)

	_, err = svc.Subscribe(follower.ID, author.ID, 0)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(follower.ID, author.ID))

	_, total, err := svc.ListSubscriptions(follower.ID, 0, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
