package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plateful/internal/service"
	"plateful/internal/testhelpers"
	"plateful/internal/types"
)

func setupAuthTest(t *testing.T) *service.AuthService {
	db := testhelpers.SetupTestDB(t)
	return service.NewAuthService(db, "test-secret", time.Hour)
}

func registerRequest() *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Chef",
		LastName:  "Cook",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuthTest(t)

	user, token, err := svc.Register(registerRequest())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	// Password is stored hashed.
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	loginToken, err := svc.Login("cook@example.com", "password123")
	require.NoError(t, err)
	claims, err = svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicates(t *testing.T) {
	svc := setupAuthTest(t)
	_, _, err := svc.Register(registerRequest())
	require.NoError(t, err)

	var verr *service.ValidationError

	dup := registerRequest()
	dup.Username = "other"
	_, _, err = svc.Register(dup)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	dup = registerRequest()
	dup.Email = "other@example.com"
	_, _, err = svc.Register(dup)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestRegisterMapsUniqueIndexViolation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)

	// The colliding row was inserted outside Register, the way a
	// concurrent registration would land it. The duplicate-key error
	// from the insert must map to the same field-level failure, not
	// bubble up as an internal error.
	testhelpers.CreateUser(t, db, "cook@example.com", "cook")

	var verr *service.ValidationError

	_, _, err := svc.Register(registerRequest())
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	sameName := registerRequest()
	sameName.Email = "fresh@example.com"
	sameName.Username = "cook"
	_, _, err = svc.Register(sameName)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestLoginFailures(t *testing.T) {
	svc := setupAuthTest(t)
	_, _, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Login("cook@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := service.NewAuthService(testhelpers.SetupTestDB(t), "other-secret", time.Hour)
	user, token, err := other.Register(registerRequest())
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	// Signed with a different secret.
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
