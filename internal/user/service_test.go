package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdesk/phoneroom-booking-backend/internal/auth"
	"github.com/quietdesk/phoneroom-booking-backend/internal/user"
)

func newTestService() user.Service {
	// Low bcrypt cost keeps tests fast.
	return user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, err := svc.Register(ctx, "Alice@Example.com", "password123", " Alice ")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Alice", *u.DisplayName, "display name is trimmed")
	assert.NotEqual(t, "password123", u.PasswordHash)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "password123", "")
		assert.ErrorIs(t, err, user.ErrEmailAlreadyUsed)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "short", "")
		assert.Error(t, err)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ", "password123", "")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
