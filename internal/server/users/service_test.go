package users

import (
	"context"
	"testing"
	"time"

	"github.com/dkolesnikov/taskvault/internal/common"
	"github.com/dkolesnikov/taskvault/internal/server/auth"
	"github.com/dkolesnikov/taskvault/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		BcryptCost:            4,
	}
	return NewService(NewInMemoryRepository(), cfg)
}

func TestRegister_TokenResolvesBackToUser(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, token, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := auth.GetUserIDFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	got, err := s.Get(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", got.Email)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "  ", "a@x.com", "secret1"},
		{"bad email", "Alice", "not-an-email", "secret1"},
		{"short password", "Alice", "a@x.com", "12345"},
		{"everything wrong", "", "nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Register(ctx, tt.userName, tt.email, tt.password)
			var verr *common.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
		})
	}
}

func TestRegister_DuplicateEmailNormalized(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	// differs only in case and surrounding whitespace
	_, _, err = s.Register(ctx, "Other Alice", "  ALICE@X.COM ", "secret2")
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestLogin_SymmetricFailure(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, _, errUnknown := s.Login(ctx, "nobody@x.com", "secret1")
	_, _, errWrongPw := s.Login(ctx, "alice@x.com", "wrong-password")

	// unknown email and wrong password must be indistinguishable
	assert.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, common.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogin_Success(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	registered, _, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	user, token, err := s.Login(ctx, "Alice@X.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	subject, err := auth.GetUserIDFromToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, registered.ID, subject)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, _, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	newName := "Alice Cooper"
	updated, err := s.UpdateProfile(ctx, user.ID, ProfileUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@x.com", updated.Email)

	// old password still works, nothing else changed
	_, _, err = s.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
}

func TestUpdateProfile_PasswordRehash(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, _, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	newPassword := "brand-new-password"
	_, err = s.UpdateProfile(ctx, user.ID, ProfileUpdate{Password: &newPassword})
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "alice@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, _, err = s.Login(ctx, "alice@x.com", newPassword)
	assert.NoError(t, err)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, _, err := s.Register(ctx, "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	bob, _, err := s.Register(ctx, "Bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	takenEmail := "alice@x.com"
	_, err = s.UpdateProfile(ctx, bob.ID, ProfileUpdate{Email: &takenEmail})
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestUpdateProfile_UserGone(t *testing.T) {
	s := newTestService()

	name := "Ghost"
	_, err := s.UpdateProfile(context.Background(), "no-such-id", ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
