package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing at", "ax.com", "secret1"},
		{"missing domain dot", "a@x", "secret1"},
		{"whitespace inside", "a b@x.com", "secret1"},
		{"empty", "", "secret1"},
		{"short password", "a@x.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.identity.SignUp(context.Background(), "Ann", tt.email, []byte(tt.password))
			require.ErrorIs(t, err, common.ErrValidation)
			assert.False(t, env.identity.IsLoggedIn())

			var users []models.User
			assert.False(t, env.storedJSON(t, KeyUsers, &users), "users must stay untouched")
			assert.Empty(t, env.published)
		})
	}
}

func TestSignUp_DuplicateEmailRejected(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "a@x.com")

	_, err := env.identity.SignUp(context.Background(), "Other", "  A@X.com ", []byte("another1"))
	require.ErrorIs(t, err, common.ErrConflict)

	var users []models.User
	require.True(t, env.storedJSON(t, KeyUsers, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)
}

func TestSignUp_StoresHashAndLogsIn(t *testing.T) {
	env := newTestEnv(t)

	u := env.signUp(t, " Ann ", " A@X.com")
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Empty(t, u.PasswordHash, "returned user is the public copy")

	cur, ok := env.identity.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)
	assert.Equal(t, []string{"userLoggedIn"}, env.published)

	var users []models.User
	require.True(t, env.storedJSON(t, KeyUsers, &users))
	require.Len(t, users, 1)
	assert.True(t, strings.HasPrefix(users[0].PasswordHash, "argon2id$"))
	assert.NotContains(t, users[0].PasswordHash, "secret1")

	var sess models.Session
	require.True(t, env.storedJSON(t, KeyCurrentUser, &sess))
	assert.Equal(t, u.ID, sess.User.ID)
	assert.Empty(t, sess.User.PasswordHash)
	assert.NotEmpty(t, sess.Token)
}

func TestSignUp_StorageFailureLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	// Create the session secret before writes start failing.
	env.signUp(t, "Ann", "a@x.com")
	require.NoError(t, env.identity.LogOut(context.Background()))
	env.published = nil

	env.repo.failWrites = true
	_, err := env.identity.SignUp(context.Background(), "Bob", "b@x.com", []byte("secret1"))
	require.ErrorIs(t, err, errDiskFull)
	assert.False(t, env.identity.IsLoggedIn())
	assert.Empty(t, env.published)

	var users []models.User
	require.True(t, env.storedJSON(t, KeyUsers, &users))
	assert.Len(t, users, 1)
}

func TestSignUpLogOutLogIn_RoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	signed := env.signUp(t, "Ann", "a@x.com")

	require.NoError(t, env.identity.LogOut(ctx))
	assert.False(t, env.identity.IsLoggedIn())

	var sess models.Session
	assert.False(t, env.storedJSON(t, KeyCurrentUser, &sess), "session pointer removed")

	u, err := env.identity.LogIn(ctx, "A@x.com ", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, signed.ID, u.ID)
	assert.True(t, env.identity.IsLoggedIn())
	assert.Equal(t, []string{"userLoggedIn", "userLoggedOut", "userLoggedIn"}, env.published)
}

func TestLogIn_GenericFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.signUp(t, "Ann", "a@x.com")
	require.NoError(t, env.identity.LogOut(ctx))
	env.published = nil

	_, err := env.identity.LogIn(ctx, "a@x.com", []byte("wrong-password"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err2 := env.identity.LogIn(ctx, "nobody@x.com", []byte("secret1"))
	require.ErrorIs(t, err2, common.ErrInvalidCredentials)

	assert.Equal(t, err.Error(), err2.Error(), "unknown email and wrong password look the same")
	assert.False(t, env.identity.IsLoggedIn())
	assert.Empty(t, env.published)
}

func TestLogOut_WithoutSessionIsNoop(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.identity.LogOut(context.Background()))
	assert.Empty(t, env.published)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session survives restart", func(t *testing.T) {
		repo := kv.NewMemoryRepository()
		first := newTestEnvWithRepo(t, repo, time.Hour)
		u := first.signUp(t, "Ann", "a@x.com")

		second := newTestEnvWithRepo(t, repo, time.Hour)
		require.NoError(t, second.identity.Restore(ctx))

		cur, ok := second.identity.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, u.ID, cur.ID)
		assert.Equal(t, []string{"userLoggedIn"}, second.published)
	})

	t.Run("no session", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.identity.Restore(ctx))
		assert.False(t, env.identity.IsLoggedIn())
		assert.Empty(t, env.published)
	})

	t.Run("expired token discarded", func(t *testing.T) {
		repo := kv.NewMemoryRepository()
		first := newTestEnvWithRepo(t, repo, -time.Minute)
		first.signUp(t, "Ann", "a@x.com")

		second := newTestEnvWithRepo(t, repo, time.Hour)
		require.NoError(t, second.identity.Restore(ctx))
		assert.False(t, second.identity.IsLoggedIn())

		v, err := repo.Get(ctx, KeyCurrentUser)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("edited user id discarded", func(t *testing.T) {
		repo := kv.NewMemoryRepository()
		first := newTestEnvWithRepo(t, repo, time.Hour)
		first.signUp(t, "Ann", "a@x.com")

		var sess models.Session
		require.True(t, first.storedJSON(t, KeyCurrentUser, &sess))
		sess.User.ID = "someone-else"
		require.NoError(t, saveJSON(ctx, repo, KeyCurrentUser, sess))

		second := newTestEnvWithRepo(t, repo, time.Hour)
		require.NoError(t, second.identity.Restore(ctx))
		assert.False(t, second.identity.IsLoggedIn())
	})

	t.Run("unreadable session discarded", func(t *testing.T) {
		repo := kv.NewMemoryRepository()
		require.NoError(t, repo.Set(ctx, KeyCurrentUser, []byte("{not json")))

		env := newTestEnvWithRepo(t, repo, time.Hour)
		require.NoError(t, env.identity.Restore(ctx))
		assert.False(t, env.identity.IsLoggedIn())

		v, err := repo.Get(ctx, KeyCurrentUser)
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestSessionSecret_PersistedOnce(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "a@x.com")

	var s1 []byte
	require.True(t, env.storedJSON(t, KeySessionSecret, &s1), "secret is stored as JSON text")
	require.Len(t, s1, sessionSecretSize)

	env.signUp(t, "Bob", "b@x.com")
	var s2 []byte
	require.True(t, env.storedJSON(t, KeySessionSecret, &s2))
	assert.Equal(t, s1, s2)
}

func TestSessionSecret_UnreadableValueIsReplaced(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, KeySessionSecret, []byte{0xff, 0x00, 0x13}))

	env := newTestEnvWithRepo(t, repo, time.Hour)
	env.signUp(t, "Ann", "a@x.com")

	var secret []byte
	require.True(t, env.storedJSON(t, KeySessionSecret, &secret))
	assert.Len(t, secret, sessionSecretSize)

	restarted := newTestEnvWithRepo(t, repo, time.Hour)
	require.NoError(t, restarted.identity.Restore(ctx))
	assert.True(t, restarted.identity.IsLoggedIn())
}

func TestClearLocalData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.signUp(t, "Ann", "a@x.com")
	_, err := env.cart.AddItem(ctx, runner)
	require.NoError(t, err)
	_, err = env.wishlist.AddItem(ctx, loafer)
	require.NoError(t, err)

	n, err := env.identity.ClearLocalData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "users and session secret plus cart and wishlist; the session pointer went with logout")

	assert.False(t, env.identity.IsLoggedIn())
	assert.Empty(t, env.cart.Lines())
	assert.Zero(t, env.wishlist.Count())

	left, err := env.repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = env.identity.LogIn(ctx, "a@x.com", []byte("secret1"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	again := env.signUp(t, "Ann", "a@x.com")
	assert.NotEqual(t, u.ID, again.ID)
}

func TestClearLocalData_StorageFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.signUp(t, "Ann", "a@x.com")

	env.repo.failWrites = true
	_, err := env.identity.ClearLocalData(ctx)
	assert.ErrorIs(t, err, errDiskFull)
}
