package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/common"
	"github.com/dmitrijs2005/culinaryshare/internal/server/auth"
	"github.com/dmitrijs2005/culinaryshare/internal/server/config"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	us, _, _ := newServices(t)

	reg, err := us.Register(ctx, " alice ", "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", reg.User.Username)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, []string{}, reg.User.SavedRecipes)

	id, err := auth.GetUserIDFromToken(reg.Token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, id)

	login, err := us.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterThenLogin_LongPassphrase(t *testing.T) {
	ctx := context.Background()
	us, _, _ := newServices(t)

	pass := strings.Repeat("a long kitchen passphrase ", 3) + "salt&pepper"
	require.Greater(t, len(pass), 72)

	reg, err := us.Register(ctx, "chef", "chef@example.com", pass)
	require.NoError(t, err)

	login, err := us.Login(ctx, "chef@example.com", pass)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = us.Login(ctx, "chef@example.com", pass[:72])
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	us, _, _ := newServices(t)

	_, err := us.Register(ctx, "  ", "a@x", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = us.Register(ctx, "a", "", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = us.Register(ctx, "a", "a@x", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRegister_Taken(t *testing.T) {
	ctx := context.Background()
	us, _, _ := newServices(t)

	_, err := us.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = us.Register(ctx, "alice2", "alice@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.EqualError(t, err, "User already exists")

	_, err = us.Register(ctx, "alice", "other@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	us, _, _ := newServices(t)

	_, err := us.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = us.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = us.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = us.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	us, _, _ := newServices(t)

	reg, err := us.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	u, err := us.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, u.ID)

	_, err = us.Authenticate(ctx, "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = us.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	expired, err := auth.GenerateToken(reg.User.ID, []byte("k"), -time.Minute)
	require.NoError(t, err)
	_, err = us.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	foreign, err := auth.GenerateToken(reg.User.ID, []byte("other"), time.Hour)
	require.NoError(t, err)
	_, err = us.Authenticate(ctx, foreign)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	ghost, err := auth.GenerateToken("ghost", []byte("k"), time.Hour)
	require.NoError(t, err)
	_, err = us.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestGetProfile_IncludesSavedIDs(t *testing.T) {
	ctx := context.Background()
	us, rs, _ := newServices(t)

	reg, err := us.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	r, err := rs.Create(ctx, reg.User.ID, models.RecipeInput{Title: "Soup", Ingredients: []string{"water"}, Instructions: "boil"})
	require.NoError(t, err)
	require.NoError(t, rs.Save(ctx, reg.User.ID, r.ID))

	p, err := us.GetProfile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, p.SavedRecipes)

	_, err = us.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

// --- store failures ---

type failingUsersRepo struct {
	users.Repository
	err error
}

func (f *failingUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func (f *failingUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	return nil, f.err
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	users   users.Repository
	recipes recipes.Repository
}

func (m *fakeRepoManager) Users() users.Repository     { return m.users }
func (m *fakeRepoManager) Recipes() recipes.Repository { return m.recipes }

func TestUserService_StoreFailuresAreNotUserErrors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("db down")
	rm := &fakeRepoManager{users: &failingUsersRepo{err: dbErr}}
	us := NewUserService(rm, &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour})

	_, err := us.Login(ctx, "a@x", "pw")
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)

	_, err = us.Register(ctx, "a", "a@x", "pw")
	assert.ErrorIs(t, err, dbErr)

	tok, err := auth.GenerateToken("u1", []byte("k"), time.Hour)
	require.NoError(t, err)
	_, err = us.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}
