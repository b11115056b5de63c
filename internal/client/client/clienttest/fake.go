// Package clienttest provides an in-memory client.Client for tests of the
// session, pages and REPL packages.
package clienttest

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
)

// Fake mimics the API's observable behavior closely enough for client
// tests. Failures can be injected per method name through Fail.
type Fake struct {
	mu      sync.Mutex
	seq     int
	users   map[string]*fakeUser
	recipes []*models.Recipe
	fail    map[string]error
	calls   []string
}

type fakeUser struct {
	user     models.User
	password string
}

var _ client.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{users: make(map[string]*fakeUser), fail: make(map[string]error)}
}

// Fail makes every later call of method return err. A nil err clears it.
func (f *Fake) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, method)
		return
	}
	f.fail[method] = err
}

// Calls returns the method names invoked so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// APIErr builds the error the real client returns for a status and message.
func APIErr(status int, msg string) error {
	var sentinel error
	switch status {
	case http.StatusBadRequest:
		sentinel = client.ErrValidation
	case http.StatusUnauthorized:
		sentinel = client.ErrUnauthorized
	case http.StatusForbidden:
		sentinel = client.ErrForbidden
	case http.StatusNotFound:
		sentinel = client.ErrNotFound
	default:
		sentinel = client.ErrServer
	}
	return &client.APIError{Status: status, Message: msg, Err: sentinel}
}

// Token returns the bearer token the fake issues for userID.
func Token(userID string) string { return "token-" + userID }

func (f *Fake) enter(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
	return f.fail[method]
}

func (f *Fake) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *Fake) userByToken(token string) (*fakeUser, error) {
	u, ok := f.users[strings.TrimPrefix(token, "token-")]
	if !ok || !strings.HasPrefix(token, "token-") {
		return nil, APIErr(http.StatusUnauthorized, "Not authorized, token failed")
	}
	return u, nil
}

func (f *Fake) recipeIndex(id string) int {
	return slices.IndexFunc(f.recipes, func(r *models.Recipe) bool { return r.ID == id })
}

func cloneRecipe(r *models.Recipe) models.Recipe {
	c := *r
	c.Ingredients = slices.Clone(r.Ingredients)
	return c
}

func cloneUser(u models.User) *models.User {
	u.SavedRecipes = slices.Clone(u.SavedRecipes)
	return &u
}

// AddUser registers a user directly and returns its session.
func (f *Fake) AddUser(username, email, password string) *models.Session {
	s, err := f.Register(context.Background(), username, email, password)
	if err != nil {
		panic(err)
	}
	return s
}

// AddRecipe stores r as authored by userID and returns the stored copy.
func (f *Fake) AddRecipe(userID string, r models.Recipe) models.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = f.nextID("r")
	r.Author = userID
	r.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.recipes = append([]*models.Recipe{&r}, f.recipes...)
	return cloneRecipe(&r)
}

func (f *Fake) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	if err := f.enter("Register"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if username == "" || email == "" || password == "" {
		return nil, APIErr(http.StatusBadRequest, "Please fill in all fields")
	}
	for _, u := range f.users {
		if u.user.Email == email || u.user.Username == username {
			return nil, APIErr(http.StatusBadRequest, "User already exists")
		}
	}

	u := &fakeUser{
		user:     models.User{ID: f.nextID("u"), Username: username, Email: email, SavedRecipes: []string{}},
		password: password,
	}
	f.users[u.user.ID] = u
	return &models.Session{User: *cloneUser(u.user), Token: Token(u.user.ID)}, nil
}

func (f *Fake) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := f.enter("Login"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.user.Email == email && u.password == password {
			return &models.Session{User: *cloneUser(u.user), Token: Token(u.user.ID)}, nil
		}
	}
	return nil, APIErr(http.StatusUnauthorized, "Invalid email or password")
}

func (f *Fake) Logout(ctx context.Context, token string) error {
	if err := f.enter("Logout"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.userByToken(token)
	return err
}

func (f *Fake) Profile(ctx context.Context, token string) (*models.User, error) {
	if err := f.enter("Profile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, err := f.userByToken(token)
	if err != nil {
		return nil, err
	}
	return cloneUser(u.user), nil
}

func (f *Fake) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	if err := f.enter("ListRecipes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, cloneRecipe(r))
	}
	return out, nil
}

func (f *Fake) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	if err := f.enter("GetRecipe"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.recipeIndex(id)
	if i < 0 {
		return nil, APIErr(http.StatusNotFound, "Recipe not found")
	}
	r := cloneRecipe(f.recipes[i])
	r.AuthorName = "Unknown Chef"
	if u, ok := f.users[r.Author]; ok {
		r.AuthorName = u.user.Username
	}
	return &r, nil
}

func (f *Fake) CreateRecipe(ctx context.Context, token string, in models.RecipeInput) (*models.Recipe, error) {
	if err := f.enter("CreateRecipe"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	u, err := f.userByToken(token)
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if in.Title == "" || len(in.Ingredients) == 0 || in.Instructions == "" {
		return nil, APIErr(http.StatusBadRequest, "Title, ingredients and instructions are required")
	}

	r := models.Recipe{
		Title:        in.Title,
		Ingredients:  slices.Clone(in.Ingredients),
		Instructions: in.Instructions,
		ImageURL:     in.ImageURL,
		Difficulty:   in.Difficulty,
		CookingTime:  in.CookingTime,
	}
	if r.Difficulty == "" {
		r.Difficulty = models.DifficultyMedium
	}
	if r.CookingTime == "" {
		r.CookingTime = "45"
	}
	stored := f.AddRecipe(u.user.ID, r)
	return &stored, nil
}

func (f *Fake) UpdateRecipe(ctx context.Context, token, id string, in models.RecipeInput) (*models.Recipe, error) {
	if err := f.enter("UpdateRecipe"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, err := f.userByToken(token)
	if err != nil {
		return nil, err
	}
	i := f.recipeIndex(id)
	if i < 0 {
		return nil, APIErr(http.StatusNotFound, "Recipe not found")
	}
	r := f.recipes[i]
	if r.Author != u.user.ID {
		return nil, APIErr(http.StatusForbidden, "User not authorized to update this recipe")
	}

	if in.Title != "" {
		r.Title = in.Title
	}
	if len(in.Ingredients) > 0 {
		r.Ingredients = slices.Clone(in.Ingredients)
	}
	if in.Instructions != "" {
		r.Instructions = in.Instructions
	}
	if in.ImageURL != "" {
		r.ImageURL = in.ImageURL
	}
	if in.Difficulty != "" {
		r.Difficulty = in.Difficulty
	}
	if in.CookingTime != "" {
		r.CookingTime = in.CookingTime
	}
	out := cloneRecipe(r)
	return &out, nil
}

func (f *Fake) DeleteRecipe(ctx context.Context, token, id string) error {
	if err := f.enter("DeleteRecipe"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, err := f.userByToken(token)
	if err != nil {
		return err
	}
	i := f.recipeIndex(id)
	if i < 0 {
		return APIErr(http.StatusNotFound, "Recipe not found")
	}
	if f.recipes[i].Author != u.user.ID {
		return APIErr(http.StatusForbidden, "User not authorized to delete this recipe")
	}

	for _, other := range f.users {
		other.user.SavedRecipes = slices.DeleteFunc(other.user.SavedRecipes, func(s string) bool { return s == id })
	}
	f.recipes = slices.Delete(f.recipes, i, i+1)
	return nil
}

func (f *Fake) SaveRecipe(ctx context.Context, token, id string) error {
	if err := f.enter("SaveRecipe"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, err := f.userByToken(token)
	if err != nil {
		return err
	}
	if f.recipeIndex(id) < 0 {
		return APIErr(http.StatusNotFound, "Recipe not found")
	}
	if slices.Contains(u.user.SavedRecipes, id) {
		return &client.APIError{Status: http.StatusBadRequest, Message: "Recipe already saved", Err: client.ErrConflict}
	}
	u.user.SavedRecipes = append(u.user.SavedRecipes, id)
	return nil
}

func (f *Fake) UnsaveRecipe(ctx context.Context, token, id string) error {
	if err := f.enter("UnsaveRecipe"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, err := f.userByToken(token)
	if err != nil {
		return err
	}
	u.user.SavedRecipes = slices.DeleteFunc(u.user.SavedRecipes, func(s string) bool { return s == id })
	return nil
}

func (f *Fake) SavedRecipes(ctx context.Context, token, userID string) ([]models.Recipe, error) {
	if err := f.enter("SavedRecipes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	u, err := f.userByToken(token)
	if err != nil {
		return nil, err
	}
	if u.user.ID != userID {
		return nil, APIErr(http.StatusForbidden, "Not authorized to view these saved recipes")
	}

	out := make([]models.Recipe, 0, len(u.user.SavedRecipes))
	for _, id := range u.user.SavedRecipes {
		if i := f.recipeIndex(id); i >= 0 {
			out = append(out, cloneRecipe(f.recipes[i]))
		}
	}
	return out, nil
}
