package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/client/pages"
	"github.com/dmitrijs2005/culinaryshare/internal/common"
)

var errNoRecipe = errors.New("no recipe given")

// resolve turns a list number from the last listing, or a raw id, into a
// recipe id.
func (a *App) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		printlnFn("Please give a recipe number from the last list or a recipe id")
		return "", errNoRecipe
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.last) {
			printlnFn("No recipe number", n, "in the last list")
			return "", errNoRecipe
		}
		return a.last[n-1].ID, nil
	}
	return ref, nil
}

func (a *App) requireLogin(action string) error {
	if a.isLoggedIn() {
		return nil
	}
	printlnFn("Please log in to " + action)
	return pages.ErrLoginRequired
}

func (a *App) Register(ctx context.Context) error {
	var (
		f   pages.RegisterForm
		err error
	)
	if f.Username, err = GetSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if f.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	f.Password = string(password)

	if err := f.Submit(ctx, a.deps.Session); err != nil {
		printlnFn(f.Err)
		return err
	}
	a.resetViews()
	printlnFn("Welcome,", a.deps.Session.User().Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	var (
		f   pages.LoginForm
		err error
	)
	if f.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	f.Password = string(password)

	if err := f.Submit(ctx, a.deps.Session); err != nil {
		printlnFn(f.Err)
		return err
	}
	a.resetViews()
	printlnFn("Welcome back,", a.deps.Session.User().Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.deps.Session.Logout(ctx)
	a.resetViews()
	printlnFn("Logged out")
	return nil
}

// resetViews drops cached page state. Home filters survive.
func (a *App) resetViews() {
	a.reloadHome()
	a.saved = nil
	a.view = viewNone
	a.last = nil
}

// reloadHome replaces the home page so the next command fetches again.
func (a *App) reloadHome() {
	term, difficulty := a.home.Filters()
	a.home = pages.NewHome(a.deps)
	a.home.SetSearch(term)
	_ = a.home.SetDifficulty(difficulty)
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.deps.Session.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	if err := a.deps.Session.Refresh(ctx); err == nil {
		u = a.deps.Session.User()
	}
	printlnFn(fmt.Sprintf("%s <%s>, %d saved recipes", u.Username, u.Email, len(u.SavedRecipes)))
	return nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.home.Load(ctx); err != nil {
		_, msg := a.home.Status()
		printlnFn(msg)
		return err
	}
	a.printHome()
	return nil
}

// ensureHome loads the home list once.
func (a *App) ensureHome(ctx context.Context) error {
	if status, _ := a.home.Status(); status == pages.StatusReady {
		return nil
	}
	if err := a.home.Load(ctx); err != nil {
		_, msg := a.home.Status()
		printlnFn(msg)
		return err
	}
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	if err := a.ensureHome(ctx); err != nil {
		return err
	}
	a.home.SetSearch(term)
	a.printHome()
	return nil
}

func (a *App) Filter(ctx context.Context, difficulty string) error {
	if difficulty == "" {
		difficulty = models.DifficultyAll
	}
	if err := a.home.SetDifficulty(normalizeDifficulty(difficulty)); err != nil {
		printlnFn("Difficulty must be one of All, Easy, Medium, Hard")
		return err
	}
	if err := a.ensureHome(ctx); err != nil {
		return err
	}
	a.printHome()
	return nil
}

func normalizeDifficulty(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a *App) ClearFilters(ctx context.Context) error {
	a.home.ClearFilters()
	if err := a.ensureHome(ctx); err != nil {
		return err
	}
	a.printHome()
	return nil
}

func (a *App) printHome() {
	visible := a.home.Visible()
	a.view = viewHome
	a.last = visible

	if len(visible) == 0 {
		printlnFn("No recipes found matching your criteria.")
		if a.home.HasFilters() {
			printlnFn("Type 'clear' to clear filters.")
		}
		return
	}
	for i, r := range visible {
		printlnFn(recipeLine(i+1, r, a.home.IsSaved(r.ID)))
	}
}

func recipeLine(n int, r models.Recipe, saved bool) string {
	line := fmt.Sprintf("%2d. %s (%s, %s min)", n, r.Title, r.Difficulty, r.CookingTime)
	if saved {
		line += " [saved]"
	}
	return line
}

func (a *App) Show(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}

	d := pages.NewDetail(a.deps, id)
	if err := d.Load(ctx); err != nil {
		_, msg := d.Status()
		printlnFn(msg)
		return err
	}

	r := d.Recipe()
	printlnFn(r.Title)
	printlnFn("Chef", r.AuthorName)
	printlnFn(fmt.Sprintf("Difficulty: %s  Cooking time: %s min", r.Difficulty, r.CookingTime))
	printlnFn("Image:", r.ImageURL)
	printlnFn("Ingredients:")
	for _, ing := range r.Ingredients {
		printlnFn("  -", ing)
	}
	printlnFn("Instructions:")
	printlnFn(r.Instructions)
	if d.Saved() {
		printlnFn("[saved]")
	}
	if d.IsAuthor() {
		printlnFn("You are the author: 'edit' or 'delete' it.")
	}
	return nil
}

// Save and Unsave go through the page the recipe was listed on, so the
// listing stays in sync; otherwise through the detail page.
func (a *App) Save(ctx context.Context, ref string) error {
	return a.setSaved(ctx, ref, true)
}

func (a *App) Unsave(ctx context.Context, ref string) error {
	return a.setSaved(ctx, ref, false)
}

func (a *App) setSaved(ctx context.Context, ref string, want bool) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.requireLogin("save recipes"); err != nil {
		return err
	}

	if !want && a.view == viewSaved && a.saved != nil {
		if err := a.saved.Unsave(ctx, id); err != nil {
			return err
		}
		a.last = a.saved.Recipes()
		a.reloadHome()
		return nil
	}

	if a.view == viewHome && a.inList(id) {
		if a.home.IsSaved(id) == want {
			printAlready(want)
			return nil
		}
		return a.home.ToggleSave(ctx, id)
	}

	d := pages.NewDetail(a.deps, id)
	if err := d.Load(ctx); err != nil {
		_, msg := d.Status()
		printlnFn(msg)
		return err
	}
	if d.Saved() == want {
		printAlready(want)
		return nil
	}
	if err := d.ToggleSave(ctx); err != nil {
		return err
	}
	a.reloadHome()
	return nil
}

func printAlready(saved bool) {
	if saved {
		printlnFn("Recipe already saved")
	} else {
		printlnFn("Recipe is not in your collection")
	}
}

func (a *App) inList(id string) bool {
	for _, r := range a.last {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (a *App) Saved(ctx context.Context) error {
	if err := a.requireLogin("view saved recipes"); err != nil {
		return err
	}

	s := pages.NewSaved(a.deps)
	if err := s.Load(ctx); err != nil {
		_, msg := s.Status()
		printlnFn(msg)
		return err
	}
	a.saved = s
	a.view = viewSaved
	a.last = s.Recipes()

	if len(a.last) == 0 {
		printlnFn("You have no saved recipes yet.")
		return nil
	}
	for i, r := range a.last {
		printlnFn(recipeLine(i+1, r, true))
	}
	return nil
}

func (a *App) Create(ctx context.Context) error {
	if err := a.requireLogin("create recipes"); err != nil {
		return err
	}

	f := pages.NewCreateForm(a.deps)
	if err := a.fillDraft(f); err != nil {
		return err
	}
	return a.submit(ctx, f)
}

func (a *App) Edit(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.requireLogin("edit recipes"); err != nil {
		return err
	}

	f := pages.NewEditForm(a.deps, id)
	if err := f.Load(ctx); err != nil {
		_, msg, _ := f.Status()
		printlnFn(msg)
		return err
	}
	printlnFn("Press Enter to keep the current value.")
	if err := a.fillDraft(f); err != nil {
		return err
	}
	return a.submit(ctx, f)
}

// fillDraft prompts for every field. Empty answers keep the draft value.
func (a *App) fillDraft(f *pages.RecipeForm) error {
	d := f.Draft()

	text := func(label string, dst *string) error {
		prompt := label
		if *dst != "" {
			prompt += " [" + *dst + "]"
		}
		v, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = v
		}
		return nil
	}

	if err := text("Title", &d.Title); err != nil {
		return err
	}

	label := "Ingredients, one per line"
	if current := strings.Join(d.Ingredients, ", "); strings.TrimSpace(current) != "" {
		label += " [" + current + "]"
	}
	lines, err := GetLines(a.reader, label, a.out)
	if err != nil {
		return err
	}

	instructionsLabel := "Instructions"
	if d.Instructions != "" {
		instructionsLabel += " (empty keeps the current text)"
	}
	instructions, err := GetMultiline(a.reader, instructionsLabel, a.out)
	if err != nil {
		return err
	}
	if instructions != "" {
		d.Instructions = instructions
	}

	if err := text("Image URL", &d.ImageURL); err != nil {
		return err
	}
	if err := text("Difficulty (Easy, Medium, Hard)", &d.Difficulty); err != nil {
		return err
	}
	d.Difficulty = normalizeDifficulty(d.Difficulty)
	if err := text("Cooking time, minutes", &d.CookingTime); err != nil {
		return err
	}

	f.Edit(func(draft *pages.Draft) {
		draft.Title = d.Title
		if len(lines) > 0 {
			draft.Ingredients = []string{lines[0]}
			for _, l := range lines[1:] {
				draft.AddIngredient(l)
			}
		}
		draft.Instructions = d.Instructions
		draft.ImageURL = d.ImageURL
		draft.Difficulty = d.Difficulty
		draft.CookingTime = d.CookingTime
	})
	return nil
}

func (a *App) submit(ctx context.Context, f *pages.RecipeForm) error {
	r, err := f.Submit(ctx)
	_, msg, success := f.Status()
	if err != nil {
		printlnFn(msg)
		return err
	}
	printlnFn(success)
	printlnFn("Recipe id:", r.ID)
	a.resetViews()
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.requireLogin("delete recipes"); err != nil {
		return err
	}

	d := pages.NewDetail(a.deps, id)
	if err := d.Load(ctx); err != nil {
		_, msg := d.Status()
		printlnFn(msg)
		return err
	}
	if !d.IsAuthor() {
		return d.Delete(ctx)
	}
	if !Confirm(a.reader, "Are you sure you want to delete this recipe? This action cannot be undone.", a.out) {
		printlnFn("Cancelled")
		return nil
	}
	if err := d.Delete(ctx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			printlnFn(client.Message(err))
		}
		return err
	}
	a.resetViews()
	return nil
}
