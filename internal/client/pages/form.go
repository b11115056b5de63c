package pages

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/common"
)

const msgRequiredFields = "Please fill in all required fields"

// Draft is the editable state of the recipe form.
type Draft struct {
	Title        string
	Ingredients  []string
	Instructions string
	ImageURL     string
	Difficulty   string
	CookingTime  string
}

// NewDraft returns an empty draft with one ingredient line.
func NewDraft() Draft {
	return Draft{
		Ingredients: []string{""},
		Difficulty:  common.DefaultDifficulty,
		CookingTime: common.DefaultCookingTime,
	}
}

func draftFrom(r *models.Recipe) Draft {
	d := Draft{
		Title:        r.Title,
		Ingredients:  slices.Clone(r.Ingredients),
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
		Difficulty:   r.Difficulty,
		CookingTime:  r.CookingTime,
	}
	if len(d.Ingredients) == 0 {
		d.Ingredients = []string{""}
	}
	return d
}

func (d *Draft) AddIngredient(line string) {
	d.Ingredients = append(d.Ingredients, line)
}

// SetIngredient replaces line i.
func (d *Draft) SetIngredient(i int, line string) error {
	if i < 0 || i >= len(d.Ingredients) {
		return fmt.Errorf("no ingredient line %d", i+1)
	}
	d.Ingredients[i] = line
	return nil
}

// RemoveIngredient drops line i unless it is the last one left.
func (d *Draft) RemoveIngredient(i int) bool {
	if len(d.Ingredients) <= 1 || i < 0 || i >= len(d.Ingredients) {
		return false
	}
	d.Ingredients = slices.Delete(d.Ingredients, i, i+1)
	return true
}

// Validate requires a title, instructions and no blank ingredient line.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Instructions) == "" {
		return common.WithMessage(common.ErrValidation, msgRequiredFields)
	}
	if len(d.Ingredients) == 0 {
		return common.WithMessage(common.ErrValidation, msgRequiredFields)
	}
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return common.WithMessage(common.ErrValidation, msgRequiredFields)
		}
	}
	if d.Difficulty != "" && !slices.Contains(models.Difficulties, d.Difficulty) {
		return common.WithMessage(common.ErrValidation, "Difficulty must be one of Easy, Medium, Hard")
	}
	return nil
}

// Input converts the draft to a request body with trimmed values.
func (d Draft) Input() models.RecipeInput {
	ingredients := make([]string, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	return models.RecipeInput{
		Title:        strings.TrimSpace(d.Title),
		Ingredients:  ingredients,
		Instructions: strings.TrimSpace(d.Instructions),
		ImageURL:     strings.TrimSpace(d.ImageURL),
		Difficulty:   d.Difficulty,
		CookingTime:  strings.TrimSpace(d.CookingTime),
	}
}

// RecipeForm backs both the create and the edit screens.
type RecipeForm struct {
	deps Deps
	id   string

	mu      sync.Mutex
	status  Status
	loadErr error
	draft   Draft
	err     string
	success string
}

var errFormNotLoaded = errors.New("recipe form is not loaded")

func NewCreateForm(deps Deps) *RecipeForm {
	return &RecipeForm{deps: deps, status: StatusReady, draft: NewDraft()}
}

// NewEditForm returns a form for recipe id; call Load before editing.
func NewEditForm(deps Deps, id string) *RecipeForm {
	return &RecipeForm{deps: deps, id: id, status: StatusLoading, draft: NewDraft()}
}

func (f *RecipeForm) Editing() bool { return f.id != "" }

// Load fills the draft from the stored recipe. Non-authors get an error
// state and cannot submit.
func (f *RecipeForm) Load(ctx context.Context) error {
	if !f.Editing() {
		return nil
	}

	r, err := f.deps.API.GetRecipe(ctx, f.id)
	if err != nil {
		f.fail(StatusError, "Failed to fetch recipe details")
		f.setLoadErr(err)
		return err
	}

	user := f.deps.Session.User()
	if user == nil || user.ID != r.Author {
		f.fail(StatusError, "You are not authorized to edit this recipe")
		f.setLoadErr(ErrNotAuthor)
		return ErrNotAuthor
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draftFrom(r)
	f.status = StatusReady
	f.loadErr = nil
	f.err = ""
	return nil
}

func (f *RecipeForm) setLoadErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErr = err
}

func (f *RecipeForm) fail(status Status, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.err = msg
	f.success = ""
}

// Status returns the form status, the error line and the success line.
func (f *RecipeForm) Status() (Status, string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, f.err, f.success
}

// Draft returns a copy of the current draft.
func (f *RecipeForm) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.Ingredients = slices.Clone(f.draft.Ingredients)
	return d
}

// Edit applies fn to the draft.
func (f *RecipeForm) Edit(fn func(d *Draft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// Submit validates the draft and sends it. On create success the draft is
// reset for the next recipe.
func (f *RecipeForm) Submit(ctx context.Context) (*models.Recipe, error) {
	f.mu.Lock()
	if f.status != StatusReady {
		err := f.loadErr
		f.mu.Unlock()
		if err == nil {
			err = errFormNotLoaded
		}
		return nil, err
	}
	draft := f.draft
	f.mu.Unlock()

	if !f.deps.Session.LoggedIn() {
		f.fail(StatusReady, "Please log in to manage recipes")
		return nil, ErrLoginRequired
	}
	if err := draft.Validate(); err != nil {
		var pe *common.PublicError
		if errors.As(err, &pe) {
			f.fail(StatusReady, pe.Message)
		}
		return nil, err
	}

	token := f.deps.Session.Token()
	var (
		r        *models.Recipe
		err      error
		fallback = "Failed to create recipe"
		done     = "Recipe created successfully!"
	)
	if f.Editing() {
		fallback, done = "Failed to update recipe", "Recipe updated successfully!"
		r, err = f.deps.API.UpdateRecipe(ctx, token, f.id, draft.Input())
	} else {
		r, err = f.deps.API.CreateRecipe(ctx, token, draft.Input())
	}
	if err != nil {
		f.fail(StatusReady, apiMessage(err, fallback))
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = ""
	f.success = done
	if !f.Editing() {
		f.draft = NewDraft()
	}
	return r, nil
}
