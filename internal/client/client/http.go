package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (for example "http://localhost:5000").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: timeout},
	}
}

type messageBody struct {
	Message string `json:"message"`
}

// do sends a request and decodes a 2xx JSON body into out (when non-nil).
// Transport failures are reported as ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageBody
		_ = json.NewDecoder(resp.Body).Decode(&m)
		return &APIError{Status: resp.StatusCode, Message: m.Message, Err: sentinelFor(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func recipePath(id string) string {
	return "/recipes/" + url.PathEscape(id)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	in := map[string]string{"username": username, "email": email, "password": password}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/register", "", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	in := map[string]string{"email": email, "password": password}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/login", "", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", token, nil, nil)
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var list []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var r models.Recipe
	if err := c.do(ctx, http.MethodGet, recipePath(id), "", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, token string, in models.RecipeInput) (*models.Recipe, error) {
	var r models.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", token, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, token, id string, in models.RecipeInput) (*models.Recipe, error) {
	var r models.Recipe
	if err := c.do(ctx, http.MethodPut, recipePath(id), token, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, recipePath(id), token, nil, nil)
}

// SaveRecipe reports a duplicate save as ErrConflict; the API answers it
// with a plain 400.
func (c *HTTPClient) SaveRecipe(ctx context.Context, token, id string) error {
	err := c.do(ctx, http.MethodPost, recipePath(id)+"/save", token, nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		apiErr.Err = ErrConflict
	}
	return err
}

func (c *HTTPClient) UnsaveRecipe(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, recipePath(id)+"/save", token, nil, nil)
}

func (c *HTTPClient) SavedRecipes(ctx context.Context, token, userID string) ([]models.Recipe, error) {
	var list []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/saved", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
