// Package session holds the CLI's authenticated identity. A Session is
// created once by the application root and passed to every page.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/models"
	"github.com/dmitrijs2005/culinaryshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/culinaryshare/internal/logging"
)

type Session struct {
	api    client.Client
	store  metadata.Repository
	logger logging.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
}

func New(api client.Client, store metadata.Repository, logger logging.Logger) *Session {
	return &Session{api: api, store: store, logger: logger}
}

// Restore loads a persisted token and fetches the profile for it. Any
// failure leaves the session logged out and drops the stored token.
func (s *Session) Restore(ctx context.Context) bool {
	raw, err := s.store.Get(ctx, metadata.KeyToken)
	if err != nil {
		s.logger.Warn(ctx, "failed to read stored token", "error", err)
		return false
	}
	if len(raw) == 0 {
		return false
	}

	token := string(raw)
	user, err := s.api.Profile(ctx, token)
	if err != nil {
		s.logger.Info(ctx, "stored session rejected", "error", err)
		s.clear(ctx)
		return false
	}

	s.set(token, user)
	return true
}

// Login authenticates and persists the token.
func (s *Session) Login(ctx context.Context, email, password string) error {
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.begin(ctx, sess)
}

// Register creates an account and logs straight into it.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	sess, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return s.begin(ctx, sess)
}

// Logout tells the server, ignoring its answer, and always clears local state.
func (s *Session) Logout(ctx context.Context) {
	token := s.Token()
	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Debug(ctx, "logout call failed", "error", err)
		}
	}
	s.clear(ctx)
}

// Refresh re-reads the profile, e.g. to pick up the current saved set.
func (s *Session) Refresh(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return client.ErrUnauthorized
	}
	user, err := s.api.Profile(ctx, token)
	if err != nil {
		return err
	}
	s.set(token, user)
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.SavedRecipes = slices.Clone(s.user.SavedRecipes)
	return &u
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) begin(ctx context.Context, sess *models.Session) error {
	if err := s.store.Set(ctx, metadata.KeyToken, []byte(sess.Token)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	user := sess.User
	s.set(sess.Token, &user)
	s.logger.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

func (s *Session) set(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) clear(ctx context.Context) {
	s.set("", nil)
	if err := s.store.Delete(ctx, metadata.KeyToken); err != nil {
		s.logger.Warn(ctx, "failed to drop stored token", "error", err)
	}
}
