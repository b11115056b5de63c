// Package pages holds the state machines behind each CLI screen. Pages talk
// to the API through client.Client, read identity from the shared Session
// and report action outcomes on the notification bus.
package pages

import (
	"errors"

	"github.com/dmitrijs2005/culinaryshare/internal/client/client"
	"github.com/dmitrijs2005/culinaryshare/internal/client/notify"
	"github.com/dmitrijs2005/culinaryshare/internal/client/session"
	"github.com/dmitrijs2005/culinaryshare/internal/logging"
)

// Status of a page's primary fetch.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrNotAuthor     = errors.New("not the recipe author")
)

// Deps are shared by every page.
type Deps struct {
	API     client.Client
	Session *session.Session
	Bus     *notify.Bus
	Logger  logging.Logger
}

// apiMessage returns the server's message for err, or fallback when the
// server did not send one.
func apiMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
