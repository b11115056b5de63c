package pages

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/culinaryshare/internal/client/session"
	"github.com/dmitrijs2005/culinaryshare/internal/common"
)

const msgAllFields = "Please fill in all fields"

type LoginForm struct {
	Email    string
	Password string

	Err string
}

// Submit checks required fields, then logs in through sess.
func (f *LoginForm) Submit(ctx context.Context, sess *session.Session) error {
	f.Err = ""
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		f.Err = msgAllFields
		return common.WithMessage(common.ErrValidation, msgAllFields)
	}
	if err := sess.Login(ctx, strings.TrimSpace(f.Email), f.Password); err != nil {
		f.Err = apiMessage(err, "Login failed")
		return err
	}
	return nil
}

type RegisterForm struct {
	Username string
	Email    string
	Password string

	Err string
}

// Submit checks required fields, then registers through sess.
func (f *RegisterForm) Submit(ctx context.Context, sess *session.Session) error {
	f.Err = ""
	username, email := strings.TrimSpace(f.Username), strings.TrimSpace(f.Email)
	if username == "" || email == "" || f.Password == "" {
		f.Err = msgAllFields
		return common.WithMessage(common.ErrValidation, msgAllFields)
	}
	if err := sess.Register(ctx, username, email, f.Password); err != nil {
		f.Err = apiMessage(err, "Registration failed")
		return err
	}
	return nil
}
