// Package services contains the application services of the admin client.
// This file defines the authentication gateway: login, registration, e-mail
// confirmation, logout and access to the current session.
package services

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate credentials locally, authenticate, persist the session.
//   - Register: create an account; nothing is stored locally.
//   - ConfirmEmail: redeem the token from the confirmation e-mail.
//   - Logout: drop the session; never fails.
//   - Watch: observe sessions invalidated by the server (any 401).
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (session.Session, error)
	Register(ctx context.Context, fullName, email string, password []byte) (string, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context)
	Current() (session.Session, bool)
	IsAuthenticated() bool
	Watch(fn func(session.Event)) (unsubscribe func())
}

type authService struct {
	client client.Client
	store  session.Store
	signal *session.Signal
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client,
// session store and unauthorized signal.
func NewAuthService(c client.Client, store session.Store, signal *session.Signal, log logging.Logger) AuthService {
	return &authService{client: c, store: store, signal: signal, log: log.With("service", "auth")}
}

type loginInput struct {
	Email    string `json:"email"`
	Password []byte `json:"password"`
}

func (in loginInput) validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	))
}

type registerInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password []byte `json:"password"`
}

func (in registerInput) validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	))
}

// Login authenticates and stores the returned token together with the
// e-mail. A response without a token is a protocol error and leaves the
// store untouched.
func (a *authService) Login(ctx context.Context, email string, password []byte) (session.Session, error) {
	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := in.validate(); err != nil {
		return session.Session{}, err
	}

	resp, err := a.client.Login(ctx, client.LoginRequest{Email: in.Email, Password: string(password)})
	if err != nil {
		a.log.Info(ctx, "login rejected", "email", in.Email, "error", err)
		return session.Session{}, fmt.Errorf("login error: %w", err)
	}
	if resp.Token == "" {
		return session.Session{}, client.ProtocolError("missing token")
	}

	sess := session.Session{Token: resp.Token, Email: in.Email}
	if err := a.store.Save(ctx, sess); err != nil {
		return session.Session{}, err
	}

	a.log.Info(ctx, "logged in", "email", in.Email)
	return sess, nil
}

// Register returns the server's confirmation message.
func (a *authService) Register(ctx context.Context, fullName, email string, password []byte) (string, error) {
	in := registerInput{FullName: strings.TrimSpace(fullName), Email: strings.TrimSpace(email), Password: password}
	if err := in.validate(); err != nil {
		return "", err
	}

	resp, err := a.client.Register(ctx, client.RegisterRequest{
		FullName: in.FullName,
		Email:    in.Email,
		Password: string(password),
	})
	if err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}

	a.log.Info(ctx, "registered", "email", in.Email)
	return resp.Message, nil
}

func (a *authService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", invalidField("token", "cannot be blank")
	}

	resp, err := a.client.ConfirmEmail(ctx, token)
	if err != nil {
		return "", fmt.Errorf("confirm email error: %w", err)
	}
	return resp.Message, nil
}

// Logout clears the session. A failure to remove the persisted copy is
// logged; the process is unauthenticated either way.
func (a *authService) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear persisted session", "error", err)
	}
	a.log.Info(ctx, "logged out")
}

func (a *authService) Current() (session.Session, bool) {
	return a.store.Current()
}

func (a *authService) IsAuthenticated() bool {
	_, ok := a.store.Token()
	return ok
}

func (a *authService) Watch(fn func(session.Event)) (unsubscribe func()) {
	return a.signal.Subscribe(fn)
}
