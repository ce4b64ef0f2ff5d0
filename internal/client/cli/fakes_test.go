package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

type fakeAuth struct {
	signal *session.Signal
	cur    session.Session

	loginEmail string
	loginPass  []byte
	loginErr   error

	regName  string
	regEmail string
	regPass  []byte
	regErr   error

	confirmToken string
	confirmMsg   string
	confirmErr   error

	logoutCalled bool
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{signal: session.NewSignal()}
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (session.Session, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return session.Session{}, f.loginErr
	}
	f.cur = session.Session{Token: "tok", Email: email}
	return f.cur, nil
}

func (f *fakeAuth) Register(_ context.Context, fullName, email string, password []byte) (string, error) {
	f.regName, f.regEmail, f.regPass = fullName, email, append([]byte(nil), password...)
	return "ok", f.regErr
}

func (f *fakeAuth) ConfirmEmail(_ context.Context, token string) (string, error) {
	f.confirmToken = token
	return f.confirmMsg, f.confirmErr
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalled = true
	f.cur = session.Session{}
}

func (f *fakeAuth) Current() (session.Session, bool) {
	return f.cur, f.cur.Token != ""
}

func (f *fakeAuth) IsAuthenticated() bool {
	return f.cur.Token != ""
}

func (f *fakeAuth) Watch(fn func(session.Event)) func() {
	return f.signal.Subscribe(fn)
}

type fakeDirectory struct {
	users []models.User
	fresh bool

	listCalls int
	listErr   error

	statusIDs     []string
	statusValue   models.Status
	statusErr     error
	deleteIDs     []string
	deleteErr     error
	unverified    services.DeleteUnverifiedResult
	unverifiedErr error

	resetCalled bool
}

func (f *fakeDirectory) List(context.Context) ([]models.User, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.fresh = true
	return slices.Clone(f.users), nil
}

func (f *fakeDirectory) SetStatus(_ context.Context, ids []string, status models.Status) (services.StatusResult, error) {
	f.statusIDs, f.statusValue = ids, status
	var rerr *services.RefetchError
	if f.statusErr != nil && !errors.As(f.statusErr, &rerr) {
		return services.StatusResult{}, f.statusErr
	}
	return services.StatusResult{Updated: len(ids)}, f.statusErr
}

func (f *fakeDirectory) Delete(_ context.Context, ids []string) (services.DeleteResult, error) {
	f.deleteIDs = ids
	if f.deleteErr != nil {
		return services.DeleteResult{}, f.deleteErr
	}
	return services.DeleteResult{Deleted: len(ids)}, nil
}

func (f *fakeDirectory) DeleteUnverified(context.Context) (services.DeleteUnverifiedResult, error) {
	if f.unverifiedErr != nil {
		return services.DeleteUnverifiedResult{}, f.unverifiedErr
	}
	return f.unverified, nil
}

func (f *fakeDirectory) Refetch(ctx context.Context, _ services.Commit) error {
	_, err := f.List(ctx)
	return err
}

func (f *fakeDirectory) Snapshot() ([]models.User, bool) {
	return slices.Clone(f.users), f.fresh
}

func (f *fakeDirectory) Reset() {
	f.resetCalled = true
	f.users = nil
	f.fresh = false
}

type testApp struct {
	*App
	fa  *fakeAuth
	fd  *fakeDirectory
	buf *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	fa := newFakeAuth()
	fd := &fakeDirectory{}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app := newApp(cfg, logging.Discard(), fa, fd, bufio.NewReader(strings.NewReader(input)), out)
	t.Cleanup(app.Close)
	return &testApp{App: app, fa: fa, fd: fd, buf: out}
}

// loggedIn seeds a session and n users with distinct last-login times,
// most recent first.
func (ta *testApp) loggedIn(n int) {
	ta.fa.cur = session.Session{Token: "tok", Email: "admin@example.com"}
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ta.fd.users = nil
	for i := range n {
		seen := base.Add(-time.Duration(i) * time.Hour)
		ta.fd.users = append(ta.fd.users, models.User{
			ID:           userID(i),
			FullName:     "User " + string(rune('A'+i)),
			Email:        strings.ToLower(string(rune('a'+i))) + "@example.com",
			LastLoginAt:  &seen,
			RegisteredAt: base.AddDate(-1, 0, 0),
			Status:       models.StatusActive,
		})
	}
	ta.fd.fresh = true
}

func userID(i int) string {
	return fmt.Sprintf("%08d-0000-4000-8000-000000000000", i)
}

func (ta *testApp) output() string {
	s := ta.buf.String()
	ta.buf.Reset()
	return s
}
