package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/models"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ticketdesk/internal/client/session"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

type fakeAPI struct {
	loginCreds  api.Credentials
	loginResp   *api.AuthPayload
	loginErr    error
	signupInput *api.SignupInput
	signupErr   error
	logoutCalls int
}

func (f *fakeAPI) Login(_ context.Context, creds api.Credentials) (*api.AuthPayload, error) {
	f.loginCreds = creds
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Signup(_ context.Context, input api.SignupInput) error {
	f.signupInput = &input
	return f.signupErr
}

func (f *fakeAPI) Refresh(context.Context) (*api.AuthPayload, error) {
	return nil, errors.New("no session")
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAPI) ListTickets(context.Context) ([]models.Ticket, error)         { return nil, nil }
func (f *fakeAPI) ListAssignedTickets(context.Context) ([]models.Ticket, error) { return nil, nil }
func (f *fakeAPI) GetTicket(context.Context, string) (*models.Ticket, error)    { return nil, nil }
func (f *fakeAPI) CreateTicket(context.Context, api.CreateTicketInput) (*models.Ticket, error) {
	return nil, nil
}
func (f *fakeAPI) UpdateTicket(context.Context, string, api.TicketPatch) (*models.Ticket, error) {
	return nil, nil
}
func (f *fakeAPI) ListComments(context.Context, string) ([]models.Comment, error) { return nil, nil }
func (f *fakeAPI) CreateComment(context.Context, api.CreateCommentInput) (*models.Comment, error) {
	return nil, nil
}
func (f *fakeAPI) ListUsers(context.Context) ([]models.User, error) { return nil, nil }

type fakeMetadata struct {
	values map[string]string
}

func (f *fakeMetadata) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", sql.ErrNoRows
	}
	return v, nil
}

func (f *fakeMetadata) Set(_ context.Context, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func newTestApp(f *fakeAPI) (*App, *fakeMetadata) {
	meta := &fakeMetadata{}
	log := logging.NewNop()
	return &App{
		log:     log,
		apiC:    f,
		session: session.NewStore(f, log),
		repos:   &repositories.Repositories{Metadata: meta},
		reader:  bufio.NewReader(rdr("")),
	}, meta
}

func stubInputs(t *testing.T, lines []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
	getPassword = func(_ io.Writer, _ string) (string, error) {
		pw := passwords[0]
		passwords = passwords[1:]
		return pw, nil
	}
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAPI{loginResp: &api.AuthPayload{
		AccessToken: "tok",
		User:        api.AuthUser{Email: "ada@example.com"},
	}}
	a, meta := newTestApp(f)

	stubInputs(t, []string{"ada@example.com"}, []string{"s3cret"})

	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, "ada@example.com", f.loginCreds.Username)
	require.Equal(t, "s3cret", f.loginCreds.Password)
	require.True(t, a.session.Authenticated())
	require.Equal(t, "ada@example.com", a.session.Identity())
	require.Equal(t, "ada@example.com", meta.values[metadata.KeyIdentity])
}

func TestLogin_FailureLeavesSessionAnonymous(t *testing.T) {
	f := &fakeAPI{loginErr: &api.Error{Message: "invalid credentials", Status: 401}}
	a, _ := newTestApp(f)

	stubInputs(t, []string{"ada"}, []string{"wrong"})

	require.Error(t, a.Login(context.Background()))
	require.False(t, a.session.Authenticated())
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(f)

	stubInputs(t,
		[]string{"ada", "Ada", "Lovelace", "ada@example.com"},
		[]string{"s3cret", "s3cret"})

	require.NoError(t, a.Register(context.Background()))
	require.NotNil(t, f.signupInput)
	require.Equal(t, "ada", f.signupInput.Username)
	require.Equal(t, "ada@example.com", f.signupInput.Email)
	require.Equal(t, "s3cret", f.signupInput.Password)
}

func TestRegister_PasswordMismatchNeverHitsNetwork(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(f)

	stubInputs(t,
		[]string{"ada", "Ada", "Lovelace", "ada@example.com"},
		[]string{"one", "two"})

	require.NoError(t, a.Register(context.Background()))
	require.Nil(t, f.signupInput)
}

func TestLogout_ClearsSession(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(f)
	a.session.Login("tok", "ada")
	require.True(t, a.session.Authenticated())

	a.Logout(context.Background())
	require.False(t, a.session.Authenticated())
}
