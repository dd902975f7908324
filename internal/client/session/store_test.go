package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

// fakeAuthAPI implements authAPI with preset outputs and captured calls.
type fakeAuthAPI struct {
	refreshResp *api.AuthPayload
	refreshErr  error
	refreshed   int

	logoutErr  error
	logoutDone chan struct{}
}

func (f *fakeAuthAPI) Refresh(ctx context.Context) (*api.AuthPayload, error) {
	f.refreshed++
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	if f.logoutDone != nil {
		defer close(f.logoutDone)
	}
	return f.logoutErr
}

func signedToken(t *testing.T, subject string, expires time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": expires.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestLogin_BearerPrefixExactlyOnce(t *testing.T) {
	s := NewStore(&fakeAuthAPI{}, logging.NewNop())

	s.Login("abc123", "ada@example.com")
	require.True(t, s.Authenticated())
	require.Equal(t, "Bearer abc123", s.Token())

	// A token that already carries the prefix is not double-wrapped.
	s.Login("Bearer abc123", "ada@example.com")
	require.Equal(t, "Bearer abc123", s.Token())
	require.Equal(t, "ada@example.com", s.Identity())
}

func TestLogin_IdentityFallsBackToTokenSubject(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := signedToken(t, "user-42", expires)

	s := NewStore(&fakeAuthAPI{}, logging.NewNop())
	s.Login(token, "")

	snap := s.Snapshot()
	require.Equal(t, "user-42", snap.Identity)
	require.Equal(t, expires.Unix(), snap.ExpiresAt.Unix())
}

func TestSilentRefresh_Success(t *testing.T) {
	f := &fakeAuthAPI{
		refreshResp: &api.AuthPayload{
			AccessToken: "fresh",
			User:        api.AuthUser{Username: "ada", Email: "ada@example.com"},
		},
	}
	s := NewStore(f, logging.NewNop())

	require.True(t, s.SilentRefresh(context.Background()))

	snap := s.Snapshot()
	require.True(t, snap.Authenticated)
	require.Equal(t, "Bearer fresh", snap.Token)
	require.Equal(t, "ada@example.com", snap.Identity)
	require.False(t, snap.Loading)
	require.Empty(t, snap.Err)
}

func TestSilentRefresh_FailureDegradesToAnonymous(t *testing.T) {
	f := &fakeAuthAPI{refreshErr: &api.Error{Message: "refresh cookie missing", Status: 401}}
	s := NewStore(f, logging.NewNop())
	s.Login("stale", "ada")

	require.False(t, s.SilentRefresh(context.Background()))

	snap := s.Snapshot()
	require.False(t, snap.Authenticated)
	require.Empty(t, snap.Token)
	require.Equal(t, "refresh cookie missing", snap.Err)
	require.False(t, snap.Loading)
}

func TestSilentRefresh_SafeToCallRepeatedly(t *testing.T) {
	f := &fakeAuthAPI{refreshResp: &api.AuthPayload{AccessToken: "fresh"}}
	s := NewStore(f, logging.NewNop())

	require.True(t, s.SilentRefresh(context.Background()))
	require.True(t, s.SilentRefresh(context.Background()))
	require.Equal(t, 2, f.refreshed)
	require.True(t, s.Authenticated())
}

func TestLogout_ClearsLocallyBeforeServerAnswers(t *testing.T) {
	f := &fakeAuthAPI{logoutDone: make(chan struct{}), logoutErr: errors.New("gateway timeout")}
	s := NewStore(f, logging.NewNop())
	s.Login("abc", "ada")

	s.Logout(context.Background())

	// Local state is cleared synchronously, before the network outcome.
	require.False(t, s.Authenticated())
	require.Empty(t, s.Identity())

	<-f.logoutDone
	// The failed server call never reverts local state.
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return !snap.Loading && !snap.Authenticated && snap.Err == "gateway timeout"
	}, time.Second, 10*time.Millisecond)
}

func TestLogout_Idempotent(t *testing.T) {
	s := NewStore(&fakeAuthAPI{}, logging.NewNop())
	s.Login("abc", "ada")

	s.Logout(context.Background())
	s.Logout(context.Background())
	require.False(t, s.Authenticated())
}

func TestClearError(t *testing.T) {
	f := &fakeAuthAPI{refreshErr: errors.New("boom")}
	s := NewStore(f, logging.NewNop())
	s.Login("abc", "ada")

	s.SilentRefresh(context.Background())
	require.NotEmpty(t, s.Snapshot().Err)

	s.ClearError()
	snap := s.Snapshot()
	require.Empty(t, snap.Err)
	require.Empty(t, snap.Token) // token untouched by ClearError
}
