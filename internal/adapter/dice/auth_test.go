package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julian/jobbider/internal/adapter"
)

func newTestAdapter(b *fakeBrowser, s *fakeStore, mutate func(*Config)) *Adapter {
	cfg := Config{
		SearchQuery: "golang developer",
		Credentials: testCreds(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(b.opener(), s, cfg)
}

func TestLogin_Success(t *testing.T) {
	b := newFakeBrowser()
	b.scriptLoginSuccess()
	a := newTestAdapter(b, newFakeStore(), nil)

	require.NoError(t, a.login(b))

	assert.True(t, a.authenticated)
	assert.Equal(t, []string{loginURL}, b.navigated)
	assert.Equal(t, "user@example.com", b.typed[`input[name='email']`])
	assert.Equal(t, "hunter2", b.typed[`input[name='password']`])
	assert.Contains(t, b.clicks, `button[data-testid='sign-in-button']`)
	assert.Contains(t, b.clicks, `button[data-testid='submit-password']`)
}

func TestLogin_SecondChanceVerification(t *testing.T) {
	b := newFakeBrowser()
	b.scriptLoginSuccess()
	// Landing somewhere unrecognized still counts as long as it is off the
	// login surface.
	b.urlAfterClick[`button[data-testid='submit-password']`] = "https://www.dice.com/profile"
	a := newTestAdapter(b, newFakeStore(), nil)

	require.NoError(t, a.login(b))
	assert.True(t, a.authenticated)
}

func TestLogin_StillOnLoginPageFails(t *testing.T) {
	b := newFakeBrowser()
	b.scriptLoginSuccess()
	delete(b.urlAfterClick, `button[data-testid='submit-password']`)
	a := newTestAdapter(b, newFakeStore(), nil)

	err := a.login(b)
	require.Error(t, err)

	var authErr *adapter.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "verify", authErr.Step)
	assert.False(t, a.authenticated)
	assert.Contains(t, b.snapshots, "login_failed")
}

func TestLogin_MissingEmailInput(t *testing.T) {
	b := newFakeBrowser()
	a := newTestAdapter(b, newFakeStore(), nil)

	err := a.login(b)
	require.Error(t, err)

	var authErr *adapter.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "locate email input", authErr.Step)
}

func TestLogin_MissingCredentials(t *testing.T) {
	b := newFakeBrowser()
	b.scriptLoginSuccess()
	a := newTestAdapter(b, newFakeStore(), func(c *Config) {
		c.Credentials.Password = ""
	})

	err := a.login(b)
	require.Error(t, err)
	assert.Empty(t, b.navigated, "must not touch the browser without credentials")
}

func TestLogin_FallsBackToEnterWhenContinueMissing(t *testing.T) {
	b := newFakeBrowser()
	b.scriptLoginSuccess()
	delete(b.present, `button[data-testid='sign-in-button']`)
	a := newTestAdapter(b, newFakeStore(), nil)

	require.NoError(t, a.login(b))
	assert.Equal(t, []string{`input[name='email']`}, b.entered)
}

func TestLogin_SkipsWhenAlreadyAuthenticated(t *testing.T) {
	b := newFakeBrowser()
	a := newTestAdapter(b, newFakeStore(), nil)
	a.authenticated = true

	require.NoError(t, a.login(b))
	assert.Empty(t, b.navigated)
}
