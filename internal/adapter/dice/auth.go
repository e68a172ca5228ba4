package dice

import (
	"errors"
	"strings"
	"time"

	"github.com/julian/jobbider/internal/adapter"
)

const loginURL = "https://www.dice.com/dashboard/login"

// login runs the two-step email/password flow. A no-op once the session is
// authenticated. Any failure returns an AuthError that aborts the whole run;
// retrying job after job against a dead session is pointless.
func (a *Adapter) login(b adapter.Browser) error {
	if a.authenticated {
		return nil
	}

	creds := a.cfg.Credentials
	if creds.Email == "" || creds.Password == "" {
		return &adapter.AuthError{Platform: platformName, Step: "credentials", Cause: errors.New("email or password not set")}
	}

	a.logf("logging in as %s", creds.Email)
	if err := b.Navigate(loginURL); err != nil {
		return &adapter.AuthError{Platform: platformName, Step: "open login page", Cause: err}
	}
	b.Snapshot("login_page")

	email, ok := b.Resolve(emailInputChain, 10*time.Second, false)
	if !ok {
		b.Snapshot("login_no_email_input")
		return &adapter.AuthError{Platform: platformName, Step: "locate email input"}
	}
	if err := b.Type(email, creds.Email); err != nil {
		return &adapter.AuthError{Platform: platformName, Step: "enter email", Cause: err}
	}
	b.Snapshot("email_entered")

	// Step one submits the email. The continue control moves around between
	// page revisions; submitting the field directly works on all of them.
	if cont, ok := b.Resolve(continueChain, 5*time.Second, true); ok {
		if !b.ClickWhenReady(cont, 5*time.Second) {
			_ = b.PressEnter(email)
		}
	} else {
		a.debugf("no continue control, submitting email field")
		_ = b.PressEnter(email)
	}
	b.Snapshot("after_continue")

	password, ok := b.Resolve(passwordInputChain, 10*time.Second, false)
	if !ok {
		b.Snapshot("login_no_password_input")
		return &adapter.AuthError{Platform: platformName, Step: "locate password input"}
	}
	if err := b.Type(password, creds.Password); err != nil {
		return &adapter.AuthError{Platform: platformName, Step: "enter password", Cause: err}
	}
	b.Snapshot("password_entered")

	signIn, ok := b.Resolve(signInChain, 5*time.Second, false)
	if !ok {
		b.Snapshot("login_no_signin_button")
		return &adapter.AuthError{Platform: platformName, Step: "locate sign-in control"}
	}
	if !b.ClickWhenReady(signIn, 10*time.Second) {
		return &adapter.AuthError{Platform: platformName, Step: "click sign-in control"}
	}
	b.Snapshot("after_signin")

	if b.WaitForURL(isPostLoginURL, 10*time.Second) {
		a.authenticated = true
		a.logf("login verified")
		return nil
	}
	// Second chance: any navigation off the login surface counts.
	if b.WaitForURL(func(u string) bool { return !isLoginURL(u) }, 5*time.Second) {
		a.authenticated = true
		a.logf("login appears successful, left the login page")
		return nil
	}

	b.Snapshot("login_failed")
	return &adapter.AuthError{Platform: platformName, Step: "verify", Cause: errors.New("still on the login page")}
}

// isPostLoginURL matches the landing surfaces Dice redirects to after a
// successful sign-in. The login page itself lives under /dashboard/login, so
// "dashboard" alone is not enough.
func isPostLoginURL(u string) bool {
	u = strings.ToLower(u)
	if strings.Contains(u, "home-feed") {
		return true
	}
	return strings.Contains(u, "dashboard") && !strings.Contains(u, "login")
}

func isLoginURL(u string) bool {
	return strings.Contains(strings.ToLower(u), "login")
}
