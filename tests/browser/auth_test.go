package browser_test

import (
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestSignupAndLogout walks the full account flow: sign up, land on the
// dashboard, log out, log back in.
func TestSignupAndLogout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/signup"); err != nil {
		t.Fatalf("failed to navigate to signup: %v", err)
	}
	page.Locator("input[name=Email]").Fill("newbie@test.com")
	page.Locator("input[name=Username]").Fill("newbie")
	page.Locator("input[name=Password]").Fill("FirstPass123!")
	page.Locator("input[name=ConfirmPassword]").Fill("FirstPass123!")
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit signup: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("signup did not land on dashboard: %v", err)
	}

	// Logged-in nav shows the username
	text, err := page.Locator(".username").TextContent()
	if err != nil || text != "newbie" {
		t.Fatalf("username in nav = %q (%v), want newbie", text, err)
	}

	// Log out via the nav form
	if err := page.Locator("button:has-text('Log out')").Click(); err != nil {
		t.Fatalf("failed to click logout: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("logout did not redirect to login: %v", err)
	}

	// Dashboard is gated again
	if _, err := page.Goto(app.BaseURL + "/dashboard"); err != nil {
		t.Fatalf("failed to navigate: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("dashboard reachable after logout: %v", err)
	}
}

// TestLoginWrongPassword verifies the login form re-renders with an error
// and no session is created.
func TestLoginWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	page.Locator("input[name=Email]").Fill(testEmail)
	page.Locator("input[name=Password]").Fill("not the password")
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit login: %v", err)
	}

	if err := page.Locator(".error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("no error message shown: %v", err)
	}
	if page.URL() != app.BaseURL+"/login" {
		t.Errorf("URL = %q, want to stay on /login", page.URL())
	}
}
