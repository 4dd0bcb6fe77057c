package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestLogWorkoutFromDashboard fills the entry form, marks sets done, submits,
// and verifies the workout shows up in recent workouts and history.
func TestLogWorkoutFromDashboard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	page.Locator("input[name=Name]").Fill("Push Day")
	page.Locator("textarea[name=Notes]").Fill("felt **strong**")

	// One exercise block with two set rows, only one marked done
	if err := page.Locator("#add-exercise").Click(); err != nil {
		t.Fatalf("failed to add exercise block: %v", err)
	}
	block := page.Locator(".exercise-block").First()
	block.Locator(".add-set").Click()

	rows := block.Locator(".set-row")
	if n, _ := rows.Count(); n != 2 {
		t.Fatalf("expected 2 set rows, got %d", n)
	}
	rows.Nth(0).Locator(".set-reps").Fill("8")
	rows.Nth(0).Locator(".set-weight").Fill("60")
	rows.Nth(0).Locator(".set-done").Check()
	// Second row left incomplete on purpose: it must not be saved
	rows.Nth(1).Locator(".set-reps").Fill("5")
	rows.Nth(1).Locator(".set-weight").Fill("70")

	if err := page.Locator("#workout-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit workout: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("workout submit did not return to dashboard: %v", err)
	}

	// Recent workouts table has the new entry with exactly one set
	row := page.Locator("table tbody tr", playwright.PageLocatorOptions{
		HasText: "Push Day",
	}).First()
	if err := row.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(10000)}); err != nil {
		t.Fatalf("workout missing from recent list: %v", err)
	}
	rowText, _ := row.TextContent()
	if !strings.Contains(rowText, "480") {
		t.Errorf("recent row = %q, want volume 480 (8x60, uncompleted set excluded)", rowText)
	}

	// History shows it too
	if _, err := page.Goto(app.BaseURL + "/history"); err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	historyRow := page.Locator("table tbody tr", playwright.PageLocatorOptions{
		HasText: "Push Day",
	}).First()
	if err := historyRow.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(10000)}); err != nil {
		t.Fatalf("workout missing from history: %v", err)
	}

	// Detail page renders the markdown notes as HTML
	if err := historyRow.Locator("a").First().Click(); err != nil {
		t.Fatalf("failed to open workout detail: %v", err)
	}
	if err := page.Locator(".notes strong").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("markdown notes not rendered: %v", err)
	}
}

// TestStatsPinFlow logs a workout, pins the exercise, and checks the chart
// appears on the stats page.
func TestStatsPinFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	// Log a squat workout
	page.Locator("input[name=Name]").Fill("Leg Day")
	page.Locator("#add-exercise").Click()
	block := page.Locator(".exercise-block").First()
	block.Locator(".exercise-select").SelectOption(playwright.SelectOptionValues{
		Labels: playwright.StringSlice("Squat"),
	})
	row := block.Locator(".set-row").First()
	row.Locator(".set-reps").Fill("5")
	row.Locator(".set-weight").Fill("100")
	row.Locator(".set-done").Check()
	page.Locator("#workout-form button[type=submit]").Click()
	if err := page.WaitForURL(app.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("workout submit failed: %v", err)
	}

	// Open the squat stats page and pin it
	if _, err := page.Goto(app.BaseURL + "/stats"); err != nil {
		t.Fatalf("failed to open stats: %v", err)
	}
	if err := page.Locator(".exercise-list a:has-text('Squat')").Click(); err != nil {
		t.Fatalf("failed to open squat stats: %v", err)
	}
	if err := page.Locator("#pin-toggle").Click(); err != nil {
		t.Fatalf("failed to pin: %v", err)
	}
	if err := page.Locator("#pin-toggle[data-pinned=true]").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("pin state did not flip: %v", err)
	}

	// Pinned chart shows on the stats overview
	if _, err := page.Goto(app.BaseURL + "/stats"); err != nil {
		t.Fatalf("failed to reopen stats: %v", err)
	}
	if err := page.Locator(".stat-card:has-text('Squat')").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("pinned squat chart missing: %v", err)
	}
}
