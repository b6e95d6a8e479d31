// Package session establishes the one authenticated browser session an
// ordered test group shares. The session is created once (browser launch,
// navigation to the login form, credential submit, post-login marker
// wait) and disposed exactly once after the last case, regardless of how
// many cases failed in between.
package session

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/spendwise/spendwise-e2e/internal/config"
	"github.com/spendwise/spendwise-e2e/internal/driver"
	"github.com/spendwise/spendwise-e2e/internal/errs"
	"github.com/spendwise/spendwise-e2e/internal/flow"
	"github.com/spendwise/spendwise-e2e/internal/obs"
	"github.com/spendwise/spendwise-e2e/internal/wait"
)

var logger = obs.Pkg("session")

// Markers holds the login-flow locators. They are injectable
// configuration: fixed structural paths are brittle, so defaults key off
// stable ids and test attributes.
type Markers struct {
	LoginPath     string
	EmailField    string
	PasswordField string
	SubmitButton  string
	// PostLogin must become visible before setup is considered done.
	PostLogin string
}

// DefaultMarkers matches the SpendWise fixture application.
func DefaultMarkers() Markers {
	return Markers{
		LoginPath:     "/login",
		EmailField:    "#login-email",
		PasswordField: "#login-password",
		SubmitButton:  "[data-testid=login-submit]",
		PostLogin:     "#nav-dashboard",
	}
}

// Session owns the browser resource for the run's duration. No other
// component may hold a competing reference to it.
type Session struct {
	BaseURL string
	Flow    *flow.Runner

	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page

	disposeOnce sync.Once
}

// New launches the browser, logs in, and blocks until the post-login
// marker is visible. Any miss is a SetupFailure: the caller must treat it
// as fatal for the whole ordered group.
func New(cfg config.Suite, baseURL string, marks Markers) (*Session, error) {
	s := &Session{BaseURL: baseURL}

	pw, err := playwright.Run()
	if err != nil {
		return nil, errs.Wrap(errs.SetupFailure, "playwright driver unavailable", err)
	}
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		s.Dispose()
		return nil, errs.Wrap(errs.SetupFailure, "launch browser", err)
	}
	s.browser = browser

	page, err := browser.NewPage()
	if err != nil {
		s.Dispose()
		return nil, errs.Wrap(errs.SetupFailure, "open page", err)
	}
	timeoutMS := float64(cfg.WaitTimeout.Milliseconds())
	page.SetDefaultTimeout(timeoutMS)
	page.SetDefaultNavigationTimeout(timeoutMS)
	s.page = page

	s.Flow = flow.NewRunner(driver.NewPage(page, timeoutMS), cfg)

	if err := s.login(cfg, marks); err != nil {
		s.Dispose()
		return nil, err
	}
	logger.Info("session established", "base_url", baseURL)
	return s, nil
}

func (s *Session) login(cfg config.Suite, marks Markers) error {
	if err := s.Flow.Navigate(s.BaseURL, marks.LoginPath, marks.EmailField); err != nil {
		return errs.Wrap(errs.SetupFailure, "login form did not render", err)
	}
	err := s.Flow.Run([]flow.Step{
		flow.FillStep("fill login email", marks.EmailField, cfg.Username),
		flow.FillStep("fill login password", marks.PasswordField, cfg.Password),
		flow.ClickStep("submit login form", marks.SubmitButton),
	})
	if err != nil {
		return errs.Wrap(errs.SetupFailure, "submit credentials", err)
	}
	_, err = wait.MustElement("post-login marker",
		wait.Visible(s.Flow.Driver(), marks.PostLogin),
		cfg.WaitTimeout, cfg.PollInterval)
	if err != nil {
		return errs.Wrap(errs.SetupFailure,
			fmt.Sprintf("post-login marker %s not visible", marks.PostLogin), err)
	}
	return nil
}

// Dispose releases the browser resource. Idempotent, and safe to call
// after a partially failed setup.
func (s *Session) Dispose() {
	s.disposeOnce.Do(func() {
		if s.page != nil {
			_ = s.page.Close()
		}
		if s.browser != nil {
			_ = s.browser.Close()
		}
		if s.pw != nil {
			_ = s.pw.Stop()
		}
		logger.Info("session disposed")
	})
}
