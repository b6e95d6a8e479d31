// Package flow executes multi-step UI workflows: ordered interaction
// steps, sequential confirmation dialog dismissal, and post-condition
// verification. A workflow run moves through
// PageReady → steps → confirmations → Verified, failing on the first
// step whose element never becomes ready.
package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/spendwise/spendwise-e2e/internal/config"
	"github.com/spendwise/spendwise-e2e/internal/driver"
	"github.com/spendwise/spendwise-e2e/internal/errs"
	"github.com/spendwise/spendwise-e2e/internal/obs"
	"github.com/spendwise/spendwise-e2e/internal/wait"
)

var logger = obs.Pkg("flow")

// Action is the single interaction a step performs once its element is
// visible and enabled.
type Action int

const (
	Click Action = iota
	Fill
	SelectOption
)

func (a Action) String() string {
	switch a {
	case Click:
		return "click"
	case Fill:
		return "fill"
	case SelectOption:
		return "select"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Step pairs a readiness condition (the locator must be visible and
// enabled) with one action. Label names the step in failures; steps are
// visually identical but semantically distinct, so the label is what
// makes a timeout diagnosable.
type Step struct {
	Label   string
	Locator string
	Action  Action
	Value   string // Fill text or SelectOption value
}

// ClickStep builds a click step.
func ClickStep(label, locator string) Step {
	return Step{Label: label, Locator: locator, Action: Click}
}

// FillStep builds a clear-and-type step.
func FillStep(label, locator, text string) Step {
	return Step{Label: label, Locator: locator, Action: Fill, Value: text}
}

// SelectStep builds a select-option step.
func SelectStep(label, locator, value string) Step {
	return Step{Label: label, Locator: locator, Action: SelectOption, Value: value}
}

// ConfirmButtonLocator targets the OK button of the topmost visible
// confirmation dialog. Keyed off a stable test id rather than a fixed
// tree position so a dialog rendered elsewhere still resolves.
const ConfirmButtonLocator = "[data-testid=confirm-ok]"

// Runner drives workflows against one driver with one wait policy.
type Runner struct {
	drv driver.Driver
	cfg config.Suite

	confirmLocator string
}

// NewRunner creates a workflow runner. The confirmation dialog locator
// defaults to ConfirmButtonLocator and is injectable for applications
// with different dialog markup.
func NewRunner(drv driver.Driver, cfg config.Suite) *Runner {
	return &Runner{drv: drv, cfg: cfg, confirmLocator: ConfirmButtonLocator}
}

// WithConfirmLocator overrides the confirmation dialog button locator.
func (r *Runner) WithConfirmLocator(locator string) *Runner {
	r.confirmLocator = locator
	return r
}

// Driver exposes the underlying driver for condition building.
func (r *Runner) Driver() driver.Driver {
	return r.drv
}

// Navigate loads baseURL+path and blocks until readyLocator is visible.
func (r *Runner) Navigate(baseURL, path, readyLocator string) error {
	url := baseURL + path
	if err := r.drv.Navigate(url); err != nil {
		return errs.Wrap(errs.ElementNotFound, fmt.Sprintf("navigate to %s", path), err)
	}
	_, err := wait.MustElement(
		fmt.Sprintf("page ready after navigating to %s", path),
		wait.Visible(r.drv, readyLocator),
		r.cfg.WaitTimeout, r.cfg.PollInterval,
	)
	return err
}

// Run executes steps in order. Each step waits for its element to be
// visible and enabled, then performs exactly one action. The first step
// whose element is not ready within the timeout fails the run with an
// ElementNotFound naming the step.
func (r *Runner) Run(steps []Step) error {
	for i, step := range steps {
		el, err := wait.MustElement(step.Label,
			wait.VisibleEnabled(r.drv, step.Locator),
			r.cfg.WaitTimeout, r.cfg.PollInterval)
		if err != nil {
			return err
		}

		switch step.Action {
		case Click:
			err = el.Click()
		case Fill:
			err = el.Fill(step.Value)
		case SelectOption:
			err = el.SelectOption(step.Value)
		default:
			return errs.Step(errs.InvalidArgument, step.Label, fmt.Sprintf("unknown action %d", int(step.Action)))
		}
		if err != nil {
			return &errs.Error{
				Code:    errs.InteractionTimeout,
				Step:    step.Label,
				Message: fmt.Sprintf("%s %s failed", step.Action, step.Locator),
				Err:     err,
			}
		}
		logger.Debug("step completed", "index", i, "label", step.Label, "action", step.Action.String())
	}
	return nil
}

// ConfirmDialogs waits for and dismisses exactly count confirmation
// dialogs in sequence, sleeping the settle delay between dismissals so
// the next dialog can render. count=0 is a no-op. A dialog that never
// appears raises an InteractionTimeout naming its index (1-based).
func (r *Runner) ConfirmDialogs(count int) error {
	if count < 0 {
		return errs.New(errs.InvalidArgument, "dialog count must not be negative")
	}
	for i := 1; i <= count; i++ {
		label := fmt.Sprintf("confirmation dialog %d of %d", i, count)
		el, ok, lastErr := wait.Until(
			wait.VisibleEnabled(r.drv, r.confirmLocator),
			r.cfg.WaitTimeout, r.cfg.PollInterval,
		)
		if !ok {
			return &errs.Error{
				Code:    errs.InteractionTimeout,
				Step:    label,
				Message: fmt.Sprintf("dialog did not appear within %s", r.cfg.WaitTimeout),
				Err:     lastErr,
			}
		}
		if err := el.Click(); err != nil {
			return &errs.Error{
				Code:    errs.InteractionTimeout,
				Step:    label,
				Message: "dismissing dialog failed",
				Err:     err,
			}
		}
		logger.Debug("dialog dismissed", "index", i, "count", count)
		if i < count {
			time.Sleep(r.cfg.DialogSettle)
		}
	}
	return nil
}

// VerifyText passes once the element's text contains want.
func (r *Runner) VerifyText(locator, want string) error {
	_, ok, lastErr := wait.Until(
		wait.TextContains(r.drv, locator, want),
		r.cfg.WaitTimeout, r.cfg.PollInterval,
	)
	if ok {
		return nil
	}
	actual, _ := r.drv.Find(locator).Text()
	return &errs.Error{
		Code:    errs.AssertionFailure,
		Step:    fmt.Sprintf("verify text of %s", locator),
		Message: fmt.Sprintf("want %q in element text, got %q", want, strings.TrimSpace(actual)),
		Err:     lastErr,
	}
}

// VerifyContains passes once the page content contains substr.
func (r *Runner) VerifyContains(substr string) error {
	return r.verifyContent(substr, true)
}

// VerifyNotContains passes once the page content no longer contains
// substr. Absence is the expected terminal state here, so the underlying
// wait's zero result is success, not failure.
func (r *Runner) VerifyNotContains(substr string) error {
	return r.verifyContent(substr, false)
}

func (r *Runner) verifyContent(substr string, want bool) error {
	_, ok, lastErr := wait.Until(
		wait.ContentContains(r.drv, substr, want),
		r.cfg.WaitTimeout, r.cfg.PollInterval,
	)
	if ok {
		return nil
	}
	polarity := "contain"
	if !want {
		polarity = "stop containing"
	}
	return &errs.Error{
		Code:    errs.AssertionFailure,
		Step:    "verify page content",
		Message: fmt.Sprintf("page did not %s %q within %s", polarity, substr, r.cfg.WaitTimeout),
		Err:     lastErr,
	}
}
