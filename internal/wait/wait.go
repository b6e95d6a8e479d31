// Package wait implements the poll-until-ready protocol every interaction
// step is built on. Each call blocks the calling goroutine, re-evaluating a
// condition against current page state until it succeeds or the timeout
// elapses. This is latency tolerance for asynchronous rendering, not a
// correctness retry: a step either succeeds within its timeout or the
// owning test case fails.
package wait

import (
	"fmt"
	"strings"
	"time"

	"github.com/spendwise/spendwise-e2e/internal/driver"
	"github.com/spendwise/spendwise-e2e/internal/errs"
)

// Condition is a predicate over current page state. It returns the located
// element (when one is involved), whether the condition holds, and any
// evaluation error. Errors do not abort the poll; the element may simply
// not be attached yet. The last error is reported on timeout.
type Condition func() (driver.Element, bool, error)

// Until evaluates cond every poll interval until it holds or timeout
// elapses. ok=false on return is a valid terminal state for call sites
// validating the absence of an element.
//
// Boundary: success requires the condition to hold strictly before the
// deadline. An evaluation that would begin at or after the deadline is not
// attempted, so a condition first becoming true exactly at the timeout is
// reported as a timeout.
func Until(cond Condition, timeout, poll time.Duration) (driver.Element, bool, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		el, ok, err := cond()
		if err != nil {
			lastErr = err
		} else if ok {
			return el, true, nil
		}
		time.Sleep(poll)
	}
	return nil, false, lastErr
}

// MustElement is Until for call sites that treat the element as mandatory:
// exhaustion becomes an ElementNotFound failure naming the logical step.
func MustElement(step string, cond Condition, timeout, poll time.Duration) (driver.Element, error) {
	el, ok, lastErr := Until(cond, timeout, poll)
	if ok {
		return el, nil
	}
	msg := fmt.Sprintf("element not ready within %s", timeout)
	if lastErr != nil {
		return nil, &errs.Error{Code: errs.ElementNotFound, Step: step, Message: msg, Err: lastErr}
	}
	return nil, errs.Step(errs.ElementNotFound, step, msg)
}

// Visible holds when the locator resolves to a visible element.
func Visible(drv driver.Driver, locator string) Condition {
	return func() (driver.Element, bool, error) {
		el := drv.Find(locator)
		visible, err := el.Visible()
		if err != nil || !visible {
			return nil, false, err
		}
		return el, true, nil
	}
}

// VisibleEnabled holds when the element is both visible and enabled,
// the readiness bar for performing an action on it.
func VisibleEnabled(drv driver.Driver, locator string) Condition {
	return func() (driver.Element, bool, error) {
		el := drv.Find(locator)
		visible, err := el.Visible()
		if err != nil || !visible {
			return nil, false, err
		}
		enabled, err := el.Enabled()
		if err != nil || !enabled {
			return nil, false, err
		}
		return el, true, nil
	}
}

// Gone holds when the locator no longer resolves to a visible element.
func Gone(drv driver.Driver, locator string) Condition {
	return func() (driver.Element, bool, error) {
		visible, err := drv.Find(locator).Visible()
		if err != nil {
			return nil, false, err
		}
		return nil, !visible, nil
	}
}

// TextContains holds when the element is visible and its text contains substr.
func TextContains(drv driver.Driver, locator, substr string) Condition {
	return func() (driver.Element, bool, error) {
		el := drv.Find(locator)
		visible, err := el.Visible()
		if err != nil || !visible {
			return nil, false, err
		}
		text, err := el.Text()
		if err != nil {
			return nil, false, err
		}
		return el, strings.Contains(text, substr), nil
	}
}

// ContentContains holds when the page content does (want=true) or does not
// (want=false) contain substr. No element is returned.
func ContentContains(drv driver.Driver, substr string, want bool) Condition {
	return func() (driver.Element, bool, error) {
		content, err := drv.Content()
		if err != nil {
			return nil, false, err
		}
		return nil, strings.Contains(content, substr) == want, nil
	}
}
