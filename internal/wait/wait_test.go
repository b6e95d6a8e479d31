package wait

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise-e2e/internal/driver"
	"github.com/spendwise/spendwise-e2e/internal/driver/drivertest"
	"github.com/spendwise/spendwise-e2e/internal/errs"
)

const (
	testTimeout = 500 * time.Millisecond
	testPoll    = 5 * time.Millisecond
)

func TestUntil_SucceedsBeforeTimeout(t *testing.T) {
	t.Parallel()

	calls := 0
	cond := Condition(func() (driver.Element, bool, error) {
		calls++
		return nil, calls >= 3, nil
	})

	_, ok, err := Until(cond, testTimeout, testPoll)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
}

func TestUntil_TimeoutReturnsNotOK(t *testing.T) {
	t.Parallel()

	cond := Condition(func() (driver.Element, bool, error) {
		return nil, false, nil
	})

	start := time.Now()
	el, ok, err := Until(cond, 50*time.Millisecond, testPoll)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, el)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestUntil_ReportsLastEvaluationError(t *testing.T) {
	t.Parallel()

	probeErr := errors.New("element detached")
	cond := Condition(func() (driver.Element, bool, error) {
		return nil, false, probeErr
	})

	_, ok, err := Until(cond, 30*time.Millisecond, testPoll)
	assert.False(t, ok)
	assert.Equal(t, probeErr, err)
}

func TestUntil_ErrorsDoNotAbortPolling(t *testing.T) {
	t.Parallel()

	calls := 0
	cond := Condition(func() (driver.Element, bool, error) {
		calls++
		if calls < 3 {
			return nil, false, errors.New("not attached yet")
		}
		return nil, true, nil
	})

	_, ok, err := Until(cond, testTimeout, testPoll)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMustElement_TimeoutIsElementNotFoundWithStep(t *testing.T) {
	t.Parallel()

	cond := Condition(func() (driver.Element, bool, error) {
		return nil, false, nil
	})

	_, err := MustElement("click save button", cond, 30*time.Millisecond, testPoll)
	require.Error(t, err)
	assert.Equal(t, errs.ElementNotFound, errs.CodeOf(err))
	assert.Equal(t, "click save button", errs.StepOf(err))
	assert.Contains(t, err.Error(), "click save button")
}

func TestVisible_WaitsForDeferredRender(t *testing.T) {
	t.Parallel()

	drv := drivertest.NewFake()
	drv.Element("#marker").ShowAfter(4)

	el, err := MustElement("post-login marker", Visible(drv, "#marker"), testTimeout, testPoll)
	require.NoError(t, err)
	require.NotNil(t, el)
}

func TestVisibleEnabled_DisabledElementNeverReady(t *testing.T) {
	t.Parallel()

	drv := drivertest.NewFake()
	btn := drv.Element("#save")
	btn.Show()
	btn.SetEnabled(false)

	_, ok, err := Until(VisibleEnabled(drv, "#save"), 40*time.Millisecond, testPoll)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGone_AbsenceIsValidTerminalState(t *testing.T) {
	t.Parallel()

	drv := drivertest.NewFake()
	row := drv.Element("[data-testid=category-row]")
	row.Show()

	go func() {
		time.Sleep(20 * time.Millisecond)
		row.Hide()
	}()

	_, ok, err := Until(Gone(drv, "[data-testid=category-row]"), testTimeout, testPoll)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTextContains(t *testing.T) {
	t.Parallel()

	drv := drivertest.NewFake()
	cell := drv.Element("[data-testid=txn-amount]")
	cell.Show()
	cell.SetText("-₱ 1,500.00")

	el, err := MustElement("verify amount cell", TextContains(drv, "[data-testid=txn-amount]", "-₱ 1,500.00"), testTimeout, testPoll)
	require.NoError(t, err)
	require.NotNil(t, el)

	_, ok, _ := Until(TextContains(drv, "[data-testid=txn-amount]", "-₱ 2,000.00"), 40*time.Millisecond, testPoll)
	assert.False(t, ok)
}

func TestContentContains_BothPolarities(t *testing.T) {
	t.Parallel()

	drv := drivertest.NewFake()
	drv.SetContent("<td>Jolibee</td>")

	_, ok, err := Until(ContentContains(drv, "Jolibee", true), testTimeout, testPoll)
	require.NoError(t, err)
	assert.True(t, ok)

	go func() {
		time.Sleep(20 * time.Millisecond)
		drv.SetContent("<td>Mcdo</td>")
	}()

	_, ok, err = Until(ContentContains(drv, "Jolibee", false), testTimeout, testPoll)
	require.NoError(t, err)
	assert.True(t, ok)
}
