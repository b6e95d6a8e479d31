// Package drivertest provides a scripted in-memory Driver for unit tests
// of the wait and flow layers. Element readiness is controlled per locator
// so timing behavior can be exercised without a browser.
package drivertest

import (
	"sync"

	"github.com/spendwise/spendwise-e2e/internal/driver"
)

// Fake is an in-memory driver.Driver. Locators resolve against a mutable
// element table; unknown locators resolve to a permanently hidden element.
type Fake struct {
	mu        sync.Mutex
	elements  map[string]*FakeElement
	content   string
	url       string
	Navigated []string

	NavigateErr error
	ContentErr  error
}

func NewFake() *Fake {
	return &Fake{elements: make(map[string]*FakeElement)}
}

// Element returns the scripted element for locator, creating a hidden,
// enabled one on first use.
func (d *Fake) Element(locator string) *FakeElement {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[locator]
	if !ok {
		el = &FakeElement{enabled: true}
		d.elements[locator] = el
	}
	return el
}

// SetContent replaces the page content returned by Content.
func (d *Fake) SetContent(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = content
}

func (d *Fake) Navigate(url string) error {
	if d.NavigateErr != nil {
		return d.NavigateErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	d.Navigated = append(d.Navigated, url)
	return nil
}

func (d *Fake) Find(locator string) driver.Element {
	return d.Element(locator)
}

func (d *Fake) Content() (string, error) {
	if d.ContentErr != nil {
		return "", d.ContentErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content, nil
}

func (d *Fake) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url
}

// FakeElement is a scripted driver.Element.
type FakeElement struct {
	mu           sync.Mutex
	visible      bool
	enabled      bool
	visibleAfter int
	text         string
	input        string

	VisibleErr error
	ClickErr   error
	FillErr    error

	Clicks   int
	Filled   []string
	Selected []string

	// OnClick runs inside Click, letting tests mutate page state in
	// response to an action (e.g. reveal the next dialog).
	OnClick func()
}

// Show makes the element visible immediately.
func (e *FakeElement) Show() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = true
	e.visibleAfter = 0
}

// Hide makes the element invisible.
func (e *FakeElement) Hide() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = false
}

// ShowAfter makes the element report hidden for n Visible() probes, then
// visible, simulating asynchronous rendering.
func (e *FakeElement) ShowAfter(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = false
	e.visibleAfter = n
}

// SetEnabled controls the enabled probe.
func (e *FakeElement) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// SetText sets the text content returned by Text.
func (e *FakeElement) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

func (e *FakeElement) Visible() (bool, error) {
	if e.VisibleErr != nil {
		return false, e.VisibleErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.visibleAfter > 0 {
		e.visibleAfter--
		if e.visibleAfter == 0 {
			e.visible = true
		}
		return false, nil
	}
	return e.visible, nil
}

func (e *FakeElement) Enabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled, nil
}

func (e *FakeElement) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, nil
}

func (e *FakeElement) InputValue() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input, nil
}

func (e *FakeElement) Click() error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.mu.Lock()
	e.Clicks++
	onClick := e.OnClick
	e.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

func (e *FakeElement) Fill(text string) error {
	if e.FillErr != nil {
		return e.FillErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.input = text
	e.Filled = append(e.Filled, text)
	return nil
}

func (e *FakeElement) SelectOption(value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.input = value
	e.Selected = append(e.Selected, value)
	return nil
}
