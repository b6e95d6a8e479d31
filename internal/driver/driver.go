// Package driver abstracts the browser automation capability set the
// harness depends on: navigate, locate, read element state, and dispatch
// click/type/select actions. The core never talks to Playwright directly;
// it goes through these interfaces so locator strategy and driver choice
// stay injectable.
package driver

// Element is a handle to a located page element. State is queried lazily
// so the wait-poll loops can re-check it on every tick.
type Element interface {
	Visible() (bool, error)
	Enabled() (bool, error)
	Text() (string, error)
	InputValue() (string, error)

	Click() error
	// Fill clears the element and types the given text.
	Fill(text string) error
	SelectOption(value string) error
}

// Driver is the minimal browser surface used by the interaction protocol.
type Driver interface {
	// Navigate loads the URL and returns once the DOM is ready.
	Navigate(url string) error
	// Find resolves a locator to an element handle. Resolution is cheap
	// and never blocks; readiness is the wait layer's job.
	Find(locator string) Element
	// Content returns the current page content as text.
	Content() (string, error)
	URL() string
}
