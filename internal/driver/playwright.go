package driver

import (
	"github.com/playwright-community/playwright-go"
)

// Page adapts a Playwright page to the Driver interface.
type Page struct {
	page    playwright.Page
	timeout float64
}

// NewPage wraps a Playwright page. timeoutMS bounds navigation only;
// element readiness is handled by the wait layer, so element state
// queries use a zero timeout.
func NewPage(page playwright.Page, timeoutMS float64) *Page {
	return &Page{page: page, timeout: timeoutMS}
}

func (p *Page) Navigate(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(p.timeout),
	})
	return err
}

func (p *Page) Find(locator string) Element {
	return &pageElement{locator: p.page.Locator(locator).First()}
}

func (p *Page) Content() (string, error) {
	return p.page.Content()
}

func (p *Page) URL() string {
	return p.page.URL()
}

type pageElement struct {
	locator playwright.Locator
}

func (e *pageElement) Visible() (bool, error) {
	return e.locator.IsVisible()
}

func (e *pageElement) Enabled() (bool, error) {
	return e.locator.IsEnabled()
}

func (e *pageElement) Text() (string, error) {
	return e.locator.TextContent()
}

func (e *pageElement) InputValue() (string, error) {
	return e.locator.InputValue()
}

func (e *pageElement) Click() error {
	return e.locator.Click()
}

func (e *pageElement) Fill(text string) error {
	return e.locator.Fill(text)
}

// SelectOption selects by visible option label. Option values are
// server-generated IDs the suite never sees, so labels are the stable
// handle.
func (e *pageElement) SelectOption(value string) error {
	_, err := e.locator.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{value},
	})
	return err
}
