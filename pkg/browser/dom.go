package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Page is the subset of page operations the notebook workflows need. The
// Playwright page satisfies it through pageAdapter; tests provide stubs.
type Page interface {
	// Query returns the first element matching the selector, or nil when
	// nothing matches. A nil element with a nil error is the "not found"
	// case, not a failure.
	Query(selector string) (Element, error)

	// QueryAll returns every element matching the selector.
	QueryAll(selector string) ([]Element, error)

	// WaitFor blocks until an element matching the selector is visible or
	// the timeout expires. Expiry returns an error.
	WaitFor(selector string, timeout time.Duration) (Element, error)
}

// Element is the subset of element operations the workflows need.
type Element interface {
	Click() error
	Fill(value string) error
	Press(key string) error
	Text() (string, error)
	Query(selector string) (Element, error)
	SetFiles(path string) error
}

// pageAdapter narrows a Playwright page to the Page interface.
type pageAdapter struct {
	page playwright.Page
}

// AdaptPage wraps a Playwright page for the workflow layer.
func AdaptPage(page playwright.Page) Page {
	return &pageAdapter{page: page}
}

func (a *pageAdapter) Query(selector string) (Element, error) {
	handle, err := a.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return &elementAdapter{handle: handle}, nil
}

func (a *pageAdapter) QueryAll(selector string) ([]Element, error) {
	handles, err := a.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(handles))
	for _, handle := range handles {
		elements = append(elements, &elementAdapter{handle: handle})
	}
	return elements, nil
}

func (a *pageAdapter) WaitFor(selector string, timeout time.Duration) (Element, error) {
	handle, err := a.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return &elementAdapter{handle: handle}, nil
}

// elementAdapter narrows a Playwright element handle to the Element interface.
type elementAdapter struct {
	handle playwright.ElementHandle
}

func (a *elementAdapter) Click() error {
	return a.handle.Click()
}

func (a *elementAdapter) Fill(value string) error {
	return a.handle.Fill(value)
}

func (a *elementAdapter) Press(key string) error {
	return a.handle.Press(key)
}

func (a *elementAdapter) Text() (string, error) {
	return a.handle.TextContent()
}

func (a *elementAdapter) Query(selector string) (Element, error) {
	handle, err := a.handle.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	return &elementAdapter{handle: handle}, nil
}

func (a *elementAdapter) SetFiles(path string) error {
	return a.handle.SetInputFiles(path)
}
