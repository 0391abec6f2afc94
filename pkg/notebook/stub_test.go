package notebook

import (
	"fmt"
	"time"

	"github.com/entrhq/notebridge/pkg/browser"
)

// stubElement is a recording browser.Element for workflow tests.
type stubElement struct {
	text     string
	children map[string]browser.Element

	clicks  int
	fills   []string
	presses []string
	files   []string

	clickErr error
}

func (e *stubElement) Click() error {
	e.clicks++
	return e.clickErr
}

func (e *stubElement) Fill(value string) error {
	e.fills = append(e.fills, value)
	return nil
}

func (e *stubElement) Press(key string) error {
	e.presses = append(e.presses, key)
	return nil
}

func (e *stubElement) Text() (string, error) {
	return e.text, nil
}

func (e *stubElement) Query(selector string) (browser.Element, error) {
	if el, ok := e.children[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (e *stubElement) SetFiles(path string) error {
	e.files = append(e.files, path)
	return nil
}

// stubPage maps selectors to elements and records every call made against
// it, so tests can assert that precondition failures never touch the UI.
type stubPage struct {
	elements map[string]browser.Element
	lists    map[string][]browser.Element
	calls    []string
}

func newStubPage() *stubPage {
	return &stubPage{
		elements: map[string]browser.Element{},
		lists:    map[string][]browser.Element{},
	}
}

func (p *stubPage) Query(selector string) (browser.Element, error) {
	p.calls = append(p.calls, "query:"+selector)
	if el, ok := p.elements[selector]; ok {
		return el, nil
	}
	return nil, nil
}

func (p *stubPage) QueryAll(selector string) ([]browser.Element, error) {
	p.calls = append(p.calls, "queryAll:"+selector)
	return p.lists[selector], nil
}

func (p *stubPage) WaitFor(selector string, _ time.Duration) (browser.Element, error) {
	p.calls = append(p.calls, "waitFor:"+selector)
	if list := p.lists[selector]; len(list) > 0 {
		return list[0], nil
	}
	if el, ok := p.elements[selector]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("timeout waiting for %s", selector)
}

// stubRuntime is a recording browser.Runtime for orchestrator tests.
type stubRuntime struct {
	page      *stubPage
	gotoURL   string
	settled   bool
	savedPath string
	closed    bool

	gotoErr error
	saveErr error
}

func (r *stubRuntime) Page() browser.Page { return r.page }

func (r *stubRuntime) Goto(url string) error {
	r.gotoURL = url
	return r.gotoErr
}

func (r *stubRuntime) WaitSettled() error {
	r.settled = true
	return nil
}

func (r *stubRuntime) SaveState(path string) error {
	r.savedPath = path
	return r.saveErr
}

func (r *stubRuntime) Close() { r.closed = true }

// stubLauncher counts launches so tests can prove a precondition failure
// never invoked the browser capability.
type stubLauncher struct {
	runtime   *stubRuntime
	launchErr error
	opts      browser.LaunchOptions
	calls     int
}

func (l *stubLauncher) Launch(opts browser.LaunchOptions) (browser.Runtime, error) {
	l.calls++
	l.opts = opts
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	return l.runtime, nil
}
