package notebook

import (
	"time"

	"github.com/entrhq/notebridge/pkg/browser"
	"github.com/entrhq/notebridge/pkg/config"
	"github.com/entrhq/notebridge/pkg/logging"
	"github.com/entrhq/notebridge/pkg/session"
)

// notAuthenticatedError is the precondition failure every automated
// operation reports when no session state exists. Part of the result
// contract.
const notAuthenticatedError = "Not authenticated. Run authentication first."

// Launcher starts one browser runtime. Satisfied by browser.Manager.
type Launcher interface {
	Launch(opts browser.LaunchOptions) (browser.Runtime, error)
}

// Client is the session-replay orchestrator: it wraps one logical operation
// (list or upload) with state load, browser restore, navigation, and the
// persist-and-close guarantee on every exit path.
type Client struct {
	cfg      *config.Config
	store    *session.Store
	launcher Launcher
	workflow *Workflow
	log      *logging.Logger

	// sleep is injectable so tests skip the settle grace.
	sleep func(time.Duration)
}

// NewClient builds an orchestrator. log may be nil.
func NewClient(cfg *config.Config, store *session.Store, launcher Launcher, log *logging.Logger) *Client {
	return &Client{
		cfg:      cfg,
		store:    store,
		launcher: launcher,
		workflow: NewWorkflow(cfg),
		log:      log,
		sleep:    time.Sleep,
	}
}

// List restores the persisted session and reports every notebook title.
func (c *Client) List() ListResult {
	result := ListResult{Success: true, Notebooks: []string{}}

	rt, errMsg := c.open()
	if errMsg != "" {
		return ListResult{Success: false, Notebooks: []string{}, Error: errMsg}
	}
	defer c.finish(rt)

	page, err := c.arrive(rt)
	if err != nil {
		return ListResult{Success: false, Notebooks: []string{}, Error: err.Error()}
	}

	for _, nb := range c.workflow.ListNotebooks(page) {
		result.Notebooks = append(result.Notebooks, nb.Title)
	}
	result.Count = len(result.Notebooks)
	c.infof("listed %d notebooks", result.Count)
	return result
}

// Upload restores the persisted session, resolves or creates the named
// notebook and attaches every requested source, recording per-source
// outcomes. Partial failure is normal: the batch never aborts early.
func (c *Client) Upload(name string, requests []SourceRequest) UploadResult {
	result := UploadResult{
		Success:  true,
		Notebook: name,
		Uploaded: []string{},
		Failed:   []SourceFailure{},
	}

	rt, errMsg := c.open()
	if errMsg != "" {
		result.Success = false
		result.Error = errMsg
		return result
	}
	defer c.finish(rt)

	page, err := c.arrive(rt)
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		return result
	}

	if _, err := c.workflow.Resolve(page, name); err != nil {
		result.Success = false
		result.Error = err.Error()
		return result
	}

	result.Uploaded, result.Failed = c.workflow.UploadAll(page, requests)
	c.infof("upload to %q: %d ok, %d failed", name, len(result.Uploaded), len(result.Failed))
	return result
}

// open runs the preconditions and launches the restored browser. A non-empty
// string return is a structured error message; preconditions fail before any
// browser capability is invoked.
func (c *Client) open() (browser.Runtime, string) {
	if !c.store.Exists() {
		return nil, notAuthenticatedError
	}
	if err := c.store.Lock(); err != nil {
		return nil, err.Error()
	}

	rt, err := c.launcher.Launch(browser.LaunchOptions{
		Headless:       c.cfg.Browser.Headless,
		StatePath:      c.store.Path(),
		ViewportWidth:  c.cfg.Browser.ViewportWidth,
		ViewportHeight: c.cfg.Browser.ViewportHeight,
		DefaultTimeout: c.cfg.Browser.DefaultTimeout,
	})
	if err != nil {
		c.store.Unlock()
		return nil, err.Error()
	}
	return rt, ""
}

// arrive navigates to the app root and waits for the page to settle.
func (c *Client) arrive(rt browser.Runtime) (browser.Page, error) {
	if err := rt.Goto(c.cfg.AppURL); err != nil {
		return nil, err
	}
	if err := rt.WaitSettled(); err != nil {
		return nil, err
	}
	c.sleep(c.cfg.Timing.SettleGrace)
	return rt.Page(), nil
}

// finish persists the possibly-rotated session state and tears the browser
// down. Runs on every exit path once a runtime exists; this is the one place
// cleanup is guaranteed.
func (c *Client) finish(rt browser.Runtime) {
	if err := rt.SaveState(c.store.Path()); err != nil {
		c.warnf("failed to persist session state: %v", err)
	}
	rt.Close()
	c.store.Unlock()
}

func (c *Client) infof(format string, v ...interface{}) {
	if c.log != nil {
		c.log.Infof(format, v...)
	}
}

func (c *Client) warnf(format string, v ...interface{}) {
	if c.log != nil {
		c.log.Warnf(format, v...)
	}
}
