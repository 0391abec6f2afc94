package notebook

import (
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/entrhq/notebridge/pkg/browser"
	"github.com/entrhq/notebridge/pkg/config"
)

// Workflow drives the notebook UI: listing and resolving notebooks and
// uploading sources. It holds the selector strategies and timing policy but
// no browser state; every method takes the page it operates on.
type Workflow struct {
	selectors config.SelectorConfig
	timing    config.TimingConfig
	allowed   []glob.Glob

	// sleep is the settle-delay primitive, injectable so tests run fast.
	sleep func(time.Duration)

	// checkPDF validates a .pdf source before any UI interaction.
	checkPDF func(path string) error
}

// NewWorkflow builds a workflow from configuration. Allowed-pattern globs
// were validated by config.Validate; invalid ones are skipped here.
func NewWorkflow(cfg *config.Config) *Workflow {
	var allowed []glob.Glob
	for _, pattern := range cfg.Upload.AllowedPatterns {
		if g, err := glob.Compile(pattern); err == nil {
			allowed = append(allowed, g)
		}
	}

	checkPDF := func(string) error { return nil }
	if cfg.Upload.ValidatePDF {
		checkPDF = func(path string) error {
			return api.ValidateFile(path, nil)
		}
	}

	return &Workflow{
		selectors: cfg.Selectors,
		timing:    cfg.Timing,
		allowed:   allowed,
		sleep:     time.Sleep,
		checkPDF:  checkPDF,
	}
}

// ListNotebooks waits for the notebook card pattern to render and extracts
// each card's title. A wait that expires means zero notebooks, not an error;
// a card without a title element is "Untitled".
func (w *Workflow) ListNotebooks(page browser.Page) []Notebook {
	if _, err := page.WaitFor(w.selectors.NotebookCard[0], w.timing.NotebookListWait); err != nil {
		return nil
	}

	var cards []browser.Element
	for _, selector := range w.selectors.NotebookCard {
		found, err := page.QueryAll(selector)
		if err == nil && len(found) > 0 {
			cards = found
			break
		}
	}

	notebooks := make([]Notebook, 0, len(cards))
	for _, card := range cards {
		title := "Untitled"
		titleEl, err := browser.LocateIn(card, browser.Target{
			Name:      "notebook title",
			Selectors: w.selectors.NotebookTitle,
		})
		if err == nil {
			if text, textErr := titleEl.Text(); textErr == nil && strings.TrimSpace(text) != "" {
				title = strings.TrimSpace(text)
			}
		}
		notebooks = append(notebooks, Notebook{Title: title, card: card})
	}
	return notebooks
}

// Resolve selects the notebook whose title matches name case-insensitively,
// or creates one. The first match wins; duplicate titles are an accepted
// ambiguity. Creation-control absence fails the whole operation.
func (w *Workflow) Resolve(page browser.Page, name string) (*Notebook, error) {
	for _, nb := range w.ListNotebooks(page) {
		if strings.EqualFold(nb.Title, name) {
			if err := nb.card.Click(); err != nil {
				return nil, fmt.Errorf("failed to open notebook %q: %w", nb.Title, err)
			}
			w.sleep(w.timing.OpenSettle)
			return &nb, nil
		}
	}
	return w.create(page, name)
}

func (w *Workflow) create(page browser.Page, name string) (*Notebook, error) {
	control, err := browser.Locate(page, browser.Target{
		Name:      "create notebook control",
		Selectors: w.selectors.CreateNotebook,
	})
	if err != nil {
		return nil, fmt.Errorf("Could not create notebook")
	}
	if err := control.Click(); err != nil {
		return nil, fmt.Errorf("Could not create notebook")
	}
	w.sleep(w.timing.CreateSettle)

	// A name prompt may or may not appear in the creation flow.
	input, err := browser.Locate(page, browser.Target{
		Name:      "notebook name input",
		Selectors: w.selectors.NotebookNameInput,
	})
	if err == nil {
		if err := input.Fill(name); err != nil {
			return nil, fmt.Errorf("failed to name notebook: %w", err)
		}
		if err := input.Press("Enter"); err != nil {
			return nil, fmt.Errorf("failed to name notebook: %w", err)
		}
		w.sleep(w.timing.NameSettle)
	} else if !browser.IsNotFound(err) {
		return nil, err
	}

	return &Notebook{Title: name}, nil
}
