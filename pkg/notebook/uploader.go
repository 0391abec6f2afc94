package notebook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/notebridge/pkg/browser"
)

// UploadAll attempts every source request in order. Requests are
// independent: one failure does not abort the batch, it is recorded and the
// loop continues. A pacing delay separates sources regardless of outcome.
func (w *Workflow) UploadAll(page browser.Page, requests []SourceRequest) (uploaded []string, failed []SourceFailure) {
	uploaded = []string{}
	failed = []SourceFailure{}

	for _, request := range requests {
		var err error
		switch request.Type {
		case SourceWebsite:
			err = w.AddWebsite(page, request.Value)
		case SourceFile:
			err = w.AddFile(page, request.Value)
		default:
			err = fmt.Errorf("Unknown source type: %s", request.Type)
		}

		if err != nil {
			failed = append(failed, SourceFailure{Value: request.Value, Error: err.Error()})
		} else {
			uploaded = append(uploaded, request.Value)
		}

		w.sleep(w.timing.SourcePacing)
	}
	return uploaded, failed
}

// AddWebsite drives the add-source choreography for a URL: open the panel,
// pick the website option, fill the URL input and submit with enter. The
// post-submit delay is policy; there is no server-side completion signal.
func (w *Workflow) AddWebsite(page browser.Page, url string) error {
	addButton, err := browser.Locate(page, browser.Target{
		Name:      "Add Source button",
		Selectors: w.selectors.AddSource,
	})
	if err != nil {
		return err
	}
	if err := addButton.Click(); err != nil {
		return fmt.Errorf("failed to open add-source panel: %w", err)
	}
	w.sleep(w.timing.PanelSettle)

	option, err := browser.Locate(page, browser.Target{
		Name:      "Website option",
		Selectors: w.selectors.WebsiteOption,
	})
	if err != nil {
		return err
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("failed to select website option: %w", err)
	}
	w.sleep(w.timing.OptionSettle)

	input, err := browser.Locate(page, browser.Target{
		Name:      "URL input",
		Selectors: w.selectors.URLInput,
	})
	if err != nil {
		return err
	}
	if err := input.Fill(url); err != nil {
		return fmt.Errorf("failed to fill URL: %w", err)
	}
	if err := input.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit URL: %w", err)
	}

	w.sleep(w.timing.WebsiteIngest)
	return nil
}

// AddFile drives the add-source choreography for a local file. Preflight
// checks run before any UI interaction so a dead-end request never opens
// UI state: the path must exist, the file name must match an allowed
// pattern, and PDFs must validate structurally.
func (w *Workflow) AddFile(page browser.Page, path string) error {
	if err := w.preflight(path); err != nil {
		return err
	}

	addButton, err := browser.Locate(page, browser.Target{
		Name:      "Add Source button",
		Selectors: w.selectors.AddSource,
	})
	if err != nil {
		return err
	}
	if err := addButton.Click(); err != nil {
		return fmt.Errorf("failed to open add-source panel: %w", err)
	}
	w.sleep(w.timing.PanelSettle)

	// Some UI revisions skip the explicit upload option and expose the file
	// input directly, so its absence is not fatal.
	option, err := browser.Locate(page, browser.Target{
		Name:      "Upload option",
		Selectors: w.selectors.UploadOption,
	})
	if err == nil {
		if clickErr := option.Click(); clickErr != nil {
			return fmt.Errorf("failed to select upload option: %w", clickErr)
		}
		w.sleep(w.timing.OptionSettle)
	} else if !browser.IsNotFound(err) {
		return err
	}

	input, err := browser.Locate(page, browser.Target{
		Name:      "file input",
		Selectors: w.selectors.FileInput,
	})
	if err != nil {
		return err
	}
	if err := input.SetFiles(path); err != nil {
		return fmt.Errorf("failed to submit file: %w", err)
	}

	w.sleep(w.timing.FileIngest)
	return nil
}

func (w *Workflow) preflight(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("File not found: %s", path)
	}

	base := filepath.Base(path)
	if !w.allowedFile(base) {
		return fmt.Errorf("Unsupported file type: %s", base)
	}

	if strings.HasSuffix(strings.ToLower(base), ".pdf") {
		if err := w.checkPDF(path); err != nil {
			return fmt.Errorf("Invalid PDF %s: %v", base, err)
		}
	}
	return nil
}

func (w *Workflow) allowedFile(base string) bool {
	if len(w.allowed) == 0 {
		return true
	}
	lowered := strings.ToLower(base)
	for _, g := range w.allowed {
		if g.Match(lowered) {
			return true
		}
	}
	return false
}
