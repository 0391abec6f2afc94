package notebook

import "github.com/entrhq/notebridge/pkg/browser"

// SourceType discriminates what a source request's value means.
type SourceType string

const (
	// SourceWebsite submits the value as a URL.
	SourceWebsite SourceType = "website"

	// SourceFile submits the value as a local file path.
	SourceFile SourceType = "file"
)

// SourceRequest is one unit of content to attach to a notebook. Consumed
// once per upload attempt; never persisted.
type SourceRequest struct {
	Type  SourceType `json:"type"`
	Value string     `json:"value"`
}

// SourceFailure records why one source could not be uploaded.
type SourceFailure struct {
	Value string `json:"value"`
	Error string `json:"error"`
}

// UploadResult is the terminal output of one upload invocation.
type UploadResult struct {
	Success  bool            `json:"success"`
	Notebook string          `json:"notebook"`
	Uploaded []string        `json:"uploaded"`
	Failed   []SourceFailure `json:"failed"`
	Error    string          `json:"error,omitempty"`
}

// ListResult is the terminal output of one list invocation.
type ListResult struct {
	Success   bool     `json:"success"`
	Notebooks []string `json:"notebooks"`
	Count     int      `json:"count"`
	Error     string   `json:"error,omitempty"`
}

// Notebook is an ephemeral handle to a notebook in the target application:
// its title plus the live card element. Valid only within the current
// browser session; runs re-resolve by title, never by stored handle.
type Notebook struct {
	Title string
	card  browser.Element
}
