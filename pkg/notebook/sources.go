package notebook

import (
	"encoding/json"
	"errors"
	"os"
)

// ErrInvalidSources is returned when the sources argument is neither valid
// JSON nor a readable file containing valid JSON. The text is part of the
// CLI's result contract.
var ErrInvalidSources = errors.New("Invalid sources JSON")

// ParseSources interprets the sources argument: first as literal JSON, then
// as a path to a JSON file. Both failing is a precondition error; no browser
// is ever launched for it.
func ParseSources(arg string) ([]SourceRequest, error) {
	var requests []SourceRequest
	if err := json.Unmarshal([]byte(arg), &requests); err == nil {
		return requests, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, ErrInvalidSources
	}
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, ErrInvalidSources
	}
	return requests, nil
}
