package browser

import (
	"errors"
	"fmt"
)

// Target names one logical UI control together with the ordered selector
// strategies that may locate it. The target application is unversioned and
// may expose semantic test-id attributes, visible text, or neither; trying
// strategies in order tolerates UI drift without modelling the full
// accessibility tree.
type Target struct {
	// Name describes the control for error messages, e.g. "Add Source button".
	Name string

	// Selectors are tried in order; the first non-nil match wins.
	Selectors []string
}

// NotFoundError reports that no strategy located a target. The message names
// the missing control so upload failures identify which step broke.
type NotFoundError struct {
	Target string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s", e.Target)
}

// IsNotFound reports whether err is a locator not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Locate tries each of the target's selector strategies once against the
// current DOM and returns the first match. No strategy is retried; transient
// absence is distinguished from permanent absence only by upstream bounded
// waits where those are configured.
func Locate(page Page, target Target) (Element, error) {
	for _, selector := range target.Selectors {
		element, err := page.Query(selector)
		if err != nil {
			return nil, fmt.Errorf("query %q for %s: %w", selector, target.Name, err)
		}
		if element != nil {
			return element, nil
		}
	}
	return nil, &NotFoundError{Target: target.Name}
}

// LocateIn tries the target's strategies scoped under a parent element.
func LocateIn(parent Element, target Target) (Element, error) {
	for _, selector := range target.Selectors {
		element, err := parent.Query(selector)
		if err != nil {
			return nil, fmt.Errorf("query %q for %s: %w", selector, target.Name, err)
		}
		if element != nil {
			return element, nil
		}
	}
	return nil, &NotFoundError{Target: target.Name}
}
