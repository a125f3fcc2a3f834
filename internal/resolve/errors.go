package resolve

import (
	"errors"
	"fmt"
	"strings"

	"melicalc/internal/meli"
	"melicalc/internal/scrape"
)

// FailureKind classifies why a strategy (or the whole pipeline) failed.
type FailureKind string

// Failure kinds.
const (
	KindTransport      FailureKind = "transport"
	KindParse          FailureKind = "parse"
	KindNotFound       FailureKind = "not_found"
	KindAmbiguousInput FailureKind = "ambiguous_input"
)

// Attempt records one failed strategy so callers can see why each rung
// of the ladder came up empty instead of getting a silent miss.
type Attempt struct {
	Strategy string
	Kind     FailureKind
	Err      error
}

// ResolutionError is the only failure the resolver surfaces: no strategy
// produced a record. It carries every attempt made along the way.
type ResolutionError struct {
	ID       ID
	Kind     FailureKind
	Attempts []Attempt
}

func (e *ResolutionError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("resolving %s: no applicable strategy", e.ID.Value)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return fmt.Sprintf("resolving %s: %s", e.ID.Value, strings.Join(parts, "; "))
}

// classify maps a strategy error to a failure kind. Upstream status and
// network errors are transport failures; missing or malformed page and
// payload data are parse failures.
func classify(err error) FailureKind {
	var statusErr *meli.StatusError
	if errors.As(err, &statusErr) {
		return KindTransport
	}
	if errors.Is(err, scrape.ErrBotChallenge) {
		return KindParse
	}
	if errors.Is(err, errEmptyOffers) {
		return KindParse
	}
	return KindTransport
}
