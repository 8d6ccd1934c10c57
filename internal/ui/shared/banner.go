package shared

import (
	"errors"
	"strings"

	"github.com/noelruault/lazyops/internal/api"
)

// Kind classifies the outcome shown in a banner.
type Kind int

const (
	KindNone Kind = iota
	KindSuccess
	KindWarn
	KindDanger
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarn:
		return "warn"
	case KindDanger:
		return "danger"
	default:
		return ""
	}
}

// Banner is the single result display of a panel. Each SetResult call
// replaces the previous outcome.
type Banner struct {
	Kind    Kind
	Message string
}

// SetResult replaces the banner's kind and text.
func SetResult(b *Banner, kind Kind, msg string) {
	if b == nil {
		return
	}
	b.Kind = kind
	b.Message = msg
}

// Clear resets the banner to its empty state.
func (b *Banner) Clear() {
	SetResult(b, KindNone, "")
}

// ToMessage normalizes any error into display text. API errors yield the
// server detail verbatim.
func ToMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if strings.TrimSpace(apiErr.Detail) != "" {
			return apiErr.Detail
		}
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
