// Package discount validates discount codes and carries the resulting
// discount state consumed by cart pricing.
package discount

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Kind is the type of discount currently applied.
type Kind string

const (
	KindNone       Kind = "none"
	KindPercentage Kind = "percentage"
)

// User-facing messages reported in State.Error.
const (
	ErrMsgInvalidCode  = "invalid code"
	ErrMsgEmptyCode    = "enter a discount code"
	ErrMsgExpiredCode  = "expired code"
	ErrMsgBelowMinimum = "order total below minimum for this code"
	ErrMsgUnavailable  = "discount codes are unavailable"
)

// State is the outcome of the last discount action. Error and Success are
// never both set, and KindNone always carries a zero Value.
type State struct {
	Kind    Kind   `json:"kind"`
	Value   int64  `json:"value"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// None is the state with no discount and no message.
func None() State {
	return State{Kind: KindNone}
}

func rejected(msg string) State {
	return State{Kind: KindNone, Error: msg}
}

// Amount returns the discount owed on base. The result is truncated toward
// zero and never exceeds base.
func (s State) Amount(base int64) int64 {
	if base <= 0 {
		return 0
	}
	switch s.Kind {
	case KindPercentage:
		pct := s.Value
		if pct <= 0 {
			return 0
		}
		if pct > 100 {
			pct = 100
		}
		// Split to keep base*pct from overflowing.
		return base/100*pct + base%100*pct/100
	case KindNone:
		return 0
	default:
		return 0
	}
}

// Code is one entry in a code registry.
type Code struct {
	Code      string     `yaml:"code" json:"code"`
	Percent   int64      `yaml:"percent" json:"percent"`
	MinTotal  int64      `yaml:"min_total" json:"minTotal,omitempty"`
	ExpiresAt *time.Time `yaml:"expires_at" json:"expiresAt,omitempty"`
}

// Expired reports whether the code has lapsed at now.
func (c Code) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

// Registry looks up codes by their normalized form.
type Registry interface {
	Lookup(ctx context.Context, code string) (Code, bool, error)
}

// Normalize canonicalizes a code as typed by a shopper: NFKC folding (so
// full-width input matches), surrounding space trimmed, upper-cased. Codes
// are therefore matched case-insensitively.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(norm.NFKC.String(code)))
}
