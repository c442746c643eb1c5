package discount

import (
	"context"
	"time"

	"storefront/pkg/logger"
)

// Validator turns a typed code into a discount State using a Registry.
type Validator struct {
	registry Registry
	log      *logger.Logger
	now      func() time.Time
}

// NewValidator returns a Validator backed by r.
func NewValidator(r Registry, log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Nop()
	}
	return &Validator{registry: r, log: log, now: time.Now}
}

// Apply validates code against the registry and currentTotal. It never
// returns a Go error: every rejection is reported through State.Error and
// clears any discount previously in effect. Applying the same valid code
// repeatedly yields the same state.
func (v *Validator) Apply(ctx context.Context, code string, currentTotal int64) State {
	code = Normalize(code)
	if code == "" {
		return rejected(ErrMsgEmptyCode)
	}

	entry, ok, err := v.registry.Lookup(ctx, code)
	if err != nil {
		v.log.Warn(ctx, "discount lookup failed", "code", code, "error", err)
		return rejected(ErrMsgUnavailable)
	}
	if !ok || entry.Percent <= 0 || entry.Percent > 100 {
		v.log.Debug(ctx, "discount code rejected", "code", code)
		return rejected(ErrMsgInvalidCode)
	}
	if entry.Expired(v.now()) {
		return rejected(ErrMsgExpiredCode)
	}
	if entry.MinTotal > 0 && currentTotal < entry.MinTotal {
		return rejected(ErrMsgBelowMinimum)
	}

	return State{
		Kind:    KindPercentage,
		Value:   entry.Percent,
		Code:    code,
		Success: true,
	}
}

// Clear drops any applied discount.
func (v *Validator) Clear() State {
	return None()
}
