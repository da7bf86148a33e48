package service

import "errors"

// ErrNoProfile is returned by operations that need an active profile when
// none exists
var ErrNoProfile = errors.New("no active profile")

// ErrInsufficientStamina blocks actions whose stamina cost exceeds the
// current pool. Nothing is deducted when it is returned.
var ErrInsufficientStamina = errors.New("insufficient stamina")

// ErrNoChange is returned from an update callback to signal that nothing
// was mutated, so the snapshot must not be re-persisted (and, for the
// stamina engine, the regeneration timestamp must not advance)
var ErrNoChange = errors.New("no change")
