package persistence

import "context"

// AccountStore answers account-level reads the login path needs.
type AccountStore interface {
	// IsSerialBanned reports whether a hardware serial is in the banned
	// set. A pure read; absence means not banned.
	IsSerialBanned(ctx context.Context, serial string) (bool, error)
}

// SettingsStore reads and writes operator-tunable server settings.
type SettingsStore interface {
	// ExpMultiplier returns the current experience multiplier.
	ExpMultiplier(ctx context.Context) (float64, error)

	// SetExpMultiplier overwrites the experience multiplier.
	SetExpMultiplier(ctx context.Context, value float64) error
}
