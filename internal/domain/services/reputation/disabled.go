package reputation

import "context"

// Disabled is the no-op reputation capability, selected at startup when
// external lookups are turned off. Every call reports unknown, which the
// detection rules treat identically to a negative result.
type Disabled struct{}

// CommitCount always reports unknown
func (Disabled) CommitCount(ctx context.Context, email string) *int { return nil }

// ProfileFound always reports unknown
func (Disabled) ProfileFound(ctx context.Context, email string) *bool { return nil }
