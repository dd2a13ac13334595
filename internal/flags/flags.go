package flags

import "context"

// Feature names used by the portal.
const (
	// FeatureStoredRowCap selects the stored-dataview variant that passes
	// the maximum row cap through to the hub accessor.
	FeatureStoredRowCap = "stored_row_cap"
)

// FeatureFlag decides whether a portal capability is enabled for a session.
type FeatureFlag interface {
	Enabled(ctx context.Context, feature string, session string) bool
}

// NoopFeatureFlag: default implementation (everything on)
// - local development
// - unit tests
type NoopFeatureFlag struct{}

func (NoopFeatureFlag) Enabled(ctx context.Context, feature, session string) bool {
	return true
}
