package roles

import (
	"errors"
	"path"
	"strings"
)

// MsgNoApplication is shown when an authenticated user lacks the capability
// role. It must be explicit, never a silent denial.
const MsgNoApplication = "no application registered for user, please reload page to restart login process with another account"

var ErrNotAuthorized = errors.New(MsgNoApplication)

func norm(s string) string { return strings.TrimSpace(s) }

// match supports:
// - exact string
// - wildcard "*" / "?" via path.Match
func match(pattern, value string) bool {
	pattern = norm(pattern)
	value = norm(value)
	if value == "" {
		return false
	}
	if pattern == "" {
		return true
	}
	if strings.ContainsAny(pattern, "*?") {
		ok, _ := path.Match(pattern, value)
		return ok
	}
	return pattern == value
}

// HasCapability reports whether any granted role satisfies the required
// capability pattern (e.g. "hub:read", "hub:*").
func HasCapability(granted []string, capability string) bool {
	for _, r := range granted {
		if match(capability, r) {
			return true
		}
	}
	return false
}

// Authorize gates the download flow on the capability role.
func Authorize(granted []string, capability string) error {
	if capability == "" {
		return nil
	}
	if !HasCapability(granted, capability) {
		return ErrNotAuthorized
	}
	return nil
}
