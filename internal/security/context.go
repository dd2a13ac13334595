package security

// ctxKey is an unexported type to prevent collisions
// with context keys from other packages.
type ctxKey string

// CtxKeySessionID is the context key used to store
// the authenticated portal session id.
const CtxKeySessionID ctxKey = "portal_session_id"

// CtxKeyRoles is the context key used to store
// the role list carried by the session token.
const CtxKeyRoles ctxKey = "portal_roles"
