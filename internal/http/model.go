package httpapi

import (
	"github.com/academic-hub/csv-portal/internal/audit"
	"github.com/academic-hub/csv-portal/internal/auth"
	"github.com/academic-hub/csv-portal/internal/cache"
	"github.com/academic-hub/csv-portal/internal/config"
	"github.com/academic-hub/csv-portal/internal/flags"
	"github.com/academic-hub/csv-portal/internal/hub"
	"github.com/academic-hub/csv-portal/internal/security"
	"github.com/academic-hub/csv-portal/internal/store"
)

type Server struct {
	cfg    *config.Config
	st     *store.Store
	audit  *audit.Logger
	issuer *security.JWTIssuer
	tokens *auth.TokenClient
	flags  flags.FeatureFlag
	// cache holds token results, hub clients (1h) and dataview results
	// (argument-keyed, no expiry)
	cache *cache.Cache
}

// SessionResp describes a portal session to the UI.
type SessionResp struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	LoginURL  string `json:"login_url,omitempty"`
	TTL       int    `json:"ttl,omitempty"`
}

// LoginReq is the "login completed" confirmation. The portal cannot observe
// the external identity flow; the user asserts it finished.
type LoginReq struct {
	SessionID string `json:"session_id"`
}

type LoginResp struct {
	SessionID  string   `json:"session_id"`
	State      string   `json:"state"`
	AuthStatus int      `json:"auth_status"`
	Token      string   `json:"token,omitempty"`
	ExpiresIn  int64    `json:"expires_in,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	Message    string   `json:"message,omitempty"`
	LoginURL   string   `json:"login_url,omitempty"`
}

// FetchReq is one form submission of the download flow.
type FetchReq struct {
	Dataset       string `json:"dataset"`
	Asset         string `json:"asset"`
	Start         string `json:"start"`
	Window        string `json:"window"`
	Kind          string `json:"kind"`
	Interpolation string `json:"interpolation,omitempty"`
	Resume        bool   `json:"resume,omitempty"`
}

type FetchResp struct {
	Rows          int        `json:"rows"`
	Start         string     `json:"start"`
	End           string     `json:"end"`
	Columns       []string   `json:"columns,omitempty"`
	Preview       [][]string `json:"preview,omitempty"`
	NoData        bool       `json:"no_data,omitempty"`
	DataRemaining bool       `json:"data_remaining,omitempty"`
	Warning       string     `json:"warning,omitempty"`
	Download      string     `json:"download,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// fetchResult is what the dataview cache stores: the table plus the
// remaining-data flag observed right after the fetch.
type fetchResult struct {
	table     *hub.Table
	remaining bool
}
