package store

import (
	"github.com/academic-hub/csv-portal/internal/config"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	cfg    *config.Config
	rdb    *redis.Client
	prefix string
}

// Session is the per-browser-session record. AuthStatus, Roles and ClientKey
// are written once per login attempt; a new login attempt overwrites them.
type Session struct {
	Schema int    `json:"schema"`
	ID     string `json:"id"`

	// AuthStatus is the HTTP status of the last token-endpoint response.
	// 0 means no attempt has been made yet.
	AuthStatus int `json:"auth_status"`

	Roles     []string `json:"roles,omitempty"`
	ClientKey string   `json:"client_key,omitempty"`

	TS struct {
		Created int64 `json:"created"`
		Updated int64 `json:"updated"`
	} `json:"ts"`
}
