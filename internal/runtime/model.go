package runtime

// =========================
// Runtime Info Model
// =========================

// Info is the top-level snapshot returned to operators and UIs.
type Info struct {
	Portal  PortalInfo `json:"portal"`
	Version Version    `json:"portal_version"`
	Auth    AuthInfo   `json:"auth"`
	Hub     HubInfo    `json:"hub"`
}

// PortalInfo identifies the portal instance.
type PortalInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Version struct {
	Version   string `json:"version"`   // semantic or incremental
	Checksum  string `json:"checksum"`  // sha256 of runtime payload
	Generated int64  `json:"generated"` // unix timestamp
}

type AuthInfo struct {
	URL           string `json:"url"`
	RolesKey      string `json:"roles_key"`
	RequiredRole  string `json:"required_role"`
	TokenCacheTTL int    `json:"token_cache_ttl"`
}

type HubInfo struct {
	BaseURL       string `json:"base_url"`
	ClientTTL     int    `json:"client_ttl"`
	MaxStoredRows int    `json:"max_stored_rows"`
	RowCapFeature string `json:"row_cap_feature"`
}
