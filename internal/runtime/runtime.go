package runtime

import (
	"encoding/json"
	"net/http"

	"github.com/academic-hub/csv-portal/internal/config"
	"github.com/academic-hub/csv-portal/internal/flags"
	"github.com/academic-hub/csv-portal/internal/hub"
)

// =========================
// Builder
// =========================

func BuildInfo(cfg *config.Config) Info {
	info := Info{
		Portal: PortalInfo{
			ID:   cfg.Portal.ID,
			Name: cfg.Portal.Name,
		},
		Auth: AuthInfo{
			URL:           cfg.Auth.URL,
			RolesKey:      cfg.Auth.RolesKey,
			RequiredRole:  cfg.Auth.RequiredRole,
			TokenCacheTTL: cfg.Auth.TokenCacheTTL,
		},
		Hub: HubInfo{
			BaseURL:       cfg.Hub.BaseURL,
			ClientTTL:     cfg.Hub.ClientTTL,
			MaxStoredRows: hub.MaxStoredRows,
			RowCapFeature: flags.FeatureStoredRowCap,
		},
	}

	info.Version = BuildVersion(
		struct {
			Auth any
			Hub  any
		}{
			info.Auth,
			info.Hub,
		},
		cfg.Portal.Version,
	)

	return info
}

// =========================
// HTTP Handler
// =========================

func Handler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := BuildInfo(cfg)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Portal-Version", info.Version.Version)
		w.Header().Set("X-Portal-Checksum", info.Version.Checksum)

		_ = json.NewEncoder(w).Encode(info)
	}
}
