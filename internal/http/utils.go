package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/academic-hub/csv-portal/internal/audit"
	"github.com/academic-hub/csv-portal/internal/auth"
	"github.com/academic-hub/csv-portal/internal/cache"
	"github.com/academic-hub/csv-portal/internal/config"
	"github.com/academic-hub/csv-portal/internal/flags"
	"github.com/academic-hub/csv-portal/internal/hub"
	"github.com/academic-hub/csv-portal/internal/security"
	"github.com/academic-hub/csv-portal/internal/store"
	"github.com/academic-hub/csv-portal/internal/timewindow"
)

func New(
	cfg *config.Config,
	st *store.Store,
	aud *audit.Logger,
	issuer *security.JWTIssuer,
	tokens *auth.TokenClient,
	ff flags.FeatureFlag,
	c *cache.Cache,
) *Server {
	return &Server{
		cfg:    cfg,
		st:     st,
		audit:  aud,
		issuer: issuer,
		tokens: tokens,
		flags:  ff,
		cache:  c,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(v)
}

// session loads the record for the authenticated session id on the request
// context. A missing record means the redis TTL ran out.
func (s *Server) session(r *http.Request) (*store.Session, error) {
	id := security.SessionIDFrom(r.Context())
	if id == "" {
		return nil, fmt.Errorf("no session on request")
	}
	sess, _, err := s.st.GetSessionFull(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session %s expired", id)
	}
	return sess, nil
}

// dataviewKey identifies one cached fetch result. Everything that changes
// what the hub returns is part of the key, including whether the stored row
// cap was enforced for this request.
func dataviewKey(req FetchReq, wnd timewindow.Window, kind hub.Kind, enforceCap bool) string {
	return cache.Key("dataview", req.Dataset, req.Asset, wnd.StartISO(), wnd.EndISO(),
		string(kind), req.Interpolation,
		strconv.FormatBool(req.Resume), strconv.FormatBool(enforceCap))
}

// hubClient returns the cached hub client for a client key, constructing
// (and catalog-refreshing) it on miss. Construction is expensive, hence the
// hour-scale TTL.
func (s *Server) hubClient(ctx context.Context, clientKey string) (*hub.Client, error) {
	key := cache.Key("hub-client", clientKey)
	if v, ok := s.cache.Get(key); ok {
		return v.(*hub.Client), nil
	}

	c, err := hub.NewClient(ctx, s.cfg.Hub.BaseURL, clientKey,
		time.Duration(s.cfg.Hub.TimeoutSec)*time.Second)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, c, time.Duration(s.cfg.Hub.ClientTTL)*time.Second)
	return c, nil
}
