package auth

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/academic-hub/csv-portal/internal/cache"
	"github.com/academic-hub/csv-portal/internal/config"
)

// TokenClient exchanges a session id for an access token on the external
// auth endpoint: GET {auth_url}/token with header "hub-id: <session_id>".
type TokenClient struct {
	authURL  string
	rolesKey string
	httpc    *http.Client
	cache    *cache.Cache
	cacheTTL time.Duration
}

// TokenResult is the outcome of one token fetch. Status is surfaced to the
// user verbatim on failure.
type TokenResult struct {
	Status int
	Roles  []string
}

func NewTokenClient(cfg config.Auth, c *cache.Cache) *TokenClient {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		// SECURITY CAVEAT: certificate verification is disabled for the
		// token endpoint. Pre-existing operational choice carried over from
		// the deployed portal; do not enable outside that deployment.
		log.Printf("[AUTH][WARN] TLS verification disabled for token endpoint %s", cfg.URL)
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
		}
	}

	return &TokenClient{
		authURL:  cfg.URL,
		rolesKey: cfg.RolesKey,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		cache:    c,
		cacheTTL: time.Duration(cfg.TokenCacheTTL) * time.Second,
	}
}

// FetchToken performs one token fetch for the session. Results are cached
// keyed by (session, previous status) for a minutes-scale window, so
// repeated clicks before the user's state changes observe the prior result
// instead of issuing a duplicate call.
func (c *TokenClient) FetchToken(ctx context.Context, sessionID string, previousStatus int) (*TokenResult, error) {
	key := cache.Key("token", sessionID, strconv.Itoa(previousStatus))
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.(*TokenResult), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.authURL+"/token", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("hub-id", sessionID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	res := &TokenResult{Status: resp.StatusCode}
	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		roles, err := extractRoles(body, c.rolesKey)
		if err != nil {
			return nil, err
		}
		res.Roles = roles
	}

	log.Printf("[AUTH] token fetch session=%s prev=%d status=%d", sessionID, previousStatus, res.Status)

	if c.cache != nil {
		c.cache.Set(key, res, c.cacheTTL)
	}
	return res, nil
}

// extractRoles pulls the roles list from the token response body under the
// configured key name.
func extractRoles(body []byte, rolesKey string) ([]string, error) {
	var js map[string]any
	if err := json.Unmarshal(body, &js); err != nil {
		return nil, fmt.Errorf("token response: %w", err)
	}

	raw, ok := js[rolesKey]
	if !ok {
		return nil, fmt.Errorf("token response: roles key %q missing", rolesKey)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("token response: roles key %q is not a list", rolesKey)
	}

	roles := make([]string, 0, len(list))
	for _, it := range list {
		s, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("token response: non-string role %v", it)
		}
		roles = append(roles, s)
	}
	return roles, nil
}
