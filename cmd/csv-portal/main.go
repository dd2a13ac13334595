package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/academic-hub/csv-portal/internal/audit"
	"github.com/academic-hub/csv-portal/internal/auth"
	"github.com/academic-hub/csv-portal/internal/cache"
	"github.com/academic-hub/csv-portal/internal/config"
	"github.com/academic-hub/csv-portal/internal/flags"
	httpapi "github.com/academic-hub/csv-portal/internal/http"
	"github.com/academic-hub/csv-portal/internal/security"
	"github.com/academic-hub/csv-portal/internal/store"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	cfgPath := os.Getenv("PORTAL_CONFIG")
	if cfgPath == "" {
		cfgPath = "./config/portal.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// audit secret
	secret := ""
	if cfg.Portal.Audit.Enabled {
		secret, err = config.ResolveSecret(cfg.Portal.Audit.SecretRef)
		if err != nil {
			log.Fatalf("resolve audit secret failed: %v", err)
		}
	}
	aud := audit.New(cfg.Portal.Audit.Enabled, secret)

	// redis password
	redisPwd := ""
	if cfg.Redis.AuthRef != "" {
		redisPwd, _ = config.ResolveSecret(cfg.Redis.AuthRef)
	}

	st := store.New(cfg, redisPwd)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := st.Ping(ctx); err != nil {
		log.Printf("redis ping failed: %v", err)
	}

	var ff flags.FeatureFlag = flags.NoopFeatureFlag{}
	if os.Getenv("FEATURE_FLAGS") == "redis" {
		ff = &flags.RedisFeatureFlag{RDB: st.Client()}
	}

	issuer := security.NewJWTIssuer(
		[]byte(cfg.Portal.JWTSecret),
		time.Duration(cfg.Portal.SessionTTL)*time.Second,
	)

	c := cache.New()
	tokens := auth.NewTokenClient(cfg.Auth, c)

	if err := os.MkdirAll(cfg.Portal.DownloadsDir, 0o755); err != nil {
		log.Fatalf("downloads dir: %v", err)
	}

	srv := httpapi.New(cfg, st, aud, issuer, tokens, ff, c)

	addr := fmt.Sprintf("%s:%d", cfg.Portal.Bind.Host, cfg.Portal.Bind.Port)
	log.Printf("starting %s on %s", cfg.Portal.Name, addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
