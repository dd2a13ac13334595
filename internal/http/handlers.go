package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/academic-hub/csv-portal/internal/auth"
	"github.com/academic-hub/csv-portal/internal/csvout"
	"github.com/academic-hub/csv-portal/internal/flags"
	"github.com/academic-hub/csv-portal/internal/hub"
	"github.com/academic-hub/csv-portal/internal/roles"
	"github.com/academic-hub/csv-portal/internal/runtime"
	"github.com/academic-hub/csv-portal/internal/security"
	"github.com/academic-hub/csv-portal/internal/store"
	"github.com/academic-hub/csv-portal/internal/timewindow"
)

const previewRows = 10

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Swagger MUST be registered first or anywhere on the SAME router
	registerSwagger(r)

	// @Summary Service status
	// @Tags System
	// @Produce json
	// @Success 200 {object} map[string]interface{} "status=ok"
	// @Router / [get]
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"status":  "ok",
			"name":    s.cfg.Portal.Name,
			"version": s.cfg.Portal.Version,
		})
	})

	// @Summary Health check
	// @Description Reports redis connectivity
	// @Tags System
	// @Produce json
	// @Success 200 {object} map[string]interface{} "status, redis_ping"
	// @Router /healthz [get]
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		err := s.st.Ping(r.Context())
		writeJSON(w, 200, map[string]any{
			"status":     "ok",
			"redis_ping": err == nil,
		})
	})

	r.Post("/portal/session", s.createSession)
	r.Post("/portal/login", s.completeLogin)
	r.Get("/portal/status/{id}", s.sessionStatus)

	// @Summary Runtime snapshot
	// @Tags System
	// @Produce json
	// @Success 200 {object} map[string]interface{}
	// @Router /api/v1/runtime [get]
	r.Get("/api/v1/runtime", runtime.Handler(s.cfg))

	// download flow: session token + capability role required
	r.Group(func(pr chi.Router) {
		pr.Use(security.SessionAuthMiddleware(s.issuer))
		pr.Use(security.RequireCapability(s.cfg.Auth.RequiredRole))

		pr.Get("/api/v1/datasets", s.listDatasets)
		pr.Get("/api/v1/datasets/{dataset}/assets", s.listAssets)
		pr.Get("/api/v1/datasets/{dataset}/assets/{asset}/dataviews", s.listDataviews)
		pr.Get("/api/v1/datasets/{dataset}/assets/{asset}/metadata", s.assetMetadata)
		pr.Post("/api/v1/fetch", s.fetchDataview)
		pr.Post("/api/v1/fetch/csv", s.fetchDataviewCSV)
	})

	// static CSV artifacts
	fileServer := http.StripPrefix("/downloads/", http.FileServer(http.Dir(s.cfg.Portal.DownloadsDir)))
	r.Get("/downloads/*", fileServer.ServeHTTP)

	return r
}

// createSession mints the per-browser-session record.
// @Summary Create portal session
// @Tags Portal
// @Produce json
// @Success 200 {object} SessionResp
// @Router /portal/session [post]
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess := store.Session{ID: uuid.NewString()}
	if err := s.st.SetSession(ctx, sess, s.cfg.Portal.SessionTTL); err != nil {
		log.Printf("[SESSION][ERROR] create: %v", err)
		writeJSON(w, 500, ErrorResponse{Error: "session create failed"})
		return
	}

	log.Printf("[SESSION] create id=%s", sess.ID)
	s.audit.Write(map[string]any{
		"event":   "session.create",
		"session": sess.ID,
	})

	writeJSON(w, 200, SessionResp{
		SessionID: sess.ID,
		State:     auth.StateNoAttempt.String(),
		LoginURL:  auth.LoginURL(s.cfg.Auth.URL, sess.ID),
		TTL:       s.cfg.Portal.SessionTTL,
	})
}

// completeLogin handles the user's "login completed" confirmation: one token
// fetch, then a state transition.
// @Summary Complete login
// @Description Exchanges the session id for an access token on the external endpoint
// @Tags Portal
// @Accept json
// @Produce json
// @Param body body LoginReq true "login confirmation"
// @Success 200 {object} LoginResp
// @Failure 400 {object} ErrorResponse "bad_json"
// @Failure 404 {object} ErrorResponse "session_not_found"
// @Router /portal/login [post]
func (s *Server) completeLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, 400, ErrorResponse{Error: "bad_json"})
		return
	}
	if req.SessionID == "" {
		writeJSON(w, 422, ErrorResponse{Error: "session_id required"})
		return
	}

	sess, _, err := s.st.GetSessionFull(ctx, req.SessionID)
	if err != nil {
		writeJSON(w, 500, ErrorResponse{Error: "session lookup failed"})
		return
	}
	if sess == nil {
		writeJSON(w, 404, ErrorResponse{Error: "session_not_found"})
		return
	}

	// Pending while the single token fetch is in flight. The token client
	// caches by (session, previous status), so duplicate confirmations
	// within the window resolve to the same result.
	prev := sess.AuthStatus
	log.Printf("[LOGIN] session=%s state=%s", sess.ID, auth.StatePending)

	res, err := s.tokens.FetchToken(ctx, sess.ID, prev)
	if err != nil {
		log.Printf("[LOGIN][ERROR] session=%s err=%v", sess.ID, err)
		writeJSON(w, 502, ErrorResponse{Error: "token endpoint unreachable"})
		return
	}

	sess.AuthStatus = res.Status
	if res.Status == http.StatusOK {
		sess.Roles = res.Roles
		sess.ClientKey = s.cfg.Auth.SecretRead
	}
	if err := s.st.SetSession(ctx, *sess, s.cfg.Portal.SessionTTL); err != nil {
		writeJSON(w, 500, ErrorResponse{Error: "session update failed"})
		return
	}

	s.audit.Write(map[string]any{
		"event":   "portal.token",
		"session": sess.ID,
		"status":  res.Status,
	})

	state := auth.StateOf(sess)
	resp := LoginResp{
		SessionID:  sess.ID,
		State:      state.String(),
		AuthStatus: res.Status,
	}

	switch state {
	case auth.StateAuthenticated:
		token, expiresIn, err := s.issuer.Issue(ctx, sess.ID, sess.Roles)
		if err != nil {
			writeJSON(w, 500, ErrorResponse{Error: "token issue failed"})
			return
		}
		resp.Token = token
		resp.ExpiresIn = expiresIn
		resp.Roles = sess.Roles
		if !roles.HasCapability(sess.Roles, s.cfg.Auth.RequiredRole) {
			resp.Message = roles.MsgNoApplication
		}
	case auth.StateNoAttempt:
		// 400 from the token endpoint: the external login has not happened
		// yet, show the link again
		resp.LoginURL = auth.LoginURL(s.cfg.Auth.URL, sess.ID)
		resp.Message = auth.DeniedMessage(res.Status)
	default:
		resp.Message = auth.DeniedMessage(res.Status)
	}

	log.Printf("[LOGIN] session=%s status=%d state=%s", sess.ID, res.Status, state)
	writeJSON(w, 200, resp)
}

// @Summary Session status
// @Tags Portal
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} SessionResp
// @Failure 404 {object} ErrorResponse
// @Router /portal/status/{id} [get]
func (s *Server) sessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sess, ttl, err := s.st.GetSessionFull(ctx, id)
	if err != nil {
		writeJSON(w, 500, ErrorResponse{Error: "session lookup failed"})
		return
	}
	if sess == nil {
		writeJSON(w, 404, ErrorResponse{Error: "session_not_found"})
		return
	}

	resp := SessionResp{
		SessionID: sess.ID,
		State:     auth.StateOf(sess).String(),
		TTL:       ttl,
	}
	if auth.StateOf(sess) == auth.StateNoAttempt {
		resp.LoginURL = auth.LoginURL(s.cfg.Auth.URL, sess.ID)
	}
	writeJSON(w, 200, resp)
}

// @Summary List datasets
// @Tags Data
// @Produce json
// @Success 200 {object} map[string]interface{} "datasets"
// @Router /api/v1/datasets [get]
func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeJSON(w, 401, ErrorResponse{Error: "session expired, reload page"})
		return
	}
	client, err := s.hubClient(r.Context(), sess.ClientKey)
	if err != nil {
		writeJSON(w, 502, ErrorResponse{Error: "hub unavailable: " + err.Error()})
		return
	}
	writeJSON(w, 200, map[string]any{
		"datasets": client.Datasets(s.cfg.Hub.DefaultDataset),
	})
}

// selectDataset resolves the hub client for the session and validates the
// dataset in the URL. Error responses are written here.
func (s *Server) selectDataset(w http.ResponseWriter, r *http.Request) (*hub.Client, string, bool) {
	sess, err := s.session(r)
	if err != nil {
		writeJSON(w, 401, ErrorResponse{Error: "session expired, reload page"})
		return nil, "", false
	}
	client, err := s.hubClient(r.Context(), sess.ClientKey)
	if err != nil {
		writeJSON(w, 502, ErrorResponse{Error: "hub unavailable: " + err.Error()})
		return nil, "", false
	}
	dataset := chi.URLParam(r, "dataset")
	if _, err := client.NamespaceOf(dataset); err != nil {
		writeJSON(w, 404, ErrorResponse{Error: err.Error()})
		return nil, "", false
	}
	return client, dataset, true
}

// @Summary List assets of a dataset
// @Tags Data
// @Produce json
// @Param dataset path string true "dataset name"
// @Success 200 {object} map[string]interface{} "assets"
// @Router /api/v1/datasets/{dataset}/assets [get]
func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	client, dataset, ok := s.selectDataset(w, r)
	if !ok {
		return
	}
	assets, err := client.Assets(r.Context(), dataset)
	if err != nil {
		writeJSON(w, 502, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, 200, map[string]any{"assets": assets})
}

// @Summary List dataviews of an asset
// @Tags Data
// @Produce json
// @Param dataset path string true "dataset name"
// @Param asset path string true "asset id"
// @Param filter query string false "dataview filter"
// @Success 200 {object} map[string]interface{} "dataviews"
// @Router /api/v1/datasets/{dataset}/assets/{asset}/dataviews [get]
func (s *Server) listDataviews(w http.ResponseWriter, r *http.Request) {
	client, dataset, ok := s.selectDataset(w, r)
	if !ok {
		return
	}
	dvs, err := client.AssetDataviews(r.Context(), dataset, r.URL.Query().Get("filter"), chi.URLParam(r, "asset"))
	if err != nil {
		writeJSON(w, 502, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, 200, map[string]any{"dataviews": dvs})
}

// @Summary Asset metadata
// @Tags Data
// @Produce json
// @Param dataset path string true "dataset name"
// @Param asset path string true "asset id"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/datasets/{dataset}/assets/{asset}/metadata [get]
func (s *Server) assetMetadata(w http.ResponseWriter, r *http.Request) {
	client, dataset, ok := s.selectDataset(w, r)
	if !ok {
		return
	}
	md, err := client.AssetMetadata(r.Context(), dataset, chi.URLParam(r, "asset"))
	if err != nil {
		writeJSON(w, 502, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, 200, md)
}

// resolveAndFetch runs the shared part of both fetch variants: window
// resolution, kind dispatch, fetch caching. On failure the error response
// is already written and ok is false.
func (s *Server) resolveAndFetch(w http.ResponseWriter, r *http.Request) (FetchReq, timewindow.Window, hub.Kind, fetchResult, bool) {
	ctx := r.Context()
	none := fetchResult{}

	var req FetchReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, 400, ErrorResponse{Error: "bad_json"})
		return req, timewindow.Window{}, "", none, false
	}
	if req.Dataset == "" || req.Asset == "" {
		writeJSON(w, 422, ErrorResponse{Error: "dataset and asset required"})
		return req, timewindow.Window{}, "", none, false
	}

	wnd, err := timewindow.Resolve(req.Start, req.Window)
	if err != nil {
		var pe *timewindow.ParseError
		if errors.As(err, &pe) {
			writeJSON(w, 422, ErrorResponse{Error: pe.Error(), Field: pe.Kind.String()})
		} else {
			writeJSON(w, 422, ErrorResponse{Error: err.Error()})
		}
		return req, wnd, "", none, false
	}

	kind, err := hub.ParseKind(req.Kind)
	if err != nil {
		writeJSON(w, 422, ErrorResponse{Error: err.Error(), Field: "kind"})
		return req, wnd, kind, none, false
	}
	if kind == hub.KindInterpolated && req.Interpolation == "" {
		writeJSON(w, 422, ErrorResponse{Error: "interpolation required for Interpolated kind", Field: "interpolation"})
		return req, wnd, kind, none, false
	}

	sess, err := s.session(r)
	if err != nil {
		writeJSON(w, 401, ErrorResponse{Error: "session expired, reload page"})
		return req, wnd, kind, none, false
	}

	client, err := s.hubClient(ctx, sess.ClientKey)
	if err != nil {
		writeJSON(w, 502, ErrorResponse{Error: "hub unavailable: " + err.Error()})
		return req, wnd, kind, none, false
	}
	if _, err := client.NamespaceOf(req.Dataset); err != nil {
		writeJSON(w, 404, ErrorResponse{Error: err.Error()})
		return req, wnd, kind, none, false
	}

	enforce := s.flags.Enabled(ctx, flags.FeatureStoredRowCap, sess.ID)
	key := dataviewKey(req, wnd, kind, enforce)
	if v, ok := s.cache.Get(key); ok {
		return req, wnd, kind, v.(fetchResult), true
	}

	table, err := hub.FetchDataview(ctx, hub.Request{
		Dataset:       req.Dataset,
		Asset:         req.Asset,
		Window:        wnd,
		Kind:          kind,
		Interpolation: req.Interpolation,
		Resume:        req.Resume,
		EnforceRowCap: enforce,
	}, client)
	if err != nil {
		// fetch failures are explicit; never cached, never a silent preview
		log.Printf("[FETCH][ERROR] session=%s asset=%s err=%v", sess.ID, req.Asset, err)
		writeJSON(w, 502, ErrorResponse{Error: "dataview fetch failed: " + err.Error()})
		return req, wnd, kind, none, false
	}

	fr := fetchResult{table: table, remaining: client.RemainingData()}
	s.cache.Set(key, fr, 0)

	s.audit.Write(map[string]any{
		"event":   "dataview.fetch",
		"session": sess.ID,
		"dataset": req.Dataset,
		"asset":   req.Asset,
		"kind":    string(kind),
		"rows":    table.Len(),
	})
	return req, wnd, kind, fr, true
}

// fetchDataview resolves the window, dispatches on kind and materializes the
// CSV artifact in the downloads directory (link-based variant).
// @Summary Fetch a dataview window
// @Tags Data
// @Accept json
// @Produce json
// @Param body body FetchReq true "fetch request"
// @Success 200 {object} FetchResp
// @Failure 422 {object} ErrorResponse "invalid_start / invalid_duration / kind"
// @Router /api/v1/fetch [post]
func (s *Server) fetchDataview(w http.ResponseWriter, r *http.Request) {
	req, wnd, kind, fr, ok := s.resolveAndFetch(w, r)
	if !ok {
		return
	}

	resp := FetchResp{
		Rows:  fr.table.Len(),
		Start: wnd.StartISO(),
		End:   wnd.EndISO(),
	}

	if fr.table.Len() == 0 {
		resp.NoData = true
		resp.Warning = "no data to download (try another time range)"
		writeJSON(w, 200, resp)
		return
	}

	name := csvout.FileName(req.Asset, wnd.Start, wnd.End, kind == hub.KindStored)
	if _, err := csvout.WriteFile(s.cfg.Portal.DownloadsDir, name, fr.table); err != nil {
		log.Printf("[CSV][ERROR] write %s: %v", name, err)
		writeJSON(w, 500, ErrorResponse{Error: "csv write failed"})
		return
	}

	resp.Columns = fr.table.Columns
	resp.Preview = fr.table.Head(previewRows).Rows
	resp.Download = "/downloads/" + name
	if fr.remaining {
		resp.DataRemaining = true
		resp.Warning = "WARNING: download is missing data: try a smaller time range"
	}

	s.audit.Write(map[string]any{
		"event": "csv.download",
		"file":  name,
		"rows":  fr.table.Len(),
	})
	writeJSON(w, 200, resp)
}

// fetchDataviewCSV is the streaming deployment variant: same resolution and
// dispatch, but the CSV body goes straight out as the response.
// @Summary Fetch a dataview window as CSV stream
// @Tags Data
// @Accept json
// @Produce text/csv
// @Param body body FetchReq true "fetch request"
// @Success 200 {string} string "CSV body"
// @Router /api/v1/fetch/csv [post]
func (s *Server) fetchDataviewCSV(w http.ResponseWriter, r *http.Request) {
	req, wnd, kind, fr, ok := s.resolveAndFetch(w, r)
	if !ok {
		return
	}

	if fr.table.Len() == 0 {
		writeJSON(w, 200, FetchResp{
			Start:   wnd.StartISO(),
			End:     wnd.EndISO(),
			NoData:  true,
			Warning: "no data to download (try another time range)",
		})
		return
	}

	name := csvout.FileName(req.Asset, wnd.Start, wnd.End, kind == hub.KindStored)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if fr.remaining {
		w.Header().Set("X-Data-Remaining", "true")
	}

	if err := csvout.Write(w, fr.table); err != nil {
		// headers are gone at this point; log and cut the stream
		log.Printf("[CSV][ERROR] stream %s: %v", name, err)
		return
	}

	s.audit.Write(map[string]any{
		"event": "csv.download",
		"file":  name,
		"rows":  fr.table.Len(),
		"mode":  "stream",
	})
}
