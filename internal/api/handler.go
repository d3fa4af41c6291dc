package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sagapi/m/internal/apilog"
	"sagapi/m/internal/config"
	"sagapi/m/internal/receiving"
)

// Handler bundles dependencies for the JSON API.
type Handler struct {
	cfg  config.Config
	logs *apilog.Logger
	recv *receiving.Service
}

// New constructs a Handler.
func New(db *sqlx.DB, cfg config.Config) *Handler {
	return &Handler{
		cfg:  cfg,
		logs: apilog.New(db),
		recv: receiving.NewService(db),
	}
}

// Router wires up the /api endpoints.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.recoverEnvelope)

	r.Get("/health", h.health)
	r.Get("/test", h.test)
	r.Post("/test", h.test)
	r.Post("/auth/login", h.login)
	r.Post("/receiving-tbs/create", h.createReceivingTBS)

	return r
}

// envelope is the JSON response body for every API endpoint. The code
// field always matches the HTTP status.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
	Token   any    `json:"token,omitempty"`
}

// recoverEnvelope converts a panic into the standard 500 envelope and
// records it, so no handler leaks a stack trace to the caller.
func (h *Handler) recoverEnvelope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				env := envelope{Code: http.StatusInternalServerError, Message: fmt.Sprintf("Internal server error: %v", rec)}
				h.logs.Record(apilog.Entry{
					Endpoint:     r.URL.Path,
					Status:       "error",
					ResponseCode: env.Code,
					ResponseBody: env,
					IPAddress:    clientIP(r),
				})
				respondJSON(w, env.Code, env)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeAndLog records the outcome in api_logs and then writes the
// response. agent and site are left empty when no caller identity applies.
func (h *Handler) writeAndLog(w http.ResponseWriter, r *http.Request, endpoint string, env envelope, rawBody, agent, site string) {
	status := "success"
	if env.Code != http.StatusOK {
		status = "error"
	}
	h.logs.Record(apilog.Entry{
		Endpoint:     endpoint,
		Status:       status,
		ResponseCode: env.Code,
		RequestBody:  rawBody,
		ResponseBody: env,
		AgentName:    agent,
		Site:         site,
		IPAddress:    clientIP(r),
	})
	respondJSON(w, env.Code, env)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status":    "healthy",
		"service":   "SAGAPI",
		"version":   "1.0.0",
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	}
	h.logs.Record(apilog.Entry{
		Endpoint: "/api/health", Status: "success", ResponseCode: http.StatusOK,
		ResponseBody: body, IPAddress: clientIP(r),
	})
	respondJSON(w, http.StatusOK, body)
}

// test echoes the request back; it accepts both GET and POST.
func (h *Handler) test(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	body := map[string]any{
		"status":    "success",
		"method":    r.Method,
		"message":   fmt.Sprintf("API test successful via %s", r.Method),
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	}
	var received any
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &received) == nil && received != nil {
		body["received_data"] = received
	}

	h.logs.Record(apilog.Entry{
		Endpoint: "/api/test", Status: "success", ResponseCode: http.StatusOK,
		RequestBody: string(raw), ResponseBody: body, IPAddress: clientIP(r),
	})
	respondJSON(w, http.StatusOK, body)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Database string `json:"database"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/auth/login"

	raw, _ := io.ReadAll(r.Body)
	var req loginRequest
	if !parseJSONObject(raw, &req) {
		h.writeAndLog(w, r, endpoint, envelope{Code: http.StatusBadRequest, Message: "Invalid JSON payload"}, string(raw), "", "")
		return
	}

	if req.Login == "" || req.Password == "" || req.Database == "" {
		h.writeAndLog(w, r, endpoint, envelope{Code: http.StatusBadRequest, Message: "Missing required fields: login, password, database"}, string(raw), "", "")
		return
	}
	if req.Database != h.cfg.APIDatabase {
		h.writeAndLog(w, r, endpoint, envelope{Code: http.StatusBadRequest, Message: "Invalid database: database tidak ditemukan."}, string(raw), "", "")
		return
	}
	if req.Login != h.cfg.APILogin || req.Password != h.cfg.APIPassword {
		h.writeAndLog(w, r, endpoint, envelope{Code: http.StatusBadRequest, Message: "Invalid Login: Incorrect user or password."}, string(raw), "", "")
		return
	}

	// Cosmetic tokens: random identifiers with no persisted session state
	// or expiry.
	env := envelope{
		Code:    http.StatusOK,
		Message: "Login Successful",
		Token: map[string]string{
			"access_token":  uuid.NewString(),
			"refresh_token": uuid.NewString(),
		},
	}
	h.writeAndLog(w, r, endpoint, env, string(raw), req.Login, req.Database)
}

func (h *Handler) createReceivingTBS(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/receiving-tbs/create"

	raw, _ := io.ReadAll(r.Body)
	var req receiving.CreateRequest
	if !parseJSONObject(raw, &req) {
		h.writeAndLog(w, r, endpoint, envelope{Code: http.StatusBadRequest, Message: "Invalid JSON payload"}, string(raw), "", "")
		return
	}

	// Any non-empty value passes; the tokens carry no verifiable state.
	if r.Header.Get("Authorization") == "" && req.Token == "" {
		h.writeAndLog(w, r, endpoint, envelope{Code: http.StatusUnauthorized, Message: "Authorization header or token in body required"}, string(raw), "", "")
		return
	}

	order, verr := h.recv.Validate(&req)
	if verr != nil {
		h.writeAndLog(w, r, endpoint, envelope{Code: verr.HTTPStatus(), Message: verr.Message}, string(raw), "", "")
		return
	}

	documentNo, cerr := h.recv.Create(order, raw)
	if cerr != nil {
		h.writeAndLog(w, r, endpoint, envelope{Code: cerr.HTTPStatus(), Message: cerr.Message}, string(raw), "", "")
		return
	}

	env := envelope{
		Code:    http.StatusOK,
		Message: "Receiving TBS created successfully.",
		Result:  map[string]string{"document_no": documentNo},
	}
	h.writeAndLog(w, r, endpoint, env, string(raw), order.PartnerID, order.BranchID)
}

// Helpers

// parseJSONObject accepts only a non-empty JSON object: an empty body, a
// literal null, [] or {} all count as an invalid payload.
func parseJSONObject(raw []byte, dest any) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil || len(probe) == 0 {
		return false
	}
	return json.Unmarshal(trimmed, dest) == nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}
