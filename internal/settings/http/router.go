package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/mcguiretech/truapi/internal/common/http"
	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/common/logger"
	"github.com/mcguiretech/truapi/internal/settings/domain"
	"github.com/mcguiretech/truapi/internal/settings/repository"
	"github.com/mcguiretech/truapi/internal/settings/service"
)

type setRequest struct {
	Scope  string `json:"scope" validate:"required,oneof=app user"`
	Key    string `json:"key" validate:"required,max=128"`
	Value  string `json:"value" validate:"required"`
	UserID string `json:"user_id" validate:"omitempty,len=36"`
}

type settingResponse struct {
	ID     string `json:"id"`
	Scope  string `json:"scope"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	UserID string `json:"user_id,omitempty"`
}

func toResponse(s domain.Setting) settingResponse {
	return settingResponse{
		ID:     string(s.ID),
		Scope:  string(s.Scope),
		Key:    s.Key,
		Value:  s.Value,
		UserID: string(s.UserID),
	}
}

type Handler struct {
	settings *service.SettingsService
	log      *logger.Logger
	validate *validator.Validate
}

func NewHandler(settings *service.SettingsService, log *logger.Logger, requestTimeout time.Duration) http.Handler {
	h := &Handler{
		settings: settings,
		log:      log,
		validate: validator.New(),
	}

	withTimeout := commonhttp.WithTimeout(requestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/settings", withTimeout(h.handleRoot))
	mux.HandleFunc("/api/settings/list", commonhttp.RequireMethod(http.MethodGet)(withTimeout(h.list)))

	return mux
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.set(w, r)
	case http.MethodGet:
		h.get(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("settings/set failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, err.Error(), nil, "")
		return
	}

	scope, err := domain.ParseScope(req.Scope)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var userID identifier.ID
	if req.UserID != "" {
		userID, err = identifier.Parse(req.UserID)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return
		}
	}

	setting, err := h.settings.Set(r.Context(), service.SetInput{
		Scope:  scope,
		Key:    req.Key,
		Value:  req.Value,
		UserID: userID,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toResponse(setting))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}

	setting, err := h.settings.Get(r.Context(), filter)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(setting))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filterFromQuery(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.List(r.Context(), filter)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	responses := make([]settingResponse, 0, len(settings))
	for _, s := range settings {
		responses = append(responses, toResponse(s))
	}
	commonhttp.WriteJSON(w, http.StatusOK, responses)
}

func (h *Handler) filterFromQuery(w http.ResponseWriter, r *http.Request) (repository.Filter, bool) {
	query := r.URL.Query()
	var filter repository.Filter

	if raw := query.Get("scope"); raw != "" {
		scope, err := domain.ParseScope(raw)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return repository.Filter{}, false
		}
		filter.Scope = scope
	}

	filter.Key = query.Get("key")

	if raw := query.Get("user_id"); raw != "" {
		userID, err := identifier.Parse(raw)
		if err != nil {
			commonhttp.HandleError(w, r, err, h.log)
			return repository.Filter{}, false
		}
		filter.UserID = userID
	}

	return filter, true
}
