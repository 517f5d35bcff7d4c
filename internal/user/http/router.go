package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/mcguiretech/truapi/internal/common/http"
	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/common/logger"
	"github.com/mcguiretech/truapi/internal/user/domain"
	"github.com/mcguiretech/truapi/internal/user/repository"
	"github.com/mcguiretech/truapi/internal/user/service"
)

type createRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"max=128"`
}

type updateRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=128"`
}

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func toResponse(u domain.User) userResponse {
	return userResponse{
		ID:          string(u.ID),
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

type Handler struct {
	users    *service.UserService
	log      *logger.Logger
	validate *validator.Validate
}

func NewHandler(users *service.UserService, log *logger.Logger, requestTimeout time.Duration) http.Handler {
	h := &Handler{
		users:    users,
		log:      log,
		validate: validator.New(),
	}

	withTimeout := commonhttp.WithTimeout(requestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users", withTimeout(h.handleCollection))
	mux.HandleFunc("/api/users/", withTimeout(h.handleItem))

	return mux
}

func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) handleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idFromPath(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) idFromPath(w http.ResponseWriter, r *http.Request) (identifier.ID, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/users/")
	if raw == "" || strings.Contains(raw, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPath, "invalid path", nil, "")
		return "", false
	}

	id, err := identifier.Parse(raw)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return "", false
	}
	return id, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("users/create failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, err.Error(), nil, "")
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toResponse(user))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id identifier.ID) {
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, toResponse(user))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.Filter{
		Username: query.Get("username"),
		Email:    query.Get("email"),
	}
	filter.Skip = queryInt(query.Get("skip"))
	filter.Limit = queryInt(query.Get("limit"))

	users, err := h.users.List(r.Context(), filter)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	responses := make([]userResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	commonhttp.WriteJSON(w, http.StatusOK, responses)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id identifier.ID) {
	var req updateRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("users/update failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, err.Error(), nil, "")
		return
	}

	user, err := h.users.Update(r.Context(), id, service.UpdateInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(user))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id identifier.ID) {
	if err := h.users.Delete(r.Context(), id); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
