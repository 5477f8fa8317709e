package sessions

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/responses"
	"github.com/mlmarch/mlmarch-gateway/services"
)

type SessionHandler struct {
	sessions services.SessionService
}

func NewSessionHandler(sessions services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

type SessionsResponse struct {
	Sessions []backend.Session `json:"sessions"`
}

func sessionsResponse(list []backend.Session) SessionsResponse {
	if list == nil {
		list = []backend.Session{}
	}
	return SessionsResponse{Sessions: list}
}

// List godoc
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  SessionsResponse
// @Failure      502  {object}  errors.HTTPError
// @Failure      503  {object}  errors.HTTPError
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	list, err := h.sessions.List(c.Request.Context())
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}
	responses.JSONData(c, http.StatusOK, sessionsResponse(list))
}

// Get godoc
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  backend.Session
// @Failure      404  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		errors.BadRequestResponse(c, "session id is required")
		return
	}

	s, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}
	responses.JSONData(c, http.StatusOK, s)
}

// Mine godoc
// @Summary      Sessions the current user registered for
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  SessionsResponse
// @Failure      401  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/me/sessions [get]
func (h *SessionHandler) Mine(c *gin.Context) {
	email := auth.CurrentEmail(c)
	if email == "" {
		errors.UnauthorizedResponse(c, "user not authenticated")
		return
	}

	list, err := h.sessions.ForUser(c.Request.Context(), email)
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}
	responses.JSONData(c, http.StatusOK, sessionsResponse(list))
}

// Register godoc
// @Summary      Register for a session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  backend.RegistrationResult
// @Failure      400  {object}  errors.HTTPError
// @Failure      401  {object}  errors.HTTPError
// @Failure      404  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/me/sessions/{id} [post]
func (h *SessionHandler) Register(c *gin.Context) {
	h.registration(c, h.sessions.Register)
}

// Unregister godoc
// @Summary      Cancel a session registration
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  backend.RegistrationResult
// @Failure      401  {object}  errors.HTTPError
// @Failure      404  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/me/sessions/{id} [delete]
func (h *SessionHandler) Unregister(c *gin.Context) {
	h.registration(c, h.sessions.Unregister)
}

type registrationFunc func(ctx context.Context, email, sessionID string) (*backend.RegistrationResult, error)

func (h *SessionHandler) registration(c *gin.Context, call registrationFunc) {
	email := auth.CurrentEmail(c)
	if email == "" {
		errors.UnauthorizedResponse(c, "user not authenticated")
		return
	}

	id := c.Param("id")
	if id == "" {
		errors.BadRequestResponse(c, "session id is required")
		return
	}

	res, err := call(c.Request.Context(), email, id)
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}
	responses.JSONData(c, http.StatusOK, res)
}
