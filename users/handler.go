package users

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/auth"
	"github.com/mlmarch/mlmarch-gateway/backend"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/responses"
	"github.com/mlmarch/mlmarch-gateway/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
}

func NewProfileHandler(profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
	}
}

// Profile is the shape of a backend user record in the docs. The actual
// payload carries every attribute the backend stores.
type Profile struct {
	ID                string `json:"id" example:"42"`
	Email             string `json:"email" example:"ada@example.com"`
	FirstName         string `json:"firstName" example:"Ada"`
	LastName          string `json:"lastName" example:"Lovelace"`
	PhotoURL          string `json:"photoURL"`
	Phone             string `json:"phone"`
	Institution       string `json:"institution"`
	EducationLevel    string `json:"educationLevel"`
	MLExperience      string `json:"mlExperience"`
	Interests         string `json:"interests" example:"nlp,vision"`
	Bio               string `json:"bio"`
	IsProfileComplete bool   `json:"isProfileComplete"`
}

// GetMe godoc
// @Summary      Current user's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  Profile
// @Failure      401  {object}  errors.HTTPError
// @Failure      404  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	email := auth.CurrentEmail(c)
	if email == "" {
		errors.UnauthorizedResponse(c, "user not authenticated")
		return
	}

	rec, err := h.profiles.Get(c.Request.Context(), email)
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, rec)
}

// UpdateMe godoc
// @Summary      Update the current user's profile
// @Description  Merges the given fields into the stored profile, creating it when missing
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      services.ProfileUpdate  true  "Fields to change"
// @Success      200  {object}  Profile
// @Failure      400  {object}  errors.HTTPError
// @Failure      401  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/me [put]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	email := auth.CurrentEmail(c)
	if email == "" {
		errors.UnauthorizedResponse(c, "user not authenticated")
		return
	}

	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequestResponse(c, "invalid input")
		return
	}

	rec, err := h.profiles.Update(c.Request.Context(), email, req)
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, rec)
}

// CompleteMe godoc
// @Summary      Complete the current user's profile
// @Description  Stores the onboarding answers and marks the profile complete
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      services.ProfileCompletion  true  "Onboarding answers"
// @Success      200  {object}  Profile
// @Failure      400  {object}  errors.HTTPError
// @Failure      401  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/me/complete [post]
func (h *ProfileHandler) CompleteMe(c *gin.Context) {
	email := auth.CurrentEmail(c)
	if email == "" {
		errors.UnauthorizedResponse(c, "user not authenticated")
		return
	}

	var req services.ProfileCompletion
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequestResponse(c, err.Error())
		return
	}

	rec, err := h.profiles.Complete(c.Request.Context(), email, req)
	if stderrors.Is(err, services.ErrIncompleteProfile) {
		errors.BadRequestResponse(c, err.Error())
		return
	}
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}

	responses.JSONData(c, http.StatusOK, rec)
}

type UsersResponse struct {
	Users []backend.UserRecord `json:"users"`
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  UsersResponse
// @Failure      401  {object}  errors.HTTPError
// @Failure      502  {object}  errors.HTTPError
// @Router       /api/users [get]
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	users, err := h.profiles.List(c.Request.Context())
	if err != nil {
		errors.BackendErrorResponse(c, err)
		return
	}
	if users == nil {
		users = []backend.UserRecord{}
	}

	responses.JSONData(c, http.StatusOK, UsersResponse{Users: users})
}
