package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Error string `json:"error" example:"user not found"`
}

func ErrorResponse(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}

func BadRequestResponse(c *gin.Context, msg string) {
	ErrorResponse(c, http.StatusBadRequest, msg)
}

func UnauthorizedResponse(c *gin.Context, msg string) {
	ErrorResponse(c, http.StatusUnauthorized, msg)
}

func NotFoundResponse(c *gin.Context, msg string) {
	ErrorResponse(c, http.StatusNotFound, msg)
}

func InternalServerErrorResponse(c *gin.Context, msg string) {
	ErrorResponse(c, http.StatusInternalServerError, msg)
}

func BadGatewayResponse(c *gin.Context, msg string) {
	ErrorResponse(c, http.StatusBadGateway, msg)
}

func ServiceUnavailableResponse(c *gin.Context, msg string) {
	ErrorResponse(c, http.StatusServiceUnavailable, msg)
}
