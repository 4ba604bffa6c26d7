package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/careconnect/backend/internal/model"
	"github.com/careconnect/backend/internal/service"
)

const (
	detailInvalidPassword    = "Invalid password. Please use the dynamic password formula."
	detailInvalidCredentials = "Could not validate credentials"
	detailTokenExpired       = "Token expired"
	detailStreamNotSupported = "This endpoint does not support streaming. Use the streaming endpoint instead."
	detailStreamRequired     = "This endpoint requires 'stream' to be set to true."
	detailUpstreamPrefix     = "Failed to get response from Bruce: "
	detailTooManyLogins      = "Too many login attempts"
	detailInternal           = "Internal server error"
)

// writeError maps service errors to a status code and a {"detail": ...} body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(c, detailInvalidPassword)
	case errors.Is(err, service.ErrTokenExpired):
		writeUnauthorized(c, detailTokenExpired)
	case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrMissingSubject):
		writeUnauthorized(c, detailInvalidCredentials)
	case errors.Is(err, service.ErrStreamNotSupported):
		writeDetail(c, http.StatusBadRequest, detailStreamNotSupported)
	case errors.Is(err, service.ErrStreamRequired):
		writeDetail(c, http.StatusBadRequest, detailStreamRequired)
	case errors.Is(err, service.ErrInvalidChatRequest):
		writeDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUpstream):
		writeDetail(c, http.StatusInternalServerError, detailUpstreamPrefix+err.Error())
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("unhandled error")
		writeDetail(c, http.StatusInternalServerError, detailInternal)
	}
}

func writeUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	writeDetail(c, http.StatusUnauthorized, detail)
}

func writeDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Detail: detail})
}

// Recovery turns a panic into a 500 detail body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("recovered from panic")
		writeDetail(c, http.StatusInternalServerError, detailInternal)
	})
}
