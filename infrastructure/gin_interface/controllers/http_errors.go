package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gbessoni/selfie-fm/domain"
)

// statusOf maps a domain error code onto an HTTP status. Provider failures
// surface as 502 since the fault sits with the upstream service.
func statusOf(err error) int {
	switch domain.CodeOf(err) {
	case domain.ErrorNotFound:
		return http.StatusNotFound
	case domain.ErrorNoScriptProvided, domain.ErrorEmptyScript,
		domain.ErrorInvalidSample, domain.ErrorVoiceNotConfigured:
		return http.StatusBadRequest
	case domain.ErrorRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrorNotConfigured:
		return http.StatusServiceUnavailable
	case domain.ErrorFetchFailed, domain.ErrorGenerationProvider,
		domain.ErrorSynthesisProvider, domain.ErrorCloneCreation:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}
