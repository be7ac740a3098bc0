package middleware

import (
	"runtime/debug"

	"gotours/internal/utils"
	"gotours/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the single formatting stage every handler error funnels
// through. Handlers and middleware attach errors with c.Error instead of
// writing responses ad hoc; after the chain unwinds, the last error is
// translated onto the taxonomy and rendered. In development the response
// carries full error detail; in production only operational errors surface
// their message and everything else collapses to a generic 500.
func ErrorHandler(environment string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := utils.TranslateError(c.Errors.Last().Err)

		if !appErr.Operational {
			log.WithError(c.Errors.Last().Err).
				WithField("path", c.Request.URL.Path).
				Error("Unexpected error")
		}

		if environment == utils.EnvDevelopment {
			c.JSON(appErr.StatusCode, utils.Envelope{
				Status:  appErr.Status(),
				Message: appErr.Message,
				Error:   appErr.Error(),
				Stack:   string(debug.Stack()),
			})
			return
		}

		if appErr.Operational {
			c.JSON(appErr.StatusCode, utils.Envelope{
				Status:  appErr.Status(),
				Message: appErr.Message,
			})
			return
		}

		c.JSON(appErr.StatusCode, utils.Envelope{
			Status:  utils.StatusError,
			Message: utils.ErrInternalServer,
		})
	}
}
