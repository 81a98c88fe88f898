package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"packquote/internal/core/apperror"
	"packquote/pkg/logger"
)

// ErrorHandler renders the first error pushed by a handler into the
// standard error envelope. Internal causes are logged but never leak
// into the response body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors[0].Err
		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = apperror.NewInternal(err)
		}

		if appErr.HTTPStatus >= 500 {
			logger.Error(c.Request.Context(), "internal error",
				zap.String("code", appErr.Code),
				zap.Error(appErr.Err))
		}

		c.JSON(appErr.HTTPStatus, errorBody(appErr))
	}
}

func errorBody(appErr *apperror.AppError) gin.H {
	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return gin.H{"error": body}
}
