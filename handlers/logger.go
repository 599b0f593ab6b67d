package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkbook/utils"
)

// getLogger returns the request-scoped logger if middleware attached one,
// falling back to the shared application logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
