// api/util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/f4lcon-tech/aqari/api/logging"
	"github.com/f4lcon-tech/aqari/api/model"
)

const actorContextKey = "actor"

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"success": false, "message": message})
}

// RespondWithData writes the standard success envelope.
func RespondWithData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// RespondWithList writes the success envelope for paginated listings.
func RespondWithList(c *gin.Context, data interface{}, total int) {
	c.JSON(200, gin.H{"success": true, "total": total, "data": data})
}

// SetActor stores the verified actor on the request context.
func SetActor(c *gin.Context, actor model.Actor) {
	c.Set(actorContextKey, actor)
}

// GetActor retrieves the verified actor placed by the auth middleware.
func GetActor(c *gin.Context) (model.Actor, bool) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		return model.Actor{}, false
	}
	actor, ok := v.(model.Actor)
	return actor, ok
}
