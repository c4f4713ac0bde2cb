package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode maps the APP_ENV value onto gin's run mode. Anything that is
// not production or test keeps the default debug mode with its route dump.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
