package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"veriface.io/application/interfaces"
	"veriface.io/application/middlewares"
)

func RefreshTokenMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authToken := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		appContext, next := middlewares.RefreshTokenMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:      ctx,
			Keys:     ctx.Keys,
			Header:   ctx.Request.Header,
			DeviceID: ctx.Request.Header.Get("X-Device-Id"),
		}, authToken)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
