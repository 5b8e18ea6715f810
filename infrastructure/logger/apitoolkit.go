package logger

import (
	"context"
	"os"

	apitoolkit "github.com/apitoolkit/apitoolkit-go"
	"github.com/gin-gonic/gin"
)

// APIToolKitMonitor ships request metrics to APIToolkit. When no key is
// configured the monitor stays disconnected and its middleware is a
// pass-through, so local and test runs need no account.
type APIToolKitMonitor struct {
	client *apitoolkit.Client
}

func (monitor *APIToolKitMonitor) Init() {
	apiKey := os.Getenv("APITOOLKIT_API_KEY")
	if apiKey == "" {
		Info("request metric monitor disabled. no api key set")
		return
	}
	client, err := apitoolkit.NewClient(context.Background(), apitoolkit.Config{
		APIKey: apiKey,
	})
	if err != nil {
		Error("failed to initialise request metric monitor", LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	monitor.client = client
}

func (monitor *APIToolKitMonitor) RequestMetricMiddleware() any {
	if monitor.client == nil {
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}
	return monitor.client.GinMiddleware
}
