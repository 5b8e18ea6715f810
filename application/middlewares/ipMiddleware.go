package middlewares

import (
	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/infrastructure/ipresolver"
	"veriface.io/infrastructure/logger"
)

func IPAddressMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	ipLookupRes, err := ipresolver.IPResolverInstance.LookUp(clientIP)
	if err != nil {
		logger.Error("error looking up ip", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "ip",
			Data: clientIP,
		})
		apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		return nil, false
	}
	logger.Info("request-ip-lookup", logger.LoggerOptions{
		Key:  "ip-data",
		Data: ipLookupRes,
	})

	ctx.SetContextData("IP", clientIP)
	ctx.SetContextData("City", ipLookupRes.City)
	ctx.SetContextData("Country", ipLookupRes.CountryCode)
	ctx.SetContextData("VPN", ipLookupRes.Anonymous)
	return ctx, true
}
