package middlewares

import (
	"errors"
	"strconv"
	"strings"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/application/utils"
	"veriface.io/infrastructure/useragent"
)

func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any], minAppVersion string, clientIP string) (*interfaces.ApplicationContext[any], bool) {
	deviceID := ctx.GetHeader("X-Device-Id")
	if deviceID == nil || *deviceID == "" {
		apperrors.MalformedHeader(ctx.Ctx, nil)
		return nil, false
	}
	ctx.DeviceID = *deviceID

	agent := ctx.GetHeader("User-Agent")
	if agent == nil {
		apperrors.ClientError(ctx.Ctx, "why your user-agent header no dey? You be criminal?🤨", []error{errors.New("user agent header missing")}, nil, ctx.DeviceID)
		return nil, false
	}
	agentDetails := useragent.ParseUserAgent(*agent)
	if agentDetails.Bot {
		apperrors.UnsupportedUserAgent(ctx.Ctx, ctx.DeviceID)
		return nil, false
	}
	ctx.UserAgent = *agent
	ctx.DeviceName = agentDetails.Name

	if minAppVersion != "" {
		clientVersion := utils.ExtractAppVersionFromUserAgentHeader(*agent)
		if clientVersion == nil || compareVersions(*clientVersion, minAppVersion) < 0 {
			apperrors.UnsupportedAppVersion(ctx.Ctx, ctx.DeviceID)
			return nil, false
		}
	}
	return ctx, true
}

func compareVersions(a string, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")
	for i := 0; i < len(aParts) || i < len(bParts); i++ {
		var aNum, bNum int
		if i < len(aParts) {
			aNum, _ = strconv.Atoi(aParts[i])
		}
		if i < len(bParts) {
			bNum, _ = strconv.Atoi(bParts[i])
		}
		if aNum != bNum {
			if aNum < bNum {
				return -1
			}
			return 1
		}
	}
	return 0
}
