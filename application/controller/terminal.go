package controller

import (
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	terminal_usecases "veriface.io/application/usecases/terminal"
	"veriface.io/application/utils"
	"veriface.io/infrastructure/logger"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

// RegisterTerminal creates a kiosk record and hands back the terminal key
// exactly once. The key is stored only as a hash so this response is the
// operator's single chance to copy it.
func RegisterTerminal(ctx *interfaces.ApplicationContext[dto.RegisterTerminalDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	terminal, terminalKey := terminal_usecases.RegisterTerminalUseCase(ctx.Ctx, ctx.Body, ctx.DeviceID)
	if terminal == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "terminal registered", map[string]any{
		"terminal":    terminal,
		"terminalKey": terminalKey,
	}, nil, nil, &ctx.DeviceID)
}

func PairTerminal(ctx *interfaces.ApplicationContext[dto.PairTerminalDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	var clientIP, country, city *string
	if ip := ctx.GetStringContextData("IP"); ip != "" {
		clientIP = utils.GetStringPointer(ip)
	}
	if c := ctx.GetStringContextData("Country"); c != "" {
		country = utils.GetStringPointer(c)
	}
	if c := ctx.GetStringContextData("City"); c != "" {
		city = utils.GetStringPointer(c)
	}
	accessToken, refreshToken, terminal := terminal_usecases.PairTerminalUseCase(ctx.Ctx, ctx.Body, ctx.GetStringContextData("TerminalID"), ctx.DeviceID, ctx.UserAgent, clientIP, country, city)
	if accessToken == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "terminal paired", map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"terminal":     terminal,
	}, nil, nil, &ctx.DeviceID)
}

func RefreshTerminalSession(ctx *interfaces.ApplicationContext[any]) {
	accessToken, refreshToken := terminal_usecases.RefreshTerminalSessionUseCase(ctx.Ctx, ctx.GetStringContextData("TerminalID"), ctx.DeviceID, ctx.UserAgent)
	if accessToken == nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session refreshed", map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, nil, nil, &ctx.DeviceID)
}

func FetchTerminals(ctx *interfaces.ApplicationContext[dto.FetchTerminalsDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	filter := map[string]interface{}{
		"deletedAt": nil,
	}
	if ctx.Body.FleetID != nil {
		filter["fleetID"] = *ctx.Body.FleetID
	}
	if ctx.Body.Active != nil {
		filter["active"] = *ctx.Body.Active
	}
	sort := int(ctx.Body.Sort)
	if sort == 0 {
		sort = -1
	}
	terminalRepo := repository.TerminalRepo()
	terminals, err := terminalRepo.FindManyPaginated(filter, ctx.Body.PageSize, ctx.Body.LastID, sort)
	if err != nil {
		logger.Error("an error occured while fetching terminals", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	totalCount, err := terminalRepo.CountDocs(filter)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "terminals fetched", map[string]any{
		"terminals":  terminals,
		"totalCount": totalCount,
	}, nil, nil, &ctx.DeviceID)
}

func FetchTerminalByID(ctx *interfaces.ApplicationContext[any]) {
	terminalRepo := repository.TerminalRepo()
	terminal, err := terminalRepo.FindByID(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if terminal == nil {
		apperrors.NotFoundError(ctx.Ctx, "this terminal does not exist", &ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "terminal fetched", terminal, nil, nil, &ctx.DeviceID)
}

func UpdateTerminal(ctx *interfaces.ApplicationContext[dto.UpdateTerminalDTO]) {
	valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr, ctx.DeviceID)
		return
	}
	payload := map[string]any{}
	if ctx.Body.Name != nil {
		payload["name"] = *ctx.Body.Name
	}
	if ctx.Body.Location != nil {
		payload["location"] = *ctx.Body.Location
	}
	if ctx.Body.Active != nil {
		payload["active"] = *ctx.Body.Active
	}
	if len(payload) == 0 {
		apperrors.ClientError(ctx.Ctx, "pass in at least one field to update", nil, nil, ctx.DeviceID)
		return
	}
	terminalRepo := repository.TerminalRepo()
	updated, err := terminalRepo.UpdatePartialByID(ctx.GetStringParameter("id"), payload)
	if err != nil {
		logger.Error("an error occured while updating terminal", logger.LoggerOptions{
			Key:  "terminalID",
			Data: ctx.GetStringParameter("id"),
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "this terminal does not exist", &ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "terminal updated", nil, nil, nil, &ctx.DeviceID)
}

// DeactivateTerminal cuts a kiosk off. Key auth rejects inactive terminals on
// the next request; bearer sessions die at their next refresh.
func DeactivateTerminal(ctx *interfaces.ApplicationContext[any]) {
	terminalRepo := repository.TerminalRepo()
	updated, err := terminalRepo.UpdatePartialByID(ctx.GetStringParameter("id"), map[string]any{
		"active": false,
		"paired": false,
	})
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "this terminal does not exist", &ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "terminal deactivated", nil, nil, nil, &ctx.DeviceID)
}
