package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ferdian3456/chatmoderation/internal/constant"
	"github.com/ferdian3456/chatmoderation/internal/middleware"
	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/ferdian3456/chatmoderation/internal/usecase"
	"github.com/ferdian3456/chatmoderation/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type ChatController struct {
	PunishmentUsecase *usecase.PunishmentUsecase
	ChatUsecase       *usecase.ChatUsecase
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewChatController(punishmentUsecase *usecase.PunishmentUsecase, chatUsecase *usecase.ChatUsecase, zap *zap.Logger, koanf *koanf.Koanf) *ChatController {
	return &ChatController{
		PunishmentUsecase: punishmentUsecase,
		ChatUsecase:       chatUsecase,
		Log:               zap,
		Config:            koanf,
	}
}

func parseChatRef(id string, idType string) (model.ChatRef, error) {
	switch model.ChatIdType(idType) {
	case "", model.ChatIdTypePeer:
		peerId, err := strconv.ParseInt(id, 10, 64)
		if err != nil || peerId <= model.PeerIdOffset {
			return model.ChatRef{}, model.NewParamsValidationError("Chat id must be a peer id greater than 2000000000")
		}
		return model.PeerRef(peerId), nil
	case model.ChatIdTypeUid:
		if strings.TrimSpace(id) == "" {
			return model.ChatRef{}, model.NewParamsValidationError("Chat uid is empty")
		}
		return model.UidRef(id), nil
	default:
		return model.ChatRef{}, model.NewParamsValidationError("Chat id type must be peer_id or uid")
	}
}

func invalidRequestBody() *model.ValidationError {
	return &model.ValidationError{
		Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
		Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
	}
}

func (controller ChatController) sendError(ctx *fiber.Ctx, err error) error {
	var appErr *model.AppError
	var validationErr *model.ValidationError

	if errors.As(err, &appErr) {
		return util.SendErrorResponse(ctx, appErr)
	}

	if errors.As(err, &validationErr) {
		return util.SendErrorResponse(ctx, validationErr)
	}

	return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
}

func (controller ChatController) sendPunishment(ctx *fiber.Ctx, result model.PunishmentResult, err error) error {
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) && appErr.Kind == model.KindStateDiverged {
			return util.SendPartialResponse(ctx, result, appErr)
		}

		return controller.sendError(ctx, err)
	}

	return util.SendSuccessResponseWithData(ctx, result)
}

func (controller ChatController) Kick(ctx *fiber.Ctx) error {
	var payload model.KickMemberRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	chat, err := parseChatRef(ctx.Params("id"), payload.Type)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	if payload.User == 0 || payload.Punisher == 0 {
		return controller.sendError(ctx, model.NewParamsValidationError("User and punisher are required"))
	}

	result, err := controller.PunishmentUsecase.Kick(ctx.UserContext(), model.KickRequest{
		Chat:     chat,
		User:     payload.User,
		Punisher: payload.Punisher,
		Reason:   payload.Reason,
	})

	return controller.sendPunishment(ctx, result, err)
}

func (controller ChatController) Mute(ctx *fiber.Ctx) error {
	var payload model.MuteMemberRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	chat, err := parseChatRef(ctx.Params("id"), payload.Type)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	if payload.User == 0 || payload.Punisher == 0 {
		return controller.sendError(ctx, model.NewParamsValidationError("User and punisher are required"))
	}

	if payload.Time == nil {
		return controller.sendError(ctx, model.NewParamsValidationError("Mute time is required, -1 for permanent"))
	}

	result, err := controller.PunishmentUsecase.Mute(ctx.UserContext(), model.MuteRequest{
		Chat:     chat,
		User:     payload.User,
		Punisher: payload.Punisher,
		Reason:   payload.Reason,
		Duration: *payload.Time,
	})

	return controller.sendPunishment(ctx, result, err)
}

func (controller ChatController) Leave(ctx *fiber.Ctx) error {
	var payload model.LeaveChatRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	chat, err := parseChatRef(ctx.Params("id"), payload.Type)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	if payload.User == 0 {
		return controller.sendError(ctx, model.NewParamsValidationError("User is required"))
	}

	result, err := controller.PunishmentUsecase.Leave(ctx.UserContext(), model.LeaveRequest{
		Chat: chat,
		User: payload.User,
	})

	return controller.sendPunishment(ctx, result, err)
}

func (controller ChatController) SetSetting(ctx *fiber.Ctx) error {
	var payload model.SetSettingPayload
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, invalidRequestBody())
	}

	chat, err := parseChatRef(ctx.Params("id"), payload.Type)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	setting, ok := model.ParseSettingKey(payload.Setting)
	if !ok {
		return controller.sendError(ctx, model.NewParamsValidationError("Unknown setting "+payload.Setting))
	}

	if payload.User == 0 || payload.Value == nil {
		return controller.sendError(ctx, model.NewParamsValidationError("User and value are required"))
	}

	err = controller.ChatUsecase.SetSetting(ctx.UserContext(), model.SetSettingRequest{
		Chat:    chat,
		User:    payload.User,
		Setting: setting,
		Value:   *payload.Value,
	})
	if err != nil {
		return controller.sendError(ctx, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller ChatController) GetSettings(ctx *fiber.Ctx) error {
	chat, err := parseChatRef(ctx.Params("id"), ctx.Query("type"))
	if err != nil {
		return controller.sendError(ctx, err)
	}

	settings, err := controller.ChatUsecase.GetSettings(ctx.UserContext(), chat)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	response := make([]model.SettingResponse, 0, len(model.SettingKeys))
	for _, key := range model.SettingKeys {
		response = append(response, model.SettingResponse{
			Key:         key,
			Description: key.Description(),
			Value:       settings[key],
		})
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ChatController) GetRoles(ctx *fiber.Ctx) error {
	chat, err := parseChatRef(ctx.Params("id"), ctx.Query("type"))
	if err != nil {
		return controller.sendError(ctx, err)
	}

	roles, err := controller.ChatUsecase.GetRoles(ctx.UserContext(), chat)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	return util.SendSuccessResponseWithData(ctx, roles)
}

func (controller ChatController) GetLogs(ctx *fiber.Ctx) error {
	chat, err := parseChatRef(ctx.Params("id"), ctx.Query("type"))
	if err != nil {
		return controller.sendError(ctx, err)
	}

	lines, err := controller.ChatUsecase.GetAuditLog(ctx.UserContext(), chat, ctx.QueryInt("limit", usecase.DefaultAuditLogLimit))
	if err != nil {
		return controller.sendError(ctx, err)
	}

	return util.SendSuccessResponseWithData(ctx, lines)
}

func (controller ChatController) GetRights(ctx *fiber.Ctx) error {
	chat, err := parseChatRef(ctx.Params("chat"), ctx.Query("type"))
	if err != nil {
		return controller.sendError(ctx, err)
	}

	userId, err := strconv.ParseInt(ctx.Params("user"), 10, 64)
	if err != nil || userId == 0 {
		return controller.sendError(ctx, model.NewParamsValidationError("User id must be a non-zero number"))
	}

	rights, err := controller.ChatUsecase.GetMemberRights(ctx.UserContext(), chat, userId)
	if err != nil {
		return controller.sendError(ctx, err)
	}

	response := model.MemberRightsResponse{
		UserId:   rights.UserId,
		ChatId:   rights.ChatId,
		Role:     rights.Role,
		RoleName: rights.RoleName,
		Rights:   make(map[string]bool, len(rights.Rights)),
	}
	for capability, allowed := range rights.Rights {
		response.Rights[string(capability)] = allowed
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
