package usecase

import (
	"context"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/ferdian3456/chatmoderation/internal/observability"
	"github.com/ferdian3456/chatmoderation/internal/phrase"
	"go.uber.org/zap"
)

type ChatUsecase struct {
	Permission *PermissionUsecase
	Names      *NameUsecase
	Audit      *AuditUsecase
	ChatStore  ChatStore
	Log        *zap.Logger
}

func NewChatUsecase(permission *PermissionUsecase, names *NameUsecase, audit *AuditUsecase, chatStore ChatStore, zap *zap.Logger) *ChatUsecase {
	return &ChatUsecase{
		Permission: permission,
		Names:      names,
		Audit:      audit,
		ChatStore:  chatStore,
		Log:        zap,
	}
}

func (usecase *ChatUsecase) GetSettings(ctx context.Context, ref model.ChatRef) (model.ChatSettings, error) {
	return usecase.ChatStore.GetSettings(ctx, ref)
}

func (usecase *ChatUsecase) SetSetting(ctx context.Context, request model.SetSettingRequest) error {
	log := observability.WithContext(ctx, usecase.Log).With(
		zap.String("chat", request.Chat.String()),
		zap.String("setting", string(request.Setting)),
	)

	err := usecase.Permission.Authorize(ctx, request.User, request.Chat, model.CapabilitySettings)
	if err != nil {
		return err
	}

	chatId, err := usecase.ChatStore.ResolveChatId(ctx, request.Chat)
	if err != nil {
		return err
	}

	err = usecase.ChatStore.SetSetting(ctx, request.Chat, request.Setting, request.Value)
	if err != nil {
		return err
	}

	name, err := usecase.Names.Resolve(ctx, request.User)
	if err != nil {
		return err
	}

	mention, err := mentionWithNick(ctx, usecase.ChatStore, chatId, name)
	if err != nil {
		return err
	}

	text := phrase.Render(phrase.ChangeSettingParams{
		User:    mention,
		Gender:  name.Gender,
		Setting: request.Setting.Description(),
		Enabled: request.Value,
	})

	_, err = usecase.Audit.Record(ctx, log, chatId, text)
	if err != nil {
		return err
	}

	log.Info("chat setting changed", zap.Int64("user", request.User), zap.Bool("value", request.Value))
	return nil
}

// GetRoles returns chat roles merged with the built-in names, highest level first.
func (usecase *ChatUsecase) GetRoles(ctx context.Context, ref model.ChatRef) ([]model.Role, error) {
	roles, err := usecase.ChatStore.GetRoles(ctx, ref)
	if err != nil {
		return nil, err
	}

	return model.MergeDefaultRoles(roles), nil
}

func (usecase *ChatUsecase) GetAuditLog(ctx context.Context, ref model.ChatRef, limit int) ([]model.AuditLine, error) {
	return usecase.Audit.List(ctx, ref, limit)
}

func (usecase *ChatUsecase) GetMemberRights(ctx context.Context, ref model.ChatRef, userId int64) (model.MemberRights, error) {
	return usecase.Permission.GetMemberRights(ctx, ref, userId)
}
