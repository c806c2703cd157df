package usecase

import (
	"context"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"go.uber.org/zap"
)

// PermissionUsecase answers whether a member may use a capability. Nothing is cached:
// every call reads the current role and threshold.
type PermissionUsecase struct {
	ChatStore ChatStore
	Log       *zap.Logger
}

func NewPermissionUsecase(chatStore ChatStore, zap *zap.Logger) *PermissionUsecase {
	return &PermissionUsecase{
		ChatStore: chatStore,
		Log:       zap,
	}
}

func (usecase *PermissionUsecase) HasRight(ctx context.Context, actorId int64, ref model.ChatRef, capability model.Capability) (bool, error) {
	minRole, err := usecase.ChatStore.GetCommandMinRole(ctx, ref, capability)
	if err != nil {
		return false, err
	}

	member, err := usecase.ChatStore.GetMember(ctx, ref, actorId)
	if err != nil {
		return false, err
	}

	return member.Role >= minRole, nil
}

// Authorize is HasRight with a false answer turned into NoPermissions.
func (usecase *PermissionUsecase) Authorize(ctx context.Context, actorId int64, ref model.ChatRef, capability model.Capability) error {
	allowed, err := usecase.HasRight(ctx, actorId, ref, capability)
	if err != nil {
		return err
	}

	if !allowed {
		usecase.Log.Debug("capability denied",
			zap.Int64("actor", actorId),
			zap.String("chat", ref.String()),
			zap.String("capability", string(capability)),
		)
		return model.NewNoPermissions()
	}

	return nil
}

func (usecase *PermissionUsecase) GetMemberRights(ctx context.Context, ref model.ChatRef, userId int64) (model.MemberRights, error) {
	access, err := usecase.ChatStore.GetChatCommandAccess(ctx, ref)
	if err != nil {
		return model.MemberRights{}, err
	}

	member, err := usecase.ChatStore.GetMember(ctx, ref, userId)
	if err != nil {
		return model.MemberRights{}, err
	}

	roles, err := usecase.ChatStore.GetRoles(ctx, ref)
	if err != nil {
		return model.MemberRights{}, err
	}

	rights := model.MemberRights{
		UserId:   userId,
		ChatId:   access[0].ChatId,
		Role:     member.Role,
		RoleName: model.RoleName(roles, member.Role),
		Rights:   make(map[model.Capability]bool, len(access)),
	}
	for _, entry := range access {
		rights.Rights[entry.Capability] = member.Role >= entry.MinRole
	}

	return rights, nil
}
