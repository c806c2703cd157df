package usecase

import (
	"context"
	"time"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/ferdian3456/chatmoderation/internal/observability"
	"github.com/ferdian3456/chatmoderation/internal/phrase"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PunishmentUsecase runs the kick, mute and leave pipelines:
// authorize, load members, check ordering, execute on VK, persist, audit.
type PunishmentUsecase struct {
	Permission *PermissionUsecase
	Names      *NameUsecase
	Audit      *AuditUsecase
	ChatStore  ChatStore
	Gateway    ModerationGateway
	Log        *zap.Logger
	Timezone   int
	Now        func() time.Time
}

func NewPunishmentUsecase(permission *PermissionUsecase, names *NameUsecase, audit *AuditUsecase, chatStore ChatStore, gateway ModerationGateway, zap *zap.Logger, timezone int) *PunishmentUsecase {
	return &PunishmentUsecase{
		Permission: permission,
		Names:      names,
		Audit:      audit,
		ChatStore:  chatStore,
		Gateway:    gateway,
		Log:        zap,
		Timezone:   timezone,
		Now:        time.Now,
	}
}

// CheckCanPunish fails with NeedHigherRole when the target outranks the punisher
// and with HaveImmunity when the target's immunity reaches the punisher's role.
func CheckCanPunish(punisher model.ChatMember, target model.ChatMember) error {
	if punisher.Role < target.Role {
		return model.NewNeedHigherRole()
	}

	if target.HasImmunity() && *target.Immunity >= punisher.Role {
		return model.NewHaveImmunity()
	}

	return nil
}

func (usecase *PunishmentUsecase) actionLogger(ctx context.Context, actionId uuid.UUID, capability model.Capability, ref model.ChatRef) *zap.Logger {
	return observability.WithContext(ctx, usecase.Log).With(
		zap.String("actionId", actionId.String()),
		zap.String("capability", string(capability)),
		zap.String("chat", ref.String()),
	)
}

// loadPair reads the punisher and the target membership rows.
func (usecase *PunishmentUsecase) loadPair(ctx context.Context, ref model.ChatRef, punisherId int64, targetId int64) (model.ChatMember, model.ChatMember, error) {
	punisher, err := usecase.ChatStore.GetMember(ctx, ref, punisherId)
	if err != nil {
		return model.ChatMember{}, model.ChatMember{}, err
	}

	target, err := usecase.ChatStore.GetMember(ctx, ref, targetId)
	if err != nil {
		return model.ChatMember{}, model.ChatMember{}, err
	}

	return punisher, target, nil
}

// resolvePair resolves both names concurrently.
func (usecase *PunishmentUsecase) resolvePair(ctx context.Context, punisherId int64, targetId int64) (ResolvedName, ResolvedName, error) {
	var punisher, target ResolvedName

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		punisher, err = usecase.Names.Resolve(gctx, punisherId)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = usecase.Names.Resolve(gctx, targetId)
		return err
	})

	if err := g.Wait(); err != nil {
		return ResolvedName{}, ResolvedName{}, err
	}

	return punisher, target, nil
}

// finish persists the member update result and writes the audit line.
// A failed update after an executed action is reported as StateDiverged.
func (usecase *PunishmentUsecase) finish(ctx context.Context, log *zap.Logger, record model.PunishmentRecord, result model.PunishmentResult, updateErr error) (model.PunishmentResult, error) {
	result.MemberUpdated = updateErr == nil
	if updateErr != nil {
		log.Error("member state diverged from vk after executed action",
			zap.Int64("target", record.Target),
			zap.Error(updateErr),
		)
	}

	broadcast, err := usecase.Audit.Record(ctx, log, record.ChatId, record.AuditText)
	if err != nil {
		log.Error("failed to write audit line", zap.Error(err))
		if updateErr == nil {
			return result, err
		}
	}
	result.Audited = err == nil
	result.Broadcast = broadcast

	if updateErr != nil {
		return result, model.NewStateDiverged(updateErr)
	}

	log.Info("punishment executed", zap.Int64("actor", record.Actor), zap.Int64("target", record.Target))
	return result, nil
}

func (usecase *PunishmentUsecase) Kick(ctx context.Context, request model.KickRequest) (model.PunishmentResult, error) {
	result := model.PunishmentResult{ActionId: uuid.New()}
	ctx, span := observability.StartSpan(ctx, "PunishmentUsecase.Kick", attribute.String("action.id", result.ActionId.String()))
	defer span.End()
	log := usecase.actionLogger(ctx, result.ActionId, model.CapabilityKick, request.Chat)

	err := usecase.Permission.Authorize(ctx, request.Punisher, request.Chat, model.CapabilityKick)
	if err != nil {
		return result, err
	}

	punisher, target, err := usecase.loadPair(ctx, request.Chat, request.Punisher, request.User)
	if err != nil {
		return result, err
	}

	err = CheckCanPunish(punisher, target)
	if err != nil {
		return result, err
	}

	chatId, err := usecase.ChatStore.ResolveChatId(ctx, request.Chat)
	if err != nil {
		return result, err
	}

	punisherName, targetName, err := usecase.resolvePair(ctx, request.Punisher, request.User)
	if err != nil {
		return result, err
	}

	record := model.PunishmentRecord{
		ActionId:   result.ActionId,
		ChatId:     chatId,
		Actor:      request.Punisher,
		Target:     request.User,
		Capability: model.CapabilityKick,
		Reason:     request.Reason,
		AuditText: phrase.Render(phrase.KickUserParams{
			User:     targetName.Mention(model.CaseAccusative),
			Punisher: punisherName.Mention(model.CaseNominative),
			Gender:   punisherName.Gender,
			Reason:   request.Reason,
		}),
	}

	err = usecase.Gateway.KickUser(ctx, chatId, request.User)
	if err != nil {
		log.Info("vk rejected kick", zap.Error(err))
		return result, err
	}
	result.Executed = true

	updateErr := usecase.ChatStore.UpdateKickedMember(ctx, chatId, request.User)

	return usecase.finish(ctx, log, record, result, updateErr)
}

func (usecase *PunishmentUsecase) Mute(ctx context.Context, request model.MuteRequest) (model.PunishmentResult, error) {
	result := model.PunishmentResult{ActionId: uuid.New()}
	ctx, span := observability.StartSpan(ctx, "PunishmentUsecase.Mute", attribute.String("action.id", result.ActionId.String()))
	defer span.End()
	log := usecase.actionLogger(ctx, result.ActionId, model.CapabilityMute, request.Chat)

	if request.Duration < 0 && request.Duration != model.PermanentMute {
		return result, model.NewParamsValidationError("Mute duration must be -1 or a number of seconds")
	}

	err := usecase.Permission.Authorize(ctx, request.Punisher, request.Chat, model.CapabilityMute)
	if err != nil {
		return result, err
	}

	punisher, target, err := usecase.loadPair(ctx, request.Chat, request.Punisher, request.User)
	if err != nil {
		return result, err
	}

	err = CheckCanPunish(punisher, target)
	if err != nil {
		return result, err
	}

	chatId, err := usecase.ChatStore.ResolveChatId(ctx, request.Chat)
	if err != nil {
		return result, err
	}

	punisherName, targetName, err := usecase.resolvePair(ctx, request.Punisher, request.User)
	if err != nil {
		return result, err
	}

	now := usecase.Now()
	muteUntil := model.PermanentMute
	if until, ok := phrase.MuteUntil(now, request.Duration); ok {
		muteUntil = until.Unix()
	}

	record := model.PunishmentRecord{
		ActionId:   result.ActionId,
		ChatId:     chatId,
		Actor:      request.Punisher,
		Target:     request.User,
		Capability: model.CapabilityMute,
		Reason:     request.Reason,
		AuditText: phrase.Render(phrase.MuteUserParams{
			User:     targetName.Mention(model.CaseDative),
			Punisher: punisherName.Mention(model.CaseNominative),
			Gender:   punisherName.Gender,
			Time:     phrase.MuteTime(now, request.Duration, usecase.chatTimezone(ctx, log, chatId)),
			Reason:   request.Reason,
		}),
	}

	err = usecase.Gateway.MuteUser(ctx, chatId, []int64{request.User}, request.Duration)
	if err != nil {
		log.Info("vk rejected mute", zap.Error(err))
		return result, err
	}
	result.Executed = true

	updateErr := usecase.ChatStore.UpdateMutedMember(ctx, chatId, request.User, muteUntil)

	return usecase.finish(ctx, log, record, result, updateErr)
}

// Leave removes the caller from the chat. No ordering check applies to oneself.
func (usecase *PunishmentUsecase) Leave(ctx context.Context, request model.LeaveRequest) (model.PunishmentResult, error) {
	result := model.PunishmentResult{ActionId: uuid.New()}
	ctx, span := observability.StartSpan(ctx, "PunishmentUsecase.Leave", attribute.String("action.id", result.ActionId.String()))
	defer span.End()
	log := usecase.actionLogger(ctx, result.ActionId, model.CapabilitySelfKick, request.Chat)

	err := usecase.Permission.Authorize(ctx, request.User, request.Chat, model.CapabilitySelfKick)
	if err != nil {
		return result, err
	}

	_, err = usecase.ChatStore.GetMember(ctx, request.Chat, request.User)
	if err != nil {
		return result, err
	}

	chatId, err := usecase.ChatStore.ResolveChatId(ctx, request.Chat)
	if err != nil {
		return result, err
	}

	name, err := usecase.Names.Resolve(ctx, request.User)
	if err != nil {
		return result, err
	}

	mention, err := mentionWithNick(ctx, usecase.ChatStore, chatId, name)
	if err != nil {
		return result, err
	}

	record := model.PunishmentRecord{
		ActionId:   result.ActionId,
		ChatId:     chatId,
		Actor:      request.User,
		Target:     request.User,
		Capability: model.CapabilitySelfKick,
		AuditText: phrase.Render(phrase.UserLeaveParams{
			User:   mention,
			Gender: name.Gender,
		}),
	}

	err = usecase.Gateway.KickUser(ctx, chatId, request.User)
	if err != nil {
		log.Info("vk rejected leave", zap.Error(err))
		return result, err
	}
	result.Executed = true

	updateErr := usecase.ChatStore.UpdateKickedMember(ctx, chatId, request.User)

	return usecase.finish(ctx, log, record, result, updateErr)
}

func (usecase *PunishmentUsecase) chatTimezone(ctx context.Context, log *zap.Logger, chatId int64) int {
	chat, err := usecase.ChatStore.GetChat(ctx, chatId)
	if err != nil {
		log.Debug("using default timezone for audit date", zap.Error(err))
		return usecase.Timezone
	}

	return chat.Timezone
}

// mentionWithNick labels the mention with the member's chat nick when one is set.
func mentionWithNick(ctx context.Context, chatStore ChatStore, chatId int64, name ResolvedName) (string, error) {
	nick, err := chatStore.GetMemberNick(ctx, chatId, name.Id)
	if err != nil {
		return "", err
	}

	if nick != "" {
		return phrase.MentionName(name.Id, nick), nil
	}

	return name.Mention(model.CaseNominative), nil
}
