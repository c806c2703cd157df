package usecase

import (
	"context"
	"time"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/ferdian3456/chatmoderation/internal/observability"
	"go.uber.org/zap"
)

const (
	DefaultAuditLogLimit = 50
	MaxAuditLogLimit     = 200
)

// AuditUsecase writes audit lines to the log table and echoes them into the chat.
type AuditUsecase struct {
	AuditStore AuditStore
	Gateway    ModerationGateway
	Log        *zap.Logger
	Now        func() time.Time
}

func NewAuditUsecase(auditStore AuditStore, gateway ModerationGateway, zap *zap.Logger) *AuditUsecase {
	return &AuditUsecase{
		AuditStore: auditStore,
		Gateway:    gateway,
		Log:        zap,
		Now:        time.Now,
	}
}

func (usecase *AuditUsecase) Append(ctx context.Context, chatId int64, text string) error {
	line := model.AuditLine{
		ChatId:   chatId,
		Text:     text,
		DateUnix: usecase.Now().Unix(),
	}

	return usecase.AuditStore.InsertAuditLine(ctx, line)
}

// Broadcast sends text into the chat. Failures are logged and reported as false only.
func (usecase *AuditUsecase) Broadcast(ctx context.Context, log *zap.Logger, chatId int64, text string) bool {
	err := usecase.Gateway.SendMessage(ctx, chatId, text)
	if err != nil {
		log.Warn("failed to broadcast audit line to chat", zap.Int64("chatId", chatId), zap.Error(err))
		return false
	}

	return true
}

// Record appends the line and then broadcasts it. Only the append error is returned.
func (usecase *AuditUsecase) Record(ctx context.Context, log *zap.Logger, chatId int64, text string) (bool, error) {
	err := usecase.Append(ctx, chatId, text)
	if err != nil {
		return false, err
	}

	return usecase.Broadcast(ctx, log, chatId, text), nil
}

func (usecase *AuditUsecase) List(ctx context.Context, ref model.ChatRef, limit int) ([]model.AuditLine, error) {
	if limit <= 0 {
		limit = DefaultAuditLogLimit
	} else if limit > MaxAuditLogLimit {
		limit = MaxAuditLogLimit
	}

	lines, err := usecase.AuditStore.ListAuditLines(ctx, ref, limit)
	if err != nil {
		observability.WithContext(ctx, usecase.Log).Debug("failed to list audit lines", zap.String("chat", ref.String()), zap.Error(err))
		return nil, err
	}

	return lines, nil
}
