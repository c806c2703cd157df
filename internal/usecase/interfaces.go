package usecase

import (
	"context"

	"github.com/ferdian3456/chatmoderation/internal/model"
)

// ChatStore is the part of repository.ChatRepository the usecases depend on.
type ChatStore interface {
	ResolveChatId(ctx context.Context, ref model.ChatRef) (int64, error)
	GetChat(ctx context.Context, chatId int64) (model.Chat, error)
	GetCommandMinRole(ctx context.Context, ref model.ChatRef, capability model.Capability) (int, error)
	GetChatCommandAccess(ctx context.Context, ref model.ChatRef) ([]model.CommandAccess, error)
	GetMember(ctx context.Context, ref model.ChatRef, userId int64) (model.ChatMember, error)
	UpdateKickedMember(ctx context.Context, chatId int64, userId int64) error
	UpdateMutedMember(ctx context.Context, chatId int64, userId int64, muteUntil int64) error
	GetMemberNick(ctx context.Context, chatId int64, userId int64) (string, error)
	GetRoles(ctx context.Context, ref model.ChatRef) (map[int]model.Role, error)
	GetSettings(ctx context.Context, ref model.ChatRef) (model.ChatSettings, error)
	SetSetting(ctx context.Context, ref model.ChatRef, key model.SettingKey, value bool) error
}

type NameStore interface {
	GetNameInfo(ctx context.Context, userId int64) (model.NameInfo, error)
}

type AuditStore interface {
	InsertAuditLine(ctx context.Context, line model.AuditLine) error
	ListAuditLines(ctx context.Context, ref model.ChatRef, limit int) ([]model.AuditLine, error)
}

// ModerationGateway is implemented by vk.Client.
type ModerationGateway interface {
	KickUser(ctx context.Context, peerId int64, memberId int64) error
	MuteUser(ctx context.Context, peerId int64, memberIds []int64, duration int64) error
	GetConversationMembers(ctx context.Context, peerId int64, fields string) (model.VKConversationMembers, error)
	SendMessage(ctx context.Context, peerId int64, text string) error
}
