package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const chatUidCacheTTL = 24 * time.Hour

type ChatRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
	lookups singleflight.Group
}

func NewChatRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *ChatRepository {
	return &ChatRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

// chatCondition returns the SQL operand that yields chat_id for ref, bound to placeholder $n.
func chatCondition(ref model.ChatRef, n int) (string, any, error) {
	switch ref.Type {
	case model.ChatIdTypePeer:
		peerId, ok := ref.PeerId()
		if !ok {
			return "", nil, model.NewParamsValidationError("chat peer id must be a number")
		}
		return fmt.Sprintf("$%d", n), peerId, nil
	case model.ChatIdTypeUid:
		return fmt.Sprintf("(SELECT chat_id FROM chats WHERE chat_uid = $%d LIMIT 1)", n), ref.Value, nil
	default:
		return "", nil, model.NewParamsValidationError("chat id type must be peer_id or uid")
	}
}

// Postgresql + Redis
func (repository *ChatRepository) GetChatIdFromUid(ctx context.Context, uid string) (int64, error) {
	cacheKey := fmt.Sprintf("chat:uid:%s", uid)

	cached, err := repository.DBCache.Get(ctx, cacheKey).Result()
	if err == nil {
		chatId, parseErr := strconv.ParseInt(cached, 10, 64)
		if parseErr == nil {
			return chatId, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		repository.Log.Warn("failed to read chat uid from cache", zap.String("uid", uid), zap.Error(err))
	}

	// shared by every waiter on uid
	lookupCtx := context.WithoutCancel(ctx)

	value, err, _ := repository.lookups.Do(uid, func() (interface{}, error) {
		query := "SELECT chat_id FROM chats WHERE chat_uid=$1 LIMIT 1"

		var chatId int64
		err := repository.DB.QueryRow(lookupCtx, query, uid).Scan(&chatId)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return int64(0), model.NewQueryError("Chat is not found")
			}
			return int64(0), err
		}

		err = repository.DBCache.Set(lookupCtx, cacheKey, chatId, chatUidCacheTTL).Err()
		if err != nil {
			repository.Log.Warn("failed to cache chat uid", zap.String("uid", uid), zap.Error(err))
		}

		return chatId, nil
	})
	if err != nil {
		return 0, err
	}

	return value.(int64), nil
}

func (repository *ChatRepository) ResolveChatId(ctx context.Context, ref model.ChatRef) (int64, error) {
	if ref.Type == model.ChatIdTypeUid {
		return repository.GetChatIdFromUid(ctx, ref.Value)
	}

	peerId, ok := ref.PeerId()
	if !ok {
		return 0, model.NewParamsValidationError("chat peer id must be a number")
	}

	return peerId, nil
}

func (repository *ChatRepository) GetChat(ctx context.Context, chatId int64) (model.Chat, error) {
	query := "SELECT chat_id, chat_uid, title, invite_role, timezone FROM chats WHERE chat_id=$1 LIMIT 1"

	chat := model.Chat{}
	err := repository.DB.QueryRow(ctx, query, chatId).Scan(&chat.ChatId, &chat.ChatUid, &chat.Title, &chat.InviteRole, &chat.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat, model.NewQueryError("Chat is not found")
		}
		return chat, err
	}

	return chat, nil
}

func (repository *ChatRepository) GetCommandMinRole(ctx context.Context, ref model.ChatRef, capability model.Capability) (int, error) {
	condition, chatArg, err := chatCondition(ref, 2)
	if err != nil {
		return 0, err
	}

	query := `SELECT a.role
			FROM commands_access a
			JOIN commands c ON c.id = a.command
			WHERE c.name = $1 AND a.chat_id = ` + condition + `
			LIMIT 1`

	var minRole int
	err = repository.DB.QueryRow(ctx, query, string(capability), chatArg).Scan(&minRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.NewQueryError("Command access is not configured for this chat")
		}
		return 0, err
	}

	return minRole, nil
}

func (repository *ChatRepository) GetChatCommandAccess(ctx context.Context, ref model.ChatRef) ([]model.CommandAccess, error) {
	condition, chatArg, err := chatCondition(ref, 1)
	if err != nil {
		return nil, err
	}

	query := `SELECT a.chat_id, c.name, a.role
			FROM commands_access a
			JOIN commands c ON c.id = a.command
			WHERE a.chat_id = ` + condition

	rows, err := repository.DB.Query(ctx, query, chatArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var access []model.CommandAccess
	for rows.Next() {
		var entry model.CommandAccess
		var name string
		err = rows.Scan(&entry.ChatId, &name, &entry.MinRole)
		if err != nil {
			return nil, err
		}

		capability, ok := model.ParseCapability(name)
		if !ok {
			repository.Log.Debug("skipping unknown command in access table", zap.String("command", name))
			continue
		}
		entry.Capability = capability
		access = append(access, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(access) == 0 {
		return nil, model.NewQueryError("Command rights are not found for this chat")
	}

	return access, nil
}

func (repository *ChatRepository) GetMember(ctx context.Context, ref model.ChatRef, userId int64) (model.ChatMember, error) {
	condition, chatArg, err := chatCondition(ref, 2)
	if err != nil {
		return model.ChatMember{}, err
	}

	query := `SELECT chat_id, user_id, role, immunity, warns, mute, in_chat, invited_by, last_message
			FROM users
			WHERE user_id = $1 AND chat_id = ` + condition + `
			LIMIT 1`

	member := model.ChatMember{}
	var immunity *int
	var inChat int16
	err = repository.DB.QueryRow(ctx, query, userId, chatArg).Scan(&member.ChatId, &member.UserId, &member.Role, &immunity, &member.Warns, &member.MuteUntil, &inChat, &member.InvitedBy, &member.LastMessage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member, model.NewQueryError("Chat member is not found")
		}
		return member, err
	}

	// 0 is stored by the bot for "no immunity"
	if immunity != nil && *immunity != 0 {
		member.Immunity = immunity
	}
	member.InChat = inChat == 1

	return member, nil
}

func (repository *ChatRepository) UpdateKickedMember(ctx context.Context, chatId int64, userId int64) error {
	query := `UPDATE users
			SET
				in_chat = 0,
				invited_by = 0,
				last_message = 0,
				role = CASE
					WHEN (SELECT un_role_after_kick FROM settings WHERE chat_id = $1)
					THEN (SELECT invite_role FROM chats WHERE chat_id = $1)
					ELSE role
				END
			WHERE user_id = $2 AND chat_id = $1`

	tag, err := repository.DB.Exec(ctx, query, chatId, userId)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.NewQueryError("Failed to update chat member after kick")
	}

	return nil
}

func (repository *ChatRepository) UpdateMutedMember(ctx context.Context, chatId int64, userId int64, muteUntil int64) error {
	query := "UPDATE users SET mute = $3 WHERE chat_id = $1 AND user_id = $2"

	tag, err := repository.DB.Exec(ctx, query, chatId, userId, muteUntil)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.NewQueryError("Failed to update chat member after mute")
	}

	return nil
}

func (repository *ChatRepository) GetMemberNick(ctx context.Context, chatId int64, userId int64) (string, error) {
	query := "SELECT nick FROM nicks WHERE chat_id = $1 AND user_id = $2 LIMIT 1"

	var nick string
	err := repository.DB.QueryRow(ctx, query, chatId, userId).Scan(&nick)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return nick, nil
}

func (repository *ChatRepository) GetRoles(ctx context.Context, ref model.ChatRef) (map[int]model.Role, error) {
	condition, chatArg, err := chatCondition(ref, 1)
	if err != nil {
		return nil, err
	}

	query := "SELECT chat_id, level, name, emoji FROM roles WHERE chat_id = " + condition

	rows, err := repository.DB.Query(ctx, query, chatArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make(map[int]model.Role)
	for rows.Next() {
		var role model.Role
		err = rows.Scan(&role.ChatId, &role.Level, &role.Name, &role.Emoji)
		if err != nil {
			return nil, err
		}
		roles[role.Level] = role
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

func (repository *ChatRepository) GetSettings(ctx context.Context, ref model.ChatRef) (model.ChatSettings, error) {
	condition, chatArg, err := chatCondition(ref, 1)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(model.SettingKeys))
	for i, key := range model.SettingKeys {
		columns[i] = pgx.Identifier{key.Column()}.Sanitize()
	}

	query := "SELECT " + strings.Join(columns, ", ") + " FROM settings WHERE chat_id = " + condition + " LIMIT 1"

	values := make([]bool, len(model.SettingKeys))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}

	err = repository.DB.QueryRow(ctx, query, chatArg).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewQueryError("Chat settings are not found")
		}
		return nil, err
	}

	chatSettings := make(model.ChatSettings, len(values))
	for i, key := range model.SettingKeys {
		chatSettings[key] = values[i]
	}

	return chatSettings, nil
}

func (repository *ChatRepository) SetSetting(ctx context.Context, ref model.ChatRef, key model.SettingKey, value bool) error {
	condition, chatArg, err := chatCondition(ref, 2)
	if err != nil {
		return err
	}

	query := "UPDATE settings SET " + pgx.Identifier{key.Column()}.Sanitize() + " = $1 WHERE chat_id = " + condition

	tag, err := repository.DB.Exec(ctx, query, value, chatArg)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.NewQueryError("Failed to change chat settings")
	}

	return nil
}
