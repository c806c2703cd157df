package model

// SettingKey is one boolean chat setting. Unknown keys are rejected by ParseSettingKey.
type SettingKey string

const (
	SettingToggleFeed      SettingKey = "togglefeed"
	SettingKickMenu        SettingKey = "kickmenu"
	SettingLeaveMenu       SettingKey = "leavemenu"
	SettingHideUsers       SettingKey = "hideusers"
	SettingNameType        SettingKey = "nameType"
	SettingUnPunishNotify  SettingKey = "unPunishNotify"
	SettingUnRoleAfterKick SettingKey = "unRoleAfterKick"
	SettingAutoUnban       SettingKey = "autounban"
	SettingRoleLevelStats  SettingKey = "roleLevelStats"
	SettingMuteType        SettingKey = "muteType"
	SettingStatsMessages   SettingKey = "si_messages"
	SettingStatsSmilies    SettingKey = "si_smilies"
	SettingStatsStickers   SettingKey = "si_stickers"
	SettingStatsReply      SettingKey = "si_reply"
	SettingStatsPhoto      SettingKey = "si_photo"
	SettingStatsVideo      SettingKey = "si_video"
	SettingStatsFiles      SettingKey = "si_files"
	SettingStatsAudio      SettingKey = "si_audio"
	SettingStatsReposts    SettingKey = "si_reposts"
	SettingStatsMats       SettingKey = "si_mats"
)

type settingInfo struct {
	column      string
	description string
}

var settings = map[SettingKey]settingInfo{
	SettingToggleFeed:      {"toggle_feed", "оповещение чата о важных обновлениях"},
	SettingKickMenu:        {"kick_menu", "отображение меню с действиями после исключения участника из чата"},
	SettingLeaveMenu:       {"leave_menu", "отображение меню с действиями после выхода участника из чата"},
	SettingHideUsers:       {"hide_users", "скрытие бывших участников чата из топа"},
	SettingNameType:        {"name_type", "замену имени и фамилии участников на ник"},
	SettingUnPunishNotify:  {"un_punish_notify", "оповещение чата об окончании срока блокировки, блокировки чата участника"},
	SettingUnRoleAfterKick: {"un_role_after_kick", "выдачу роли по умолчанию участнику после исключения его из чата"},
	SettingAutoUnban:       {"auto_unban", "разбан участника, если его пригласил в чат старший администратор"},
	SettingRoleLevelStats:  {"role_level_stats", "отображение уровня роли участника в статистике"},
	SettingMuteType:        {"mute_type", "блокировку чата участникам с помощью новой системы от ВК"},
	SettingStatsMessages:   {"si_messages", "отображение сообщений на графике"},
	SettingStatsSmilies:    {"si_smilies", "отображение смайлов на графике"},
	SettingStatsStickers:   {"si_stickers", "отображение стикеров на графике"},
	SettingStatsReply:      {"si_reply", "отображение пересланных сообщений на графике"},
	SettingStatsPhoto:      {"si_photo", "отображение фото на графике"},
	SettingStatsVideo:      {"si_video", "отображение видео на графике"},
	SettingStatsFiles:      {"si_files", "отображение файлов на графике"},
	SettingStatsAudio:      {"si_audio", "отображение голосовых сообщений на графике"},
	SettingStatsReposts:    {"si_reposts", "отображение репостов на графике"},
	SettingStatsMats:       {"si_mats", "отображение сообщений с матом на графике"},
}

// SettingKeys lists keys in a stable order.
var SettingKeys = []SettingKey{
	SettingToggleFeed, SettingKickMenu, SettingLeaveMenu, SettingHideUsers, SettingNameType,
	SettingUnPunishNotify, SettingUnRoleAfterKick, SettingAutoUnban, SettingRoleLevelStats, SettingMuteType,
	SettingStatsMessages, SettingStatsSmilies, SettingStatsStickers, SettingStatsReply, SettingStatsPhoto,
	SettingStatsVideo, SettingStatsFiles, SettingStatsAudio, SettingStatsReposts, SettingStatsMats,
}

func ParseSettingKey(name string) (SettingKey, bool) {
	key := SettingKey(name)
	_, ok := settings[key]
	return key, ok
}

// Column is the settings table column backing the key.
func (k SettingKey) Column() string {
	return settings[k].column
}

func (k SettingKey) Description() string {
	return settings[k].description
}

// ChatSettings maps every known key to its current value.
type ChatSettings map[SettingKey]bool

type SetSettingRequest struct {
	Chat    ChatRef
	User    int64
	Setting SettingKey
	Value   bool
}
