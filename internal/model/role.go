package model

import "sort"

const (
	RoleMember      = 0
	RoleModerator   = 20
	RoleSeniorMod   = 40
	RoleAdmin       = 60
	RoleSeniorAdmin = 80
	RoleOwner       = 100
	unknownRoleName = "Ошибка"
)

var defaultRoleNames = map[int]string{
	RoleMember:      "Участник",
	RoleModerator:   "Модератор",
	RoleSeniorMod:   "Старший Модератор",
	RoleAdmin:       "Администратор",
	RoleSeniorAdmin: "Старший Администратор",
	RoleOwner:       "Создатель чата",
}

type Role struct {
	ChatId int64  `json:"-"`
	Level  int    `json:"level"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
}

// DefaultRoleName returns the built-in name for level.
func DefaultRoleName(level int) string {
	if name, ok := defaultRoleNames[level]; ok {
		return name
	}
	return unknownRoleName
}

// RoleName returns the chat-defined name for level or the built-in one.
func RoleName(defined map[int]Role, level int) string {
	if role, ok := defined[level]; ok && role.Name != "" {
		return role.Name
	}
	return DefaultRoleName(level)
}

// MergeDefaultRoles fills undefined built-in levels and sorts by level, highest first.
func MergeDefaultRoles(defined map[int]Role) []Role {
	merged := make(map[int]Role, len(defined)+len(defaultRoleNames))
	for level, role := range defined {
		merged[level] = role
	}
	for level, name := range defaultRoleNames {
		if _, ok := merged[level]; !ok {
			merged[level] = Role{Level: level, Name: name}
		}
	}

	roles := make([]Role, 0, len(merged))
	for _, role := range merged {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Level > roles[j].Level
	})

	return roles
}
