package model

// Request bodies of the chat routes. Type is peer_id (default) or uid and tells how to read the :id param.

type KickMemberRequest struct {
	Type     string `json:"type"`
	User     int64  `json:"user"`
	Punisher int64  `json:"punisher"`
	Reason   string `json:"reason"`
}

type MuteMemberRequest struct {
	Type     string `json:"type"`
	User     int64  `json:"user"`
	Punisher int64  `json:"punisher"`
	Reason   string `json:"reason"`
	Time     *int64 `json:"time"`
}

type LeaveChatRequest struct {
	Type string `json:"type"`
	User int64  `json:"user"`
}

type SetSettingPayload struct {
	Type    string `json:"type"`
	User    int64  `json:"user"`
	Setting string `json:"setting"`
	Value   *bool  `json:"value"`
}

type SettingResponse struct {
	Key         SettingKey `json:"key"`
	Description string     `json:"description"`
	Value       bool       `json:"value"`
}

type MemberRightsResponse struct {
	UserId   int64           `json:"user_id"`
	ChatId   int64           `json:"chat_id"`
	Role     int             `json:"role"`
	RoleName string          `json:"role_name"`
	Rights   map[string]bool `json:"rights"`
}
