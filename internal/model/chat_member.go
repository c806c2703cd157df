package model

type ChatMember struct {
	ChatId      int64
	UserId      int64
	Role        int
	Immunity    *int
	Warns       int
	MuteUntil   int64
	InChat      bool
	InvitedBy   int64
	LastMessage int64
}

// HasImmunity reports whether an immunity level is set.
func (m ChatMember) HasImmunity() bool {
	return m.Immunity != nil
}

type MemberRights struct {
	UserId   int64
	ChatId   int64
	Role     int
	RoleName string
	Rights   map[Capability]bool
}
