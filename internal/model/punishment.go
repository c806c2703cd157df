package model

import "github.com/google/uuid"

// PermanentMute is the mute duration that never expires.
const PermanentMute int64 = -1

type KickRequest struct {
	Chat     ChatRef
	User     int64
	Punisher int64
	Reason   string
}

type MuteRequest struct {
	Chat     ChatRef
	User     int64
	Punisher int64
	Reason   string
	// Duration in seconds, PermanentMute for no expiry.
	Duration int64
}

type LeaveRequest struct {
	Chat ChatRef
	User int64
}

// PunishmentRecord describes one executed action. It only lives long enough to render the audit line.
type PunishmentRecord struct {
	ActionId   uuid.UUID
	ChatId     int64
	Actor      int64
	Target     int64
	Capability Capability
	Reason     string
	AuditText  string
}

type PunishmentResult struct {
	ActionId      uuid.UUID `json:"actionId"`
	Executed      bool      `json:"executed"`
	MemberUpdated bool      `json:"memberUpdated"`
	Audited       bool      `json:"audited"`
	Broadcast     bool      `json:"broadcast"`
}
