package model

// Capability is a privileged action gated by a per-chat minimum role.
type Capability string

const (
	CapabilityKick     Capability = "kick"
	CapabilityMute     Capability = "mute"
	CapabilitySelfKick Capability = "selfKick"
	CapabilitySettings Capability = "settings"
)

var capabilities = map[string]Capability{
	string(CapabilityKick):     CapabilityKick,
	string(CapabilityMute):     CapabilityMute,
	string(CapabilitySelfKick): CapabilitySelfKick,
	string(CapabilitySettings): CapabilitySettings,
}

func ParseCapability(name string) (Capability, bool) {
	c, ok := capabilities[name]
	return c, ok
}

type CommandAccess struct {
	ChatId     int64      `json:"chat_id"`
	Capability Capability `json:"name"`
	MinRole    int        `json:"role"`
}
