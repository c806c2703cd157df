package model

import "strconv"

// PeerIdOffset separates conversation peer ids from user ids in VK.
const PeerIdOffset int64 = 2000000000

type ChatIdType string

const (
	ChatIdTypePeer ChatIdType = "peer_id"
	ChatIdTypeUid  ChatIdType = "uid"
)

// ChatRef addresses a chat either by its numeric peer id or by its opaque uid.
type ChatRef struct {
	Type  ChatIdType
	Value string
}

func PeerRef(peerId int64) ChatRef {
	return ChatRef{Type: ChatIdTypePeer, Value: strconv.FormatInt(peerId, 10)}
}

func UidRef(uid string) ChatRef {
	return ChatRef{Type: ChatIdTypeUid, Value: uid}
}

// PeerId returns the numeric id when the ref is already a peer id.
func (r ChatRef) PeerId() (int64, bool) {
	if r.Type != ChatIdTypePeer {
		return 0, false
	}
	id, err := strconv.ParseInt(r.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (r ChatRef) String() string {
	return string(r.Type) + ":" + r.Value
}

// LocalChatId converts a peer id to the chat id the VK removeChatUser method expects.
func LocalChatId(peerId int64) int64 {
	return peerId - PeerIdOffset
}

type Chat struct {
	ChatId     int64
	ChatUid    string
	Title      string
	InviteRole int
	Timezone   int
}
