package usecase

import (
	"context"
	"strconv"
	"sync"

	"github.com/ferdian3456/chatmoderation/internal/model"
)

const testPeerId int64 = 2000000005

// fakeChatStore holds a single chat.
type fakeChatStore struct {
	mu        sync.Mutex
	uids      map[string]int64
	minRoles  map[model.Capability]int
	members   map[int64]model.ChatMember
	nicks     map[int64]string
	roles     map[int]model.Role
	settings  model.ChatSettings
	timezone  int
	updateErr error
	kicked    []int64
	muted     map[int64]int64
}

func newFakeChatStore() *fakeChatStore {
	store := &fakeChatStore{
		uids:     map[string]int64{"chat-uid": testPeerId},
		members:  map[int64]model.ChatMember{},
		nicks:    map[int64]string{},
		roles:    map[int]model.Role{},
		settings: model.ChatSettings{},
		timezone: 3,
		muted:    map[int64]int64{},
	}
	store.minRoles = map[model.Capability]int{
		model.CapabilityKick:     model.RoleAdmin,
		model.CapabilityMute:     model.RoleModerator,
		model.CapabilitySelfKick: model.RoleMember,
		model.CapabilitySettings: model.RoleSeniorAdmin,
	}
	return store
}

func (s *fakeChatStore) addMember(userId int64, role int, immunity *int) {
	s.members[userId] = model.ChatMember{ChatId: testPeerId, UserId: userId, Role: role, Immunity: immunity, InChat: true}
}

func (s *fakeChatStore) member(userId int64) model.ChatMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[userId]
}

func (s *fakeChatStore) ResolveChatId(ctx context.Context, ref model.ChatRef) (int64, error) {
	if ref.Type == model.ChatIdTypeUid {
		id, ok := s.uids[ref.Value]
		if !ok {
			return 0, model.NewQueryError("Chat is not found")
		}
		return id, nil
	}
	id, err := strconv.ParseInt(ref.Value, 10, 64)
	if err != nil {
		return 0, model.NewParamsValidationError("chat peer id must be a number")
	}
	return id, nil
}

func (s *fakeChatStore) GetChat(ctx context.Context, chatId int64) (model.Chat, error) {
	if chatId != testPeerId {
		return model.Chat{}, model.NewQueryError("Chat is not found")
	}
	return model.Chat{ChatId: chatId, Timezone: s.timezone}, nil
}

func (s *fakeChatStore) GetCommandMinRole(ctx context.Context, ref model.ChatRef, capability model.Capability) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	minRole, ok := s.minRoles[capability]
	if !ok {
		return 0, model.NewQueryError("Command access is not configured for this chat")
	}
	return minRole, nil
}

func (s *fakeChatStore) GetChatCommandAccess(ctx context.Context, ref model.ChatRef) ([]model.CommandAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var access []model.CommandAccess
	for capability, minRole := range s.minRoles {
		access = append(access, model.CommandAccess{ChatId: testPeerId, Capability: capability, MinRole: minRole})
	}
	if len(access) == 0 {
		return nil, model.NewQueryError("Command rights are not found for this chat")
	}
	return access, nil
}

func (s *fakeChatStore) GetMember(ctx context.Context, ref model.ChatRef, userId int64) (model.ChatMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[userId]
	if !ok {
		return model.ChatMember{}, model.NewQueryError("Chat member is not found")
	}
	return member, nil
}

func (s *fakeChatStore) UpdateKickedMember(ctx context.Context, chatId int64, userId int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	member := s.members[userId]
	member.InChat = false
	member.InvitedBy = 0
	member.LastMessage = 0
	s.members[userId] = member
	s.kicked = append(s.kicked, userId)
	return nil
}

func (s *fakeChatStore) UpdateMutedMember(ctx context.Context, chatId int64, userId int64, muteUntil int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	member := s.members[userId]
	member.MuteUntil = muteUntil
	s.members[userId] = member
	s.muted[userId] = muteUntil
	return nil
}

func (s *fakeChatStore) GetMemberNick(ctx context.Context, chatId int64, userId int64) (string, error) {
	return s.nicks[userId], nil
}

func (s *fakeChatStore) GetRoles(ctx context.Context, ref model.ChatRef) (map[int]model.Role, error) {
	return s.roles, nil
}

func (s *fakeChatStore) GetSettings(ctx context.Context, ref model.ChatRef) (model.ChatSettings, error) {
	return s.settings, nil
}

func (s *fakeChatStore) SetSetting(ctx context.Context, ref model.ChatRef, key model.SettingKey, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

type fakeNameStore struct {
	names map[int64]model.NameInfo
}

func newFakeNameStore() *fakeNameStore {
	return &fakeNameStore{names: map[int64]model.NameInfo{
		5:   {Id: 5, Sex: model.SexMale, Nom: "Иван", Gen: "Ивана", Dat: "Ивану", Acc: "Ивана"},
		7:   {Id: 7, Sex: model.SexFemale, Nom: "Мария", Gen: "Марии", Dat: "Марии", Acc: "Марию"},
		9:   {Id: 9, Sex: model.SexMale, Nom: "Пётр", Gen: "Петра", Dat: "Петру", Acc: "Петра"},
		-12: {Id: -12, Sex: model.SexMale, Nom: "Новости", Gen: "Новостей", Dat: "Новости", Acc: "Новости"},
	}}
}

func (s *fakeNameStore) GetNameInfo(ctx context.Context, userId int64) (model.NameInfo, error) {
	info, ok := s.names[userId]
	if !ok {
		return model.NameInfo{}, model.NewQueryError("Name of the member is not found")
	}
	return info, nil
}

type fakeAuditStore struct {
	mu        sync.Mutex
	lines     []model.AuditLine
	insertErr error
	lastLimit int
}

func (s *fakeAuditStore) InsertAuditLine(ctx context.Context, line model.AuditLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	line.Id = int64(len(s.lines) + 1)
	s.lines = append(s.lines, line)
	return nil
}

func (s *fakeAuditStore) ListAuditLines(ctx context.Context, ref model.ChatRef, limit int) ([]model.AuditLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	lines := make([]model.AuditLine, 0, len(s.lines))
	for i := len(s.lines) - 1; i >= 0 && len(lines) < limit; i-- {
		lines = append(lines, s.lines[i])
	}
	return lines, nil
}

type muteCall struct {
	peerId    int64
	memberIds []int64
	duration  int64
}

type fakeGateway struct {
	mu       sync.Mutex
	kickErr  error
	muteErr  error
	sendErr  error
	kicks    []int64
	mutes    []muteCall
	messages []string
}

func (g *fakeGateway) KickUser(ctx context.Context, peerId int64, memberId int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.kicks = append(g.kicks, memberId)
	return g.kickErr
}

func (g *fakeGateway) MuteUser(ctx context.Context, peerId int64, memberIds []int64, duration int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutes = append(g.mutes, muteCall{peerId: peerId, memberIds: memberIds, duration: duration})
	return g.muteErr
}

func (g *fakeGateway) GetConversationMembers(ctx context.Context, peerId int64, fields string) (model.VKConversationMembers, error) {
	return model.VKConversationMembers{}, nil
}

func (g *fakeGateway) SendMessage(ctx context.Context, peerId int64, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sendErr != nil {
		return g.sendErr
	}
	g.messages = append(g.messages, text)
	return nil
}
