package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isKind(err error, kind model.ErrorKind) bool {
	return errors.Is(err, &model.AppError{Kind: kind})
}

func TestCheckCanPunishGrid(t *testing.T) {
	levels := []int{0, 20, 40, 60, 80, 100}
	immunities := []*int{nil}
	for _, level := range levels {
		immunities = append(immunities, intPtr(level))
	}

	for _, punisherRole := range levels {
		for _, targetRole := range levels {
			for _, immunity := range immunities {
				name := fmt.Sprintf("punisher=%d target=%d immunity=%v", punisherRole, targetRole, immunity)
				err := CheckCanPunish(
					model.ChatMember{Role: punisherRole},
					model.ChatMember{Role: targetRole, Immunity: immunity},
				)

				allowed := punisherRole >= targetRole && (immunity == nil || *immunity < punisherRole)
				if allowed {
					assert.NoError(t, err, name)
					continue
				}

				require.Error(t, err, name)
				if punisherRole < targetRole {
					assert.True(t, isKind(err, model.KindNeedHigherRole), name)
				} else {
					assert.True(t, isKind(err, model.KindHaveImmunity), name)
				}
			}
		}
	}
}

func TestKickSucceeds(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 40, nil)

	result, err := h.punishment.Kick(context.Background(), model.KickRequest{
		Chat:     model.PeerRef(testPeerId),
		User:     5,
		Punisher: 7,
	})
	require.NoError(t, err)

	assert.True(t, result.Executed)
	assert.True(t, result.MemberUpdated)
	assert.True(t, result.Audited)
	assert.True(t, result.Broadcast)
	assert.NotEqual(t, uuid.Nil, result.ActionId)

	assert.Equal(t, []int64{5}, h.gateway.kicks)
	assert.False(t, h.chats.member(5).InChat)

	require.Len(t, h.audit.lines, 1)
	line := h.audit.lines[0]
	assert.Equal(t, testPeerId, line.ChatId)
	assert.Equal(t, "[id7|Мария] исключила [id5|Ивана] из чата", line.Text)
	assert.Equal(t, testNow.Unix(), line.DateUnix)
	assert.Equal(t, []string{line.Text}, h.gateway.messages)
}

func TestKickWithReason(t *testing.T) {
	h := newHarness()
	h.chats.addMember(9, 100, nil)
	h.chats.addMember(5, 0, nil)

	_, err := h.punishment.Kick(context.Background(), model.KickRequest{
		Chat:     model.UidRef("chat-uid"),
		User:     5,
		Punisher: 9,
		Reason:   "флуд",
	})
	require.NoError(t, err)

	require.Len(t, h.audit.lines, 1)
	assert.Equal(t, "[id9|Пётр] исключил [id5|Ивана] из чата. Причина: флуд", h.audit.lines[0].Text)
}

func TestKickRejectedBeforeExternalCall(t *testing.T) {
	tests := []struct {
		name     string
		punisher int
		target   int
		immunity *int
		kind     model.ErrorKind
	}{
		{"punisher below threshold", 40, 0, nil, model.KindNoPermissions},
		{"target outranks punisher", 60, 80, nil, model.KindNeedHigherRole},
		{"immunity equals punisher role", 60, 40, intPtr(60), model.KindHaveImmunity},
		{"immunity above punisher role", 80, 40, intPtr(100), model.KindHaveImmunity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.chats.addMember(7, tt.punisher, nil)
			h.chats.addMember(5, tt.target, tt.immunity)

			result, err := h.punishment.Kick(context.Background(), model.KickRequest{
				Chat:     model.PeerRef(testPeerId),
				User:     5,
				Punisher: 7,
			})

			require.Error(t, err)
			assert.True(t, isKind(err, tt.kind), err.Error())
			assert.False(t, result.Executed)
			assert.Empty(t, h.gateway.kicks)
			assert.Empty(t, h.audit.lines)
			assert.Empty(t, h.gateway.messages)
			assert.True(t, h.chats.member(5).InChat)
		})
	}
}

func TestKickNeedHigherRoleWhenPunisherRoleIsLower(t *testing.T) {
	h := newHarness()
	h.chats.minRoles[model.CapabilityKick] = 40
	h.chats.addMember(7, 40, nil)
	h.chats.addMember(5, 60, nil)

	_, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7})

	assert.True(t, isKind(err, model.KindNeedHigherRole))
	assert.Empty(t, h.gateway.kicks)
	assert.Empty(t, h.audit.lines)
}

func TestKickVKAccessDenied(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 40, nil)
	h.gateway.kickErr = model.NewVKAccessDenied("Access denied: can't remove this user")

	result, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7})

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, model.KindVKAccessDenied, appErr.Kind)
	assert.Equal(t, "Access denied: can't remove this user", appErr.Message)

	assert.False(t, result.Executed)
	assert.True(t, h.chats.member(5).InChat)
	assert.Empty(t, h.chats.kicked)
	assert.Empty(t, h.audit.lines)
	assert.Empty(t, h.gateway.messages)
}

func TestKickUnknownChatUid(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 40, nil)

	_, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.UidRef("missing"), User: 5, Punisher: 7})

	assert.True(t, isKind(err, model.KindQuery))
	assert.Empty(t, h.gateway.kicks)
}

func TestKickBroadcastFailureIsSwallowed(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 40, nil)
	h.gateway.sendErr = model.NewVKAccessDenied("bot can't write to this chat")

	result, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7})
	require.NoError(t, err)

	assert.True(t, result.Audited)
	assert.False(t, result.Broadcast)
	assert.Len(t, h.audit.lines, 1)
}

func TestKickMemberUpdateFailureIsReportedAsDivergence(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 40, nil)
	h.chats.updateErr = model.NewQueryError("Failed to update chat member after kick")

	result, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7})

	require.Error(t, err)
	assert.True(t, isKind(err, model.KindStateDiverged))
	assert.True(t, isKind(err, model.KindQuery), "cause stays reachable")

	assert.True(t, result.Executed)
	assert.False(t, result.MemberUpdated)
	assert.True(t, result.Audited)
	assert.Equal(t, []int64{5}, h.gateway.kicks)
	assert.Len(t, h.audit.lines, 1)
}

func TestKickAuditFailure(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 40, nil)
	h.audit.insertErr = model.NewQueryError("Failed to write audit log")

	result, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7})

	assert.True(t, isKind(err, model.KindQuery))
	assert.True(t, result.Executed)
	assert.True(t, result.MemberUpdated)
	assert.False(t, result.Audited)
	assert.Empty(t, h.gateway.messages)
}

func TestKickUnknownName(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(404, 0, nil)

	_, err := h.punishment.Kick(context.Background(), model.KickRequest{Chat: model.PeerRef(testPeerId), User: 404, Punisher: 7})

	assert.True(t, isKind(err, model.KindQuery))
	assert.Empty(t, h.gateway.kicks)
}

func TestMuteForDuration(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 20, nil)

	result, err := h.punishment.Mute(context.Background(), model.MuteRequest{
		Chat:     model.PeerRef(testPeerId),
		User:     5,
		Punisher: 7,
		Duration: 3600,
	})
	require.NoError(t, err)
	assert.True(t, result.MemberUpdated)

	require.Len(t, h.gateway.mutes, 1)
	assert.Equal(t, muteCall{peerId: testPeerId, memberIds: []int64{5}, duration: 3600}, h.gateway.mutes[0])
	assert.Equal(t, testNow.Unix()+3600, h.chats.member(5).MuteUntil)

	require.Len(t, h.audit.lines, 1)
	assert.Equal(t, "[id7|Мария] заблокировала чат до 1 апр. 2026, 0:30 GMT+3 [id5|Ивану]", h.audit.lines[0].Text)
}

func TestMutePermanent(t *testing.T) {
	h := newHarness()
	h.chats.addMember(9, 60, nil)
	h.chats.addMember(5, 20, nil)

	_, err := h.punishment.Mute(context.Background(), model.MuteRequest{
		Chat:     model.PeerRef(testPeerId),
		User:     5,
		Punisher: 9,
		Reason:   "оскорбления",
		Duration: model.PermanentMute,
	})
	require.NoError(t, err)

	assert.Equal(t, model.PermanentMute, h.gateway.mutes[0].duration)
	assert.Equal(t, model.PermanentMute, h.chats.member(5).MuteUntil)
	assert.Equal(t, "[id9|Пётр] заблокировал чат навсегда [id5|Ивану]. Причина: оскорбления", h.audit.lines[0].Text)
}

func TestMuteUsesChatTimezone(t *testing.T) {
	h := newHarness()
	h.chats.timezone = 0
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 20, nil)

	_, err := h.punishment.Mute(context.Background(), model.MuteRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7, Duration: 0})
	require.NoError(t, err)

	assert.Contains(t, h.audit.lines[0].Text, "до 31 марта 2026, 20:30 GMT0")
}

func TestMuteRejectsNegativeDuration(t *testing.T) {
	h := newHarness()

	_, err := h.punishment.Mute(context.Background(), model.MuteRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7, Duration: -5})

	assert.True(t, isKind(err, model.KindParamsValidation))
	assert.Empty(t, h.gateway.mutes)
}

func TestMuteVKAccessDenied(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 20, nil)
	h.gateway.muteErr = model.NewVKAccessDenied("Access denied")

	_, err := h.punishment.Mute(context.Background(), model.MuteRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7, Duration: 60})

	assert.True(t, isKind(err, model.KindVKAccessDenied))
	assert.Equal(t, int64(0), h.chats.member(5).MuteUntil)
	assert.Empty(t, h.audit.lines)
}

func TestMuteLongDurationStoresFutureUnmuteTime(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 20, nil)

	_, err := h.punishment.Mute(context.Background(), model.MuteRequest{
		Chat:     model.PeerRef(testPeerId),
		User:     5,
		Punisher: 7,
		Duration: 10_000_000_000,
	})
	require.NoError(t, err)

	assert.Equal(t, testNow.Unix()+10_000_000_000, h.chats.member(5).MuteUntil)
	assert.Greater(t, h.chats.member(5).MuteUntil, testNow.Unix())
	assert.Equal(t, "[id7|Мария] заблокировала чат до 19 февр. 2343, 17:16 GMT+3 [id5|Ивану]", h.audit.lines[0].Text)
}

func TestMuteRejectedBeforeExternalCall(t *testing.T) {
	tests := []struct {
		name     string
		punisher int
		target   int
		immunity *int
		kind     model.ErrorKind
	}{
		{"punisher below threshold", 0, 0, nil, model.KindNoPermissions},
		{"target outranks punisher", 40, 60, nil, model.KindNeedHigherRole},
		{"immunity equals punisher role", 40, 20, intPtr(40), model.KindHaveImmunity},
		{"immunity above punisher role", 60, 20, intPtr(80), model.KindHaveImmunity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.chats.addMember(7, tt.punisher, nil)
			h.chats.addMember(5, tt.target, tt.immunity)

			result, err := h.punishment.Mute(context.Background(), model.MuteRequest{
				Chat:     model.PeerRef(testPeerId),
				User:     5,
				Punisher: 7,
				Duration: 600,
			})

			require.Error(t, err)
			assert.True(t, isKind(err, tt.kind), err.Error())
			assert.False(t, result.Executed)
			assert.Empty(t, h.gateway.mutes)
			assert.Empty(t, h.audit.lines)
			assert.Empty(t, h.gateway.messages)
			assert.Equal(t, int64(0), h.chats.member(5).MuteUntil)
		})
	}
}

func TestMuteMemberUpdateFailureIsReportedAsDivergence(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 60, nil)
	h.chats.addMember(5, 20, nil)
	h.chats.updateErr = model.NewQueryError("Failed to update chat member after mute")

	result, err := h.punishment.Mute(context.Background(), model.MuteRequest{Chat: model.PeerRef(testPeerId), User: 5, Punisher: 7, Duration: 3600})

	require.Error(t, err)
	assert.True(t, isKind(err, model.KindStateDiverged))
	assert.True(t, isKind(err, model.KindQuery))

	assert.True(t, result.Executed)
	assert.False(t, result.MemberUpdated)
	assert.True(t, result.Audited)
	require.Len(t, h.gateway.mutes, 1)
	assert.Equal(t, int64(0), h.chats.member(5).MuteUntil)
	require.Len(t, h.audit.lines, 1)
	assert.Equal(t, "[id7|Мария] заблокировала чат до 1 апр. 2026, 0:30 GMT+3 [id5|Ивану]", h.audit.lines[0].Text)
}

func TestLeaveMemberUpdateFailureIsReportedAsDivergence(t *testing.T) {
	h := newHarness()
	h.chats.addMember(5, 0, nil)
	h.chats.updateErr = model.NewQueryError("Failed to update chat member after kick")

	result, err := h.punishment.Leave(context.Background(), model.LeaveRequest{Chat: model.PeerRef(testPeerId), User: 5})

	require.Error(t, err)
	assert.True(t, isKind(err, model.KindStateDiverged))

	assert.True(t, result.Executed)
	assert.False(t, result.MemberUpdated)
	assert.True(t, result.Audited)
	assert.Equal(t, []int64{5}, h.gateway.kicks)
	assert.True(t, h.chats.member(5).InChat)
	require.Len(t, h.audit.lines, 1)
	assert.Equal(t, "[id5|Иван] покинул чат", h.audit.lines[0].Text)
}

func TestLeave(t *testing.T) {
	h := newHarness()
	h.chats.addMember(7, 0, intPtr(100))

	result, err := h.punishment.Leave(context.Background(), model.LeaveRequest{Chat: model.PeerRef(testPeerId), User: 7})
	require.NoError(t, err)

	assert.True(t, result.Executed)
	assert.Equal(t, []int64{7}, h.gateway.kicks)
	assert.False(t, h.chats.member(7).InChat)
	assert.Equal(t, "[id7|Мария] покинула чат", h.audit.lines[0].Text)
}

func TestLeaveUsesNick(t *testing.T) {
	h := newHarness()
	h.chats.addMember(5, 0, nil)
	h.chats.nicks[5] = "Ванёк"

	_, err := h.punishment.Leave(context.Background(), model.LeaveRequest{Chat: model.PeerRef(testPeerId), User: 5})
	require.NoError(t, err)

	assert.Equal(t, "[id5|Ванёк] покинул чат", h.audit.lines[0].Text)
}

func TestLeaveAsCommunity(t *testing.T) {
	h := newHarness()
	h.chats.addMember(-12, 0, nil)

	_, err := h.punishment.Leave(context.Background(), model.LeaveRequest{Chat: model.PeerRef(testPeerId), User: -12})
	require.NoError(t, err)

	assert.Equal(t, "[club12|Сообщество «Новости»] покинуло чат", h.audit.lines[0].Text)
}

func TestLeaveWithoutSelfKickRight(t *testing.T) {
	h := newHarness()
	h.chats.minRoles[model.CapabilitySelfKick] = 20
	h.chats.addMember(5, 0, nil)

	_, err := h.punishment.Leave(context.Background(), model.LeaveRequest{Chat: model.PeerRef(testPeerId), User: 5})

	assert.True(t, isKind(err, model.KindNoPermissions))
	assert.Empty(t, h.gateway.kicks)
}
