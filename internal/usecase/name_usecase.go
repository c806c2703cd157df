package usecase

import (
	"context"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/ferdian3456/chatmoderation/internal/phrase"
	"go.uber.org/zap"
)

// ResolvedName is a name record together with the verb ending it takes.
type ResolvedName struct {
	model.NameInfo
	Gender phrase.Gender
}

// Mention renders the name in case c as a user or community mention.
func (n ResolvedName) Mention(c model.Case) string {
	return phrase.MentionName(n.Id, n.InCase(c))
}

type NameUsecase struct {
	NameStore NameStore
	Log       *zap.Logger
}

func NewNameUsecase(nameStore NameStore, zap *zap.Logger) *NameUsecase {
	return &NameUsecase{
		NameStore: nameStore,
		Log:       zap,
	}
}

func (usecase *NameUsecase) Resolve(ctx context.Context, actorId int64) (ResolvedName, error) {
	info, err := usecase.NameStore.GetNameInfo(ctx, actorId)
	if err != nil {
		return ResolvedName{}, err
	}

	if info.IsCommunity() {
		info.Sex = model.SexClub
	}

	return ResolvedName{
		NameInfo: info,
		Gender:   phrase.GenderLabel(info.Sex),
	}, nil
}
