package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const nameCacheTTL = 10 * time.Minute

type UserRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *UserRepository {
	return &UserRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

// Postgresql + Redis
func (repository *UserRepository) GetNameInfo(ctx context.Context, userId int64) (model.NameInfo, error) {
	cacheKey := fmt.Sprintf("name:%d", userId)

	cached, err := repository.DBCache.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var info model.NameInfo
		if sonic.Unmarshal(cached, &info) == nil {
			return info, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		repository.Log.Warn("failed to read name from cache", zap.Int64("userId", userId), zap.Error(err))
	}

	info, err := repository.getNameInfo(ctx, userId)
	if err != nil {
		return info, err
	}

	payload, err := sonic.Marshal(info)
	if err == nil {
		err = repository.DBCache.Set(ctx, cacheKey, payload, nameCacheTTL).Err()
	}
	if err != nil {
		repository.Log.Warn("failed to cache name", zap.Int64("userId", userId), zap.Error(err))
	}

	return info, nil
}

func (repository *UserRepository) getNameInfo(ctx context.Context, userId int64) (model.NameInfo, error) {
	query := "SELECT sex, name, name_gen, name_dat, name_acc FROM names WHERE user_id=$1 LIMIT 1"

	var sex int16
	var name, nameGen, nameDat, nameAcc string
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&sex, &name, &nameGen, &nameDat, &nameAcc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NameInfo{}, model.NewQueryError("Name of the member is not found")
		}
		return model.NameInfo{}, err
	}

	info := model.NameInfo{
		Id:  userId,
		Sex: model.Sex(sex),
		Nom: name,
		Gen: nameGen,
		Dat: nameDat,
		Acc: nameAcc,
	}

	// Communities are not declined. The bot keeps their genitive form in name_dat.
	if userId < 0 {
		info.Sex = model.SexClub
		info.Gen = nameDat
		info.Dat = name
		info.Acc = name
	}

	return info, nil
}
