package repository

import (
	"context"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AuditRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewAuditRepository(zap *zap.Logger, db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *AuditRepository) InsertAuditLine(ctx context.Context, line model.AuditLine) error {
	query := "INSERT INTO logs_actions (chat_id, text, dateunix) VALUES ($1,$2,$3)"

	tag, err := repository.DB.Exec(ctx, query, line.ChatId, line.Text, line.DateUnix)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return model.NewQueryError("Failed to write audit log")
	}

	return nil
}

func (repository *AuditRepository) ListAuditLines(ctx context.Context, ref model.ChatRef, limit int) ([]model.AuditLine, error) {
	condition, chatArg, err := chatCondition(ref, 1)
	if err != nil {
		return nil, err
	}

	query := "SELECT id, chat_id, text, dateunix FROM logs_actions WHERE chat_id = " + condition + " ORDER BY id DESC LIMIT $2"

	rows, err := repository.DB.Query(ctx, query, chatArg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []model.AuditLine{}
	for rows.Next() {
		var line model.AuditLine
		err = rows.Scan(&line.Id, &line.ChatId, &line.Text, &line.DateUnix)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
