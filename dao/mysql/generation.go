package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/nexorasim/LotayaAI/dao/store"
	"github.com/nexorasim/LotayaAI/models"
)

// 建表语句（images 是 JSON 数组文本）:
// CREATE TABLE generations (
//     generation_id VARCHAR(64)  NOT NULL PRIMARY KEY,
//     kind          VARCHAR(16)  NOT NULL,
//     prompt        TEXT         NOT NULL,
//     model         VARCHAR(32)  NOT NULL,
//     style         VARCHAR(255) NOT NULL DEFAULT '',
//     size          VARCHAR(16)  NOT NULL DEFAULT '',
//     num_images    INT          NOT NULL DEFAULT 0,
//     duration      INT          NOT NULL DEFAULT 0,
//     status        VARCHAR(16)  NOT NULL,
//     images        LONGTEXT     NOT NULL,
//     result_url    TEXT         NOT NULL,
//     error_message TEXT         NOT NULL,
//     created_at    BIGINT       NOT NULL
// );

const duplicateEntryErrNo = 1062

// Store 是 GenerationStore 的 MySQL 实现
type Store struct {
	db *sqlx.DB
}

// NewStore MySQL 生成记录存储
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type generationRow struct {
	models.GenerationRecord
	ImagesJSON string `db:"images"`
}

func (s *Store) Create(ctx context.Context, rec *models.GenerationRecord) error {
	imagesJSON, err := marshalImages(rec.Images)
	if err != nil {
		return err
	}
	query := `INSERT INTO generations
		(generation_id, kind, prompt, model, style, size, num_images, duration, status, images, result_url, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		rec.GenerationID, rec.Kind, rec.Prompt, rec.Model, rec.Style, rec.Size,
		rec.NumImages, rec.Duration, rec.Status, imagesJSON, rec.ResultURL, rec.Error, rec.CreatedAt)
	if err != nil {
		var me *gomysql.MySQLError
		if errors.As(err, &me) && me.Number == duplicateEntryErrNo {
			return store.ErrDuplicateID
		}
		return err
	}
	return nil
}

func (s *Store) UpdateTerminal(ctx context.Context, id string, upd store.TerminalUpdate) error {
	imagesJSON, err := marshalImages(upd.Images)
	if err != nil {
		return err
	}
	query := `UPDATE generations SET status = ?, images = ?, result_url = ?, error_message = ? WHERE generation_id = ?`
	res, err := s.db.ExecContext(ctx, query, upd.Status, imagesJSON, upd.ResultURL, upd.Error, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Find(ctx context.Context, id string) (*models.GenerationRecord, error) {
	var row generationRow
	query := `SELECT generation_id, kind, prompt, model, style, size, num_images, duration, status, images, result_url, error_message, created_at
		FROM generations WHERE generation_id = ?`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	rec := row.GenerationRecord
	if row.ImagesJSON != "" {
		if err := json.Unmarshal([]byte(row.ImagesJSON), &rec.Images); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func marshalImages(images []string) (string, error) {
	if len(images) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
