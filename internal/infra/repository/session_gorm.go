package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// sidで取得し、無ければ作成
func (r *SessionGormRepository) GetOrCreate(ctx context.Context, sid string) (model.SessionState, error) {
	var s model.SessionState

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("id = ?", sid).First(&s).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		now := time.Now()
		created := model.SessionState{
			ID:        sid,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&created).Error; err != nil {
			//同時作成の競合なら取り直す
			retryErr := tx.Where("id = ?", sid).First(&s).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		s = created
		return nil
	})

	if err != nil {
		return model.SessionState{}, err
	}
	return s, nil
}

// ログイン成功時にセッションへユーザーを紐付ける
func (r *SessionGormRepository) BindUser(ctx context.Context, sid string, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.SessionState{}).
		Where("id = ?", sid).
		Update("user_id", userID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SessionGormRepository) SetPendingAction(ctx context.Context, sid string, action model.PendingAction) error {
	raw, err := json.Marshal(action)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.SessionState{}).
		Where("id = ?", sid).
		Update("pending_action_json", string(raw))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 読み取りと削除を同一トランザクションの行ロックで行う。
// 2回呼んでも2回目はfalse（再実行で二重適用しない）。
func (r *SessionGormRepository) ConsumePendingAction(ctx context.Context, sid string) (model.PendingAction, bool, error) {
	var action model.PendingAction
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.SessionState

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sid).
			First(&s).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.PendingActionJSON == "" {
			return nil
		}

		if err := json.Unmarshal([]byte(s.PendingActionJSON), &action); err != nil {
			return err
		}

		res := tx.Model(&model.SessionState{}).
			Where("id = ?", sid).
			Update("pending_action_json", "")
		if res.Error != nil {
			return res.Error
		}

		found = true
		return nil
	})

	if err != nil {
		return model.PendingAction{}, false, err
	}
	return action, found, nil
}

func (r *SessionGormRepository) SetBuyNow(ctx context.Context, sid string, line model.BuyNowLine) error {
	raw, err := json.Marshal(line)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.SessionState{}).
		Where("id = ?", sid).
		Update("buy_now_item_json", string(raw))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *SessionGormRepository) GetBuyNow(ctx context.Context, sid string) (model.BuyNowLine, bool, error) {
	var s model.SessionState

	err := r.db.WithContext(ctx).Where("id = ?", sid).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BuyNowLine{}, false, nil
	}
	if err != nil {
		return model.BuyNowLine{}, false, err
	}
	if s.BuyNowItemJSON == "" {
		return model.BuyNowLine{}, false, nil
	}

	var line model.BuyNowLine
	if err := json.Unmarshal([]byte(s.BuyNowItemJSON), &line); err != nil {
		return model.BuyNowLine{}, false, err
	}
	return line, true, nil
}

// 読み取りと削除を同一トランザクションの行ロックで行う
func (r *SessionGormRepository) ConsumeBuyNow(ctx context.Context, sid string) (model.BuyNowLine, bool, error) {
	var line model.BuyNowLine
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.SessionState

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sid).
			First(&s).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.BuyNowItemJSON == "" {
			return nil
		}

		if err := json.Unmarshal([]byte(s.BuyNowItemJSON), &line); err != nil {
			return err
		}

		res := tx.Model(&model.SessionState{}).
			Where("id = ?", sid).
			Update("buy_now_item_json", "")
		if res.Error != nil {
			return res.Error
		}

		found = true
		return nil
	})

	if err != nil {
		return model.BuyNowLine{}, false, err
	}
	return line, found, nil
}
