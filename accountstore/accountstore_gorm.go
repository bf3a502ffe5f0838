package accountstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type GormAccountStore struct {
	db *gorm.DB
}

var _ AccountStore = (*GormAccountStore)(nil)

func NewGormAccountStore(db *gorm.DB) (*GormAccountStore, error) {
	if err := db.AutoMigrate(&Account{}, &AbuseEvent{}); err != nil {
		return nil, fmt.Errorf("account store migration: %w", err)
	}
	return &GormAccountStore{db: db}, nil
}

func (s *GormAccountStore) GetAccount(ctx context.Context, userID string) (*Account, error) {
	var acct Account
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *GormAccountStore) IsBlocked(ctx context.Context, userID string) (bool, error) {
	acct, err := s.GetAccount(ctx, userID)
	if err != nil || acct == nil {
		return false, err
	}
	return acct.Blocked, nil
}

func (s *GormAccountStore) SetBlocked(ctx context.Context, userID, reason string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acct Account
		err := tx.Where("user_id = ?", userID).First(&acct).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&Account{
				UserID:      userID,
				Blocked:     true,
				BlockReason: reason,
				BlockedAt:   &now,
			}).Error
		} else if err != nil {
			return err
		}
		if acct.Blocked {
			return nil
		}
		return tx.Model(&acct).Updates(map[string]any{
			"blocked":      true,
			"block_reason": reason,
			"blocked_at":   now,
		}).Error
	})
}

func (s *GormAccountStore) RecordAbuseEvent(ctx context.Context, ev *AbuseEvent) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

func (s *GormAccountStore) ListAbuseEvents(ctx context.Context, userID string, limit int) ([]AbuseEvent, error) {
	out := []AbuseEvent{}
	q := s.db.WithContext(ctx).Order("id desc").Limit(limit)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
