package accountstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStores(t *testing.T) map[string]AccountStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	gs, err := NewGormAccountStore(db)
	if err != nil {
		t.Fatalf("initializing gorm store: %v", err)
	}
	return map[string]AccountStore{
		"mem":  NewMemAccountStore(),
		"gorm": gs,
	}
}

func TestAccountStoreBlocking(t *testing.T) {
	ctx := context.Background()

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			acct, err := s.GetAccount(ctx, "user1")
			assert.NoError(err)
			assert.Nil(acct)

			blocked, err := s.IsBlocked(ctx, "user1")
			assert.NoError(err)
			assert.False(blocked)

			assert.NoError(s.SetBlocked(ctx, "user1", "bot_detected"))
			blocked, err = s.IsBlocked(ctx, "user1")
			assert.NoError(err)
			assert.True(blocked)

			// terminal: re-blocking keeps the original reason
			assert.NoError(s.SetBlocked(ctx, "user1", "rate_limit_abuse"))
			acct, err = s.GetAccount(ctx, "user1")
			assert.NoError(err)
			assert.NotNil(acct)
			assert.True(acct.Blocked)
			assert.Equal("bot_detected", acct.BlockReason)
			assert.NotNil(acct.BlockedAt)
		})
	}
}

func TestAccountStoreAbuseEvents(t *testing.T) {
	ctx := context.Background()

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			assert.NoError(s.RecordAbuseEvent(ctx, &AbuseEvent{
				UserID:         "user1",
				EventType:      "automated_pattern",
				Score:          2,
				TriggerMessage: "test123",
			}))
			assert.NoError(s.RecordAbuseEvent(ctx, &AbuseEvent{
				UserID:          "user1",
				EventType:       "bot_detected",
				Score:           6,
				ResultedInBlock: true,
			}))
			assert.NoError(s.RecordAbuseEvent(ctx, &AbuseEvent{
				UserID:    "user2",
				EventType: "high_frequency",
				Score:     3,
			}))

			evs, err := s.ListAbuseEvents(ctx, "user1", 10)
			assert.NoError(err)
			assert.Len(evs, 2)
			// newest first
			assert.Equal("bot_detected", evs[0].EventType)
			assert.True(evs[0].ResultedInBlock)

			evs, err = s.ListAbuseEvents(ctx, "", 10)
			assert.NoError(err)
			assert.Len(evs, 3)

			evs, err = s.ListAbuseEvents(ctx, "", 1)
			assert.NoError(err)
			assert.Len(evs, 1)
		})
	}
}
