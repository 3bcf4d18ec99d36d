package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/schedulr/internal/cache"
	testutil "github.com/charlesng35/schedulr/internal/database/testutil"
	"github.com/charlesng35/schedulr/internal/models"
	"github.com/charlesng35/schedulr/internal/services"
)

func TestCleanerRunOnce(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	ctx := context.Background()

	auditSvc, err := services.NewAuditService(db)
	require.NoError(t, err)
	cacheStore, err := cache.NewDatabaseStore(db)
	require.NoError(t, err)

	require.NoError(t, auditSvc.Log(ctx, services.AuditEntry{Action: "permissions.create", Result: "success", TenantID: "t1"}))
	var stale models.AuditLog
	require.NoError(t, db.First(&stale).Error)
	require.NoError(t, db.Model(&stale).Update("created_at", time.Now().AddDate(0, 0, -10)).Error)
	require.NoError(t, auditSvc.Log(ctx, services.AuditEntry{Action: "permissions.update", Result: "success", TenantID: "t1"}))

	_, _, err = cacheStore.IncrementWithTTL(ctx, "ratelimit:expired", time.Millisecond)
	require.NoError(t, err)
	_, _, err = cacheStore.IncrementWithTTL(ctx, "ratelimit:fresh", time.Hour)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	c := NewCleaner(auditSvc, cacheStore,
		WithAuditRetentionDays(7),
		WithCron(cron.New(cron.WithLogger(cron.DiscardLogger))),
	)
	require.NoError(t, c.RunOnce(ctx))

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "permissions.update", logs[0].Action)

	var entries int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&entries).Error)
	require.Equal(t, int64(1), entries)
}

type failingPurger struct{}

func (failingPurger) PurgeExpired(context.Context) (int64, error) {
	return 0, errors.New("cache offline")
}

func TestCleanerRunOnceAggregatesErrors(t *testing.T) {
	c := NewCleaner(nil, failingPurger{})
	err := c.RunOnce(context.Background())
	require.ErrorContains(t, err, "cache offline")
}

func TestCleanerStartRegistersJobs(t *testing.T) {
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	c := NewCleaner(nil, failingPurger{}, WithCron(scheduler), WithCacheSchedule("@every 1h"))

	require.NoError(t, c.Start())
	t.Cleanup(func() { <-c.Stop().Done() })
	require.Len(t, scheduler.Entries(), 1)
}

func TestCleanerStartRejectsBadSchedule(t *testing.T) {
	c := NewCleaner(nil, failingPurger{}, WithCacheSchedule("not a schedule"))
	require.Error(t, c.Start())
}

func TestCleanerWithoutJobs(t *testing.T) {
	c := NewCleaner(nil, nil)
	require.NoError(t, c.Start())
	require.NoError(t, c.RunOnce(context.Background()))
}
