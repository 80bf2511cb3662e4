package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.TenantModel{},
		&models.TenantSettingsModel{},
		&models.AdminUserModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionOrderModel{},
		&models.ActivityModel{},
		&models.SaveFlowModel{},
		&models.SaveAttemptModel{},
		&models.SellingPlanModel{},
		&models.ValidationRunModel{},
		&models.ValidationIssueModel{},
		&models.EmailQueueModel{},
	)
	require.NoError(t, err)

	return gdb
}

func tenantCtx(tenantID uint) context.Context {
	return tenantctx.WithTenant(context.Background(), tenantctx.Tenant{ID: tenantID, Slug: "tenant-under-test"})
}

type testLogger struct{}

func (l *testLogger) Debug(msg string, args ...any)                   {}
func (l *testLogger) Info(msg string, args ...any)                    {}
func (l *testLogger) Warn(msg string, args ...any)                    {}
func (l *testLogger) Error(msg string, args ...any)                   {}
func (l *testLogger) With(args ...any) logger.Interface               { return l }
func (l *testLogger) Named(name string) logger.Interface              { return l }
func (l *testLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *testLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *testLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *testLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func newTestSubscription(t *testing.T, tenantID uint, customerID, productID string, priceCents int64) *subscription.Subscription {
	t.Helper()
	next := time.Now().UTC().AddDate(0, 1, 0)
	sub, err := subscription.NewSubscription(subscription.Params{
		TenantID:          tenantID,
		Provider:          vo.ProviderLoop,
		CustomerID:        customerID,
		CustomerEmail:     customerID + "@example.test",
		ProductID:         productID,
		Quantity:          1,
		PriceCents:        priceCents,
		Currency:          "USD",
		Frequency:         vo.FrequencyMonthly,
		FrequencyInterval: 1,
		Status:            vo.StatusActive,
		NextBillingDate:   &next,
	})
	require.NoError(t, err)
	return sub
}

func newScheduledOrder(t *testing.T, tenantID, subscriptionID uint, scheduledAt time.Time) *subscription.Order {
	t.Helper()
	order, err := subscription.NewOrder(tenantID, subscriptionID, 2500, "USD", scheduledAt)
	require.NoError(t, err)
	return order
}
