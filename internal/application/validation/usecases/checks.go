package usecases

import (
	"fmt"
	"time"

	"github.com/retain-hq/retain/internal/domain/subscription"
	vo "github.com/retain-hq/retain/internal/domain/subscription/valueobjects"
	"github.com/retain-hq/retain/internal/domain/validation"
)

// Dataset is the tenant's full subscription population plus the lookup data
// the checks need. It is loaded once per run; the checks themselves are pure.
type Dataset struct {
	Subscriptions []*subscription.Subscription

	// ScheduledOrderSubIDs holds the subscription IDs that still have
	// scheduled order rows.
	ScheduledOrderSubIDs map[uint]bool

	MaxPauseDays int
	Now          time.Time
}

// Finding is one issue produced by a check, before persistence.
type Finding struct {
	SubscriptionID uint
	Type           validation.IssueType
	Description    string
}

// CheckFunc examines the dataset and returns findings plus the number of
// rows it examined. Every check walks the full population, so a subscription
// flagged by several checks is counted once per check.
type CheckFunc func(d *Dataset) ([]Finding, int)

type registeredCheck struct {
	name string
	fn   CheckFunc
}

// checkRegistry is the fixed, ordered battery. Adding a check means
// appending here; dispatch never changes.
var checkRegistry = []registeredCheck{
	{"orphaned_subscription", checkOrphanedSubscription},
	{"missing_product", checkMissingProduct},
	{"missing_billing_date", checkMissingBillingDate},
	{"cancelled_with_pending_orders", checkCancelledWithPendingOrders},
	{"paused_too_long", checkPausedTooLong},
	{"payment_expiring", checkPaymentExpiring},
	{"duplicate_subscription", checkDuplicateSubscription},
	{"sync_error", checkSyncError},
	{"invalid_frequency", checkInvalidFrequency},
	{"invalid_amount", checkInvalidAmount},
}

// Customer and product references come from the upstream provider sync; a
// reference that the sync left blank does not resolve.

func checkOrphanedSubscription(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if s.CustomerID() == "" {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueOrphanedSubscription,
				Description:    fmt.Sprintf("subscription %s has no resolvable customer reference", s.SID()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkMissingProduct(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if s.Status() == vo.StatusActive && s.ProductID() == "" {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueMissingProduct,
				Description:    fmt.Sprintf("active subscription %s has no resolvable product reference", s.SID()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkMissingBillingDate(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if s.Status() == vo.StatusActive && s.NextBillingDate() == nil {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueMissingBillingDate,
				Description:    fmt.Sprintf("active subscription %s has no next billing date", s.SID()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkCancelledWithPendingOrders(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if s.Status() == vo.StatusCancelled && d.ScheduledOrderSubIDs[s.ID()] {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueCancelledWithPendingOrders,
				Description:    fmt.Sprintf("cancelled subscription %s still has scheduled orders", s.SID()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkPausedTooLong(d *Dataset) ([]Finding, int) {
	var findings []Finding
	limit := time.Duration(d.MaxPauseDays) * 24 * time.Hour
	for _, s := range d.Subscriptions {
		pausedAt := s.PausedAt()
		if pausedAt == nil {
			continue
		}
		if d.Now.Sub(*pausedAt) > limit {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssuePausedTooLong,
				Description: fmt.Sprintf("subscription %s has been paused since %s, beyond the %d-day window",
					s.SID(), pausedAt.Format("2006-01-02"), d.MaxPauseDays),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkPaymentExpiring(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		card := s.PaymentCard()
		if card.IsExpiringSoon(d.Now) {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssuePaymentExpiring,
				Description: fmt.Sprintf("subscription %s payment card expires %02d/%d",
					s.SID(), card.ExpMonth, card.ExpYear),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkDuplicateSubscription(d *Dataset) ([]Finding, int) {
	groups := make(map[string][]*subscription.Subscription)
	for _, s := range d.Subscriptions {
		if s.Status() != vo.StatusActive {
			continue
		}
		key := s.CustomerID() + "\x00" + s.ProductID()
		groups[key] = append(groups[key], s)
	}

	var findings []Finding
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		// Every member of a duplicate pair is flagged, not just the extras.
		for _, s := range group {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueDuplicateSubscription,
				Description: fmt.Sprintf("customer %s has %d active subscriptions for product %s",
					s.CustomerID(), len(group), s.ProductID()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkSyncError(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if s.SyncError() != nil {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueSyncError,
				Description:    fmt.Sprintf("subscription %s has a provider sync error: %s", s.SID(), *s.SyncError()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkInvalidFrequency(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if !vo.ValidInterval(s.FrequencyInterval()) {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueInvalidFrequency,
				Description: fmt.Sprintf("subscription %s frequency interval %d is outside [%d, %d]",
					s.SID(), s.FrequencyInterval(), vo.MinFrequencyInterval, vo.MaxFrequencyInterval),
			})
		}
	}
	return findings, len(d.Subscriptions)
}

func checkInvalidAmount(d *Dataset) ([]Finding, int) {
	var findings []Finding
	for _, s := range d.Subscriptions {
		if s.PriceCents() < 0 || s.DiscountCents() < 0 || s.DiscountCents() > s.PriceCents() {
			findings = append(findings, Finding{
				SubscriptionID: s.ID(),
				Type:           validation.IssueInvalidAmount,
				Description: fmt.Sprintf("subscription %s has inconsistent amounts: price %d, discount %d",
					s.SID(), s.PriceCents(), s.DiscountCents()),
			})
		}
	}
	return findings, len(d.Subscriptions)
}
