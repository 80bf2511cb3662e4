package subscription

import (
	"errors"
	"time"
)

// Activity types recorded for subscription mutations.
const (
	ActivityTypeCreated          = "created"
	ActivityTypePaused           = "paused"
	ActivityTypeResumed          = "resumed"
	ActivityTypeCancelled        = "cancelled"
	ActivityTypeExpired          = "expired"
	ActivityTypeOrderSkipped     = "order_skipped"
	ActivityTypeFrequencyChanged = "frequency_changed"
	ActivityTypeQuantityChanged  = "quantity_changed"
	ActivityTypePricingChanged   = "pricing_changed"
	ActivityTypeBillingDateFixed = "billing_date_fixed"
	ActivityTypePaymentUpdated   = "payment_updated"
	ActivityTypeSaveFlowEntered  = "save_flow_entered"
	ActivityTypeSaved            = "saved"
)

var ValidActivityTypes = map[string]bool{
	ActivityTypeCreated:          true,
	ActivityTypePaused:           true,
	ActivityTypeResumed:          true,
	ActivityTypeCancelled:        true,
	ActivityTypeExpired:          true,
	ActivityTypeOrderSkipped:     true,
	ActivityTypeFrequencyChanged: true,
	ActivityTypeQuantityChanged:  true,
	ActivityTypePricingChanged:   true,
	ActivityTypeBillingDateFixed: true,
	ActivityTypePaymentUpdated:   true,
	ActivityTypeSaveFlowEntered:  true,
	ActivityTypeSaved:            true,
}

// ActorType identifies who performed a mutation.
type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorAdmin    ActorType = "admin"
	ActorSystem   ActorType = "system"
)

var ValidActorTypes = map[ActorType]bool{
	ActorCustomer: true,
	ActorAdmin:    true,
	ActorSystem:   true,
}

var ErrInvalidActivityType = errors.New("invalid activity type")

// Activity is an immutable audit record appended after every subscription
// mutation, ordered by createdAt descending when listed.
type Activity struct {
	id             uint
	sid            string
	tenantID       uint
	subscriptionID uint
	activityType   string
	description    string
	actorType      ActorType
	actorID        string
	metadata       map[string]interface{}
	createdAt      time.Time
}

// NewActivity creates an activity record. Unknown actor types fall back to
// system rather than erroring; activity logging must never block a mutation.
func NewActivity(tenantID, subscriptionID uint, activityType, description string, actor ActorType) (*Activity, error) {
	if subscriptionID == 0 {
		return nil, errors.New("subscription ID cannot be zero")
	}
	if !ValidActivityTypes[activityType] {
		return nil, ErrInvalidActivityType
	}
	if !ValidActorTypes[actor] {
		actor = ActorSystem
	}

	return &Activity{
		tenantID:       tenantID,
		subscriptionID: subscriptionID,
		activityType:   activityType,
		description:    description,
		actorType:      actor,
		metadata:       make(map[string]interface{}),
		createdAt:      time.Now().UTC(),
	}, nil
}

// ReconstructActivity rebuilds an activity from persistence.
func ReconstructActivity(
	id uint,
	sid string,
	tenantID, subscriptionID uint,
	activityType, description string,
	actorType ActorType,
	actorID string,
	metadata map[string]interface{},
	createdAt time.Time,
) (*Activity, error) {
	if id == 0 {
		return nil, errors.New("activity ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, errors.New("subscription ID cannot be zero")
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Activity{
		id:             id,
		sid:            sid,
		tenantID:       tenantID,
		subscriptionID: subscriptionID,
		activityType:   activityType,
		description:    description,
		actorType:      actorType,
		actorID:        actorID,
		metadata:       metadata,
		createdAt:      createdAt,
	}, nil
}

func (a *Activity) SetSID(sid string)     { a.sid = sid }
func (a *Activity) SetActorID(id string)  { a.actorID = id }

// AddMetadata attaches a key to the metadata blob before persistence.
func (a *Activity) AddMetadata(key string, value interface{}) {
	if a.metadata == nil {
		a.metadata = make(map[string]interface{})
	}
	a.metadata[key] = value
}

func (a *Activity) ID() uint             { return a.id }
func (a *Activity) SID() string          { return a.sid }
func (a *Activity) TenantID() uint       { return a.tenantID }
func (a *Activity) SubscriptionID() uint { return a.subscriptionID }
func (a *Activity) ActivityType() string { return a.activityType }
func (a *Activity) Description() string  { return a.description }
func (a *Activity) ActorType() ActorType { return a.actorType }
func (a *Activity) ActorID() string      { return a.actorID }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }

func (a *Activity) Metadata() map[string]interface{} {
	if a.metadata == nil {
		return make(map[string]interface{})
	}
	out := make(map[string]interface{}, len(a.metadata))
	for k, v := range a.metadata {
		out[k] = v
	}
	return out
}

// SetIDFromStore sets the activity ID after insert (persistence layer use only).
func (a *Activity) SetIDFromStore(id uint) {
	if a.id == 0 {
		a.id = id
	}
}
