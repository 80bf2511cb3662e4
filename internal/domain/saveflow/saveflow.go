package saveflow

import (
	"errors"
	"time"
)

// TriggerConditions describe when a flow applies: the triggering event plus
// an opaque condition map evaluated by the presentation layer.
type TriggerConditions struct {
	Event      string                 `json:"event"`
	Conditions map[string]interface{} `json:"conditions,omitempty"`
}

// SaveFlow is a configured retention intervention. Among enabled flows the
// highest priority wins, ties broken by most recent creation.
type SaveFlow struct {
	id       uint
	sid      string
	tenantID uint

	name        string
	description string
	priority    int
	enabled     bool

	trigger TriggerConditions
	steps   StepList
	offers  OfferList

	totalTriggered    int
	totalSaved        int
	revenueSavedCents int64

	createdAt time.Time
	updatedAt time.Time
}

// NewSaveFlow creates an enabled flow with validated step and offer config.
func NewSaveFlow(tenantID uint, name string, priority int, trigger TriggerConditions, steps StepList, offers OfferList) (*SaveFlow, error) {
	if tenantID == 0 {
		return nil, errors.New("tenant ID is required")
	}
	if name == "" {
		return nil, errors.New("flow name is required")
	}
	if trigger.Event == "" {
		return nil, errors.New("trigger event is required")
	}
	if err := steps.Validate(); err != nil {
		return nil, err
	}
	if err := offers.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &SaveFlow{
		tenantID:  tenantID,
		name:      name,
		priority:  priority,
		enabled:   true,
		trigger:   trigger,
		steps:     steps,
		offers:    offers,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSaveFlow rebuilds a flow from persistence. Stored step and offer
// config is trusted; validation happened on the way in.
func ReconstructSaveFlow(
	id uint,
	sid string,
	tenantID uint,
	name, description string,
	priority int,
	enabled bool,
	trigger TriggerConditions,
	steps StepList,
	offers OfferList,
	totalTriggered, totalSaved int,
	revenueSavedCents int64,
	createdAt, updatedAt time.Time,
) (*SaveFlow, error) {
	if id == 0 {
		return nil, errors.New("save flow ID cannot be zero")
	}

	return &SaveFlow{
		id:                id,
		sid:               sid,
		tenantID:          tenantID,
		name:              name,
		description:       description,
		priority:          priority,
		enabled:           enabled,
		trigger:           trigger,
		steps:             steps,
		offers:            offers,
		totalTriggered:    totalTriggered,
		totalSaved:        totalSaved,
		revenueSavedCents: revenueSavedCents,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (f *SaveFlow) ID() uint                   { return f.id }
func (f *SaveFlow) SID() string                { return f.sid }
func (f *SaveFlow) TenantID() uint             { return f.tenantID }
func (f *SaveFlow) Name() string               { return f.name }
func (f *SaveFlow) Description() string        { return f.description }
func (f *SaveFlow) Priority() int              { return f.priority }
func (f *SaveFlow) Enabled() bool              { return f.enabled }
func (f *SaveFlow) Trigger() TriggerConditions { return f.trigger }
func (f *SaveFlow) TotalTriggered() int        { return f.totalTriggered }
func (f *SaveFlow) TotalSaved() int            { return f.totalSaved }
func (f *SaveFlow) RevenueSavedCents() int64   { return f.revenueSavedCents }
func (f *SaveFlow) CreatedAt() time.Time       { return f.createdAt }
func (f *SaveFlow) UpdatedAt() time.Time       { return f.updatedAt }

func (f *SaveFlow) Steps() StepList {
	out := make(StepList, len(f.steps))
	copy(out, f.steps)
	return out
}

func (f *SaveFlow) Offers() OfferList {
	out := make(OfferList, len(f.offers))
	copy(out, f.offers)
	return out
}

func (f *SaveFlow) SetSID(sid string) { f.sid = sid }

// SetIDFromStore sets the flow ID after insert (persistence layer use only).
func (f *SaveFlow) SetIDFromStore(id uint) {
	if f.id == 0 {
		f.id = id
	}
}

func (f *SaveFlow) UpdateName(name string) error {
	if name == "" {
		return errors.New("flow name is required")
	}
	f.name = name
	f.touch()
	return nil
}

func (f *SaveFlow) UpdateDescription(description string) {
	f.description = description
	f.touch()
}

func (f *SaveFlow) UpdatePriority(priority int) {
	f.priority = priority
	f.touch()
}

func (f *SaveFlow) UpdateTrigger(trigger TriggerConditions) error {
	if trigger.Event == "" {
		return errors.New("trigger event is required")
	}
	f.trigger = trigger
	f.touch()
	return nil
}

func (f *SaveFlow) UpdateSteps(steps StepList) error {
	if err := steps.Validate(); err != nil {
		return err
	}
	f.steps = steps
	f.touch()
	return nil
}

func (f *SaveFlow) UpdateOffers(offers OfferList) error {
	if err := offers.Validate(); err != nil {
		return err
	}
	f.offers = offers
	f.touch()
	return nil
}

// Toggle flips the enabled flag and returns the new state.
func (f *SaveFlow) Toggle() bool {
	f.enabled = !f.enabled
	f.touch()
	return f.enabled
}

// SaveRate is the read-side save percentage, 0 when never triggered.
func (f *SaveFlow) SaveRate() float64 {
	if f.totalTriggered == 0 {
		return 0
	}
	return float64(f.totalSaved) / float64(f.totalTriggered) * 100
}

func (f *SaveFlow) touch() {
	f.updatedAt = time.Now().UTC()
}
