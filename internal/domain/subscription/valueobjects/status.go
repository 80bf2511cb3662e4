package valueobjects

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

var ValidStatuses = map[Status]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusPaused:    true,
	StatusCancelled: true,
	StatusExpired:   true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

// Billable reports whether subscriptions in this status contribute to
// recurring-revenue aggregates.
func (s Status) Billable() bool {
	return s == StatusActive
}

// Terminalish reports whether the status represents an ended subscription.
// Cancelled is terminal in intent only: the data layer allows a later resume,
// which restores the subscription to active. Callers that want hard terminal
// semantics must enforce them above this layer.
func (s Status) Terminalish() bool {
	return s == StatusCancelled || s == StatusExpired
}
