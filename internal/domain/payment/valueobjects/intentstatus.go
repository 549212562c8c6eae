package valueobjects

type IntentStatus string

const (
	IntentStatusPending    IntentStatus = "pending"
	IntentStatusProcessing IntentStatus = "processing"
	IntentStatusSucceeded  IntentStatus = "succeeded"
	IntentStatusFailed     IntentStatus = "failed"
	IntentStatusCancelled  IntentStatus = "cancelled"
	IntentStatusRefunded   IntentStatus = "refunded"
)

func (s IntentStatus) IsValid() bool {
	switch s {
	case IntentStatusPending, IntentStatusProcessing, IntentStatusSucceeded,
		IntentStatusFailed, IntentStatusCancelled, IntentStatusRefunded:
		return true
	default:
		return false
	}
}

func (s IntentStatus) IsPending() bool {
	return s == IntentStatusPending
}

func (s IntentStatus) IsProcessing() bool {
	return s == IntentStatusProcessing
}

func (s IntentStatus) IsSucceeded() bool {
	return s == IntentStatusSucceeded
}

// IsTerminal reports whether no further transitions are allowed.
func (s IntentStatus) IsTerminal() bool {
	switch s {
	case IntentStatusSucceeded, IntentStatusFailed, IntentStatusCancelled, IntentStatusRefunded:
		return true
	default:
		return false
	}
}

func (s IntentStatus) String() string {
	return string(s)
}
