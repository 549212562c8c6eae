package valueobjects

type SettlementStatus string

const (
	SettlementStatusCaptured SettlementStatus = "captured"
	SettlementStatusRefunded SettlementStatus = "refunded"
)

func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusCaptured, SettlementStatusRefunded:
		return true
	default:
		return false
	}
}

func (s SettlementStatus) String() string {
	return string(s)
}
