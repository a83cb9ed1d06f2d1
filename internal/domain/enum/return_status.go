package enum

// ReturnStatus tracks a return request through approval.
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	}
	return false
}
