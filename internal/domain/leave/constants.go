package leave

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	// BaseEntitlement is the uniform annual allotment in days.
	BaseEntitlement = 24

	// MaxCarryover caps the unused balance rolled into the next leave year.
	MaxCarryover = 48
)
