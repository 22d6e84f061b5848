package constants

const (
	PendingActionUpdate = "UPDATE"
	PendingActionDelete = "DELETE"
)

const (
	PendingStatusPending  = "PENDING"
	PendingStatusApproved = "APPROVED"
	PendingStatusRejected = "REJECTED"
)
