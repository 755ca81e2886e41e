package model

// VisibleState represents the state reflected by the loading button
type VisibleState string

const (
	// StateIdle is the initial and resting state
	StateIdle VisibleState = "Idle"

	// StateInProgress holds exactly while a transfer is pending
	StateInProgress VisibleState = "InProgress"

	// StateDone is shown after a completion was correlated; the next user
	// interaction returns it to Idle
	StateDone VisibleState = "Done"
)

// String returns the string representation of VisibleState
func (vs VisibleState) String() string {
	return string(vs)
}

// IsBusy returns true while a transfer occupies the controller
func (vs VisibleState) IsBusy() bool {
	return vs == StateInProgress
}

// TransferStatus represents the status reported by the transfer service
type TransferStatus string

const (
	// TransferPending means the request was accepted but not started
	TransferPending TransferStatus = "Pending"

	// TransferRunning means bytes are being fetched
	TransferRunning TransferStatus = "Running"

	// TransferSuccessful means the archive was stored completely
	TransferSuccessful TransferStatus = "Successful"

	// TransferFailed means the transfer ended with an error
	TransferFailed TransferStatus = "Failed"

	// TransferUnknown is reported when the service has no usable status
	TransferUnknown TransferStatus = "Unknown"
)

// String returns the string representation of TransferStatus
func (ts TransferStatus) String() string {
	return string(ts)
}

// IsActive returns true if the transfer has not finished yet
func (ts TransferStatus) IsActive() bool {
	return ts == TransferPending || ts == TransferRunning
}

// IsFinished returns true if the transfer reached a terminal status
func (ts TransferStatus) IsFinished() bool {
	return ts == TransferSuccessful || ts == TransferFailed
}
