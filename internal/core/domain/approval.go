package domain

import "fmt"

// ApprovalStatus is the lifecycle state shared by roster entries,
// timesheets and leave requests.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s ApprovalStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// DecisionAction is an approve/reject action taken on a pending record.
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

// ParseDecisionAction validates an action string from a request.
func ParseDecisionAction(s string) (DecisionAction, error) {
	switch DecisionAction(s) {
	case ActionApprove, ActionReject:
		return DecisionAction(s), nil
	default:
		return "", fmt.Errorf("%w: action must be \"approve\" or \"reject\"", ErrInvalidInput)
	}
}

// Status returns the terminal status the action leads to.
func (a DecisionAction) Status() ApprovalStatus {
	if a == ActionApprove {
		return StatusApproved
	}
	return StatusRejected
}

// Transition applies an approve/reject decision to a current status.
// Re-applying the decision that produced a terminal status is an idempotent
// no-op (changed=false); a conflicting decision on a terminal record fails.
func Transition(current ApprovalStatus, action DecisionAction) (next ApprovalStatus, changed bool, err error) {
	next = action.Status()
	if current.Terminal() {
		if current == next {
			return current, false, nil
		}
		return current, false, fmt.Errorf("%w: record already %s", ErrConflict, current)
	}
	return next, true, nil
}
