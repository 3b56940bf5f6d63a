package types

// FeedbackAction is a recruiter decision on an application.
type FeedbackAction string

// Recruiter feedback actions
const (
	ActionShortlist FeedbackAction = "SHORTLIST"
	ActionReject    FeedbackAction = "REJECT"
	ActionInterview FeedbackAction = "INTERVIEW"
	ActionHire      FeedbackAction = "HIRE"
)

// Valid reports whether the action is one of the known feedback actions.
func (a FeedbackAction) Valid() bool {
	switch a {
	case ActionShortlist, ActionReject, ActionInterview, ActionHire:
		return true
	}
	return false
}

// WeightDelta returns the edge-weight adjustment the action carries:
// positive signals add 0.1, a rejection subtracts 0.1.
func (a FeedbackAction) WeightDelta() float64 {
	if a == ActionReject {
		return -0.1
	}
	return 0.1
}

// Feedback is one recruiter action applied to the competencies that were
// surfaced for an application.
type Feedback struct {
	Action           FeedbackAction `json:"action"`
	UsedCompetencies []string       `json:"used_competencies"`
	Reason           string         `json:"reason,omitempty"`
}
