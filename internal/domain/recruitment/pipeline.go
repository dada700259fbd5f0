package recruitment

import "errors"

var ErrInvalidTransition = errors.New("invalid stage transition")

// nextStages maps each pipeline stage to the stages it may move to.
// Offered and rejected are terminal.
var nextStages = map[string][]string{
	StageApplied:   {StageScreening, StageRejected},
	StageScreening: {StageInterview, StageRejected},
	StageInterview: {StageOffered, StageRejected},
}

func CanTransition(from, to string) bool {
	for _, allowed := range nextStages[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	return nil
}
