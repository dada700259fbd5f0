package recruitment

import "testing"

func TestPipelineTransitions(t *testing.T) {
	valid := [][2]string{
		{StageApplied, StageScreening},
		{StageScreening, StageInterview},
		{StageInterview, StageOffered},
		{StageApplied, StageRejected},
		{StageScreening, StageRejected},
		{StageInterview, StageRejected},
	}
	for _, pair := range valid {
		if err := ValidateTransition(pair[0], pair[1]); err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", pair[0], pair[1], err)
		}
	}

	invalid := [][2]string{
		{StageApplied, StageOffered},
		{StageApplied, StageInterview},
		{StageOffered, StageRejected},
		{StageRejected, StageApplied},
		{StageInterview, StageScreening},
	}
	for _, pair := range invalid {
		if err := ValidateTransition(pair[0], pair[1]); err == nil {
			t.Fatalf("%s -> %s should be rejected", pair[0], pair[1])
		}
	}
}
