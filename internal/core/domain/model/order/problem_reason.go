package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ProblemReason is the closed taxonomy of delivery incident causes.
// A transition to StatusProblem requires one of these values; free-form
// incident text is not accepted.
type ProblemReason int

const (
	// ProblemReasonUnknown represents an invalid or undefined reason.
	ProblemReasonUnknown ProblemReason = iota

	// ProblemReasonAddressNotFound means the delivery address could not be located.
	ProblemReasonAddressNotFound

	// ProblemReasonRecipientUnavailable means nobody accepted the handoff.
	ProblemReasonRecipientUnavailable

	// ProblemReasonPackageDamaged means the goods were damaged in transit.
	ProblemReasonPackageDamaged

	// ProblemReasonVehicleBreakdown means the courier cannot continue.
	ProblemReasonVehicleBreakdown

	// ProblemReasonOther covers incidents outside the specific causes.
	ProblemReasonOther
)

func getProblemReasonStrings() map[ProblemReason]string {
	return map[ProblemReason]string{
		ProblemReasonUnknown:              "unknown",
		ProblemReasonAddressNotFound:      "address_not_found",
		ProblemReasonRecipientUnavailable: "recipient_unavailable",
		ProblemReasonPackageDamaged:       "package_damaged",
		ProblemReasonVehicleBreakdown:     "vehicle_breakdown",
		ProblemReasonOther:                "other",
	}
}

func getValidProblemReasonStrings() map[ProblemReason]string {
	//nolint:exhaustive // ProblemReasonUnknown is intentionally excluded as it's invalid
	return map[ProblemReason]string{
		ProblemReasonAddressNotFound:      "address_not_found",
		ProblemReasonRecipientUnavailable: "recipient_unavailable",
		ProblemReasonPackageDamaged:       "package_damaged",
		ProblemReasonVehicleBreakdown:     "vehicle_breakdown",
		ProblemReasonOther:                "other",
	}
}

// ProblemReasonFromString parses a reason name into a ProblemReason.
// Returns an error for any name outside the taxonomy.
func ProblemReasonFromString(s string) (ProblemReason, error) {
	for reason, str := range getValidProblemReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return ProblemReasonUnknown, errs.NewValueIsInvalidErrorWithCause("problem_reason",
		fmt.Errorf("%q is not a valid problem reason", s))
}

// Validate checks if the ProblemReason is part of the taxonomy.
func (r ProblemReason) Validate() error {
	if _, ok := getValidProblemReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("problem_reason",
			fmt.Errorf("%d is not a valid problem reason", r))
	}
	return nil
}

// String returns the snake_case reason name, or "unknown" for invalid values.
func (r ProblemReason) String() string {
	if str, ok := getProblemReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}
