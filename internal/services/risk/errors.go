package risk

import "fmt"

// InvalidInputError reports an applicant record that is structurally missing a
// field the engine needs. Business edge cases (no loans, no bank accounts, a
// zero score) are never errors; they are handled by branch logic.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid applicant input: missing required field %q", e.Field)
}
