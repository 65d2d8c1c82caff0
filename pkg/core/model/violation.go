package model

import "fmt"

// Violation describes one validation failure on caller-supplied input.
// Validation collects every violation in a request rather than stopping at
// the first, so a submitter can fix a whole form in one round trip.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}
