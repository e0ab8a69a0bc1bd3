// internal/output/types.go
package output

import "headloop/internal/design"

// Designed couples a finished pair with the request it answers.
type Designed struct {
	RequestID string
	Pair      design.Pair
}

// CandidateSet is the full scored search space for one request.
type CandidateSet struct {
	RequestID string
	RC        []design.Candidate // reverse-complement tags, frame order
	Offset    []design.Candidate // offset tags, frame order
}
