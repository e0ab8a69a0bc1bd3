// pkg/api/design_v1.go
package api

// DesignV1 is the stable JSON schema for one design result.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type DesignV1 struct {
	RequestID string         `json:"request_id"`
	Sense     TaggedPrimerV1 `json:"sense"`
	Antisense TaggedPrimerV1 `json:"antisense"`
}

// TaggedPrimerV1 is one finished headloop primer on the wire.
type TaggedPrimerV1 struct {
	ID              string  `json:"id"` // "Sense HL" | "Antisense HL"
	Seq             string  `json:"seq"`
	Tag             string  `json:"tag"`
	TagTm           float64 `json:"tag_tm"`
	TagDiff         float64 `json:"tag_diff"`
	Frame           int     `json:"frame"`
	WithinTolerance bool    `json:"within_tolerance"`
	Note            string  `json:"note"`
}

// CandidateV1 is one scored tag option (emitted by --candidates).
type CandidateV1 struct {
	RequestID       string  `json:"request_id"`
	Role            string  `json:"role"` // "revcomp" | "offset"
	Seq             string  `json:"seq"`
	Tm              float64 `json:"tm"`
	Diff            float64 `json:"diff"`
	Frame           int     `json:"frame"`
	WithinTolerance bool    `json:"within_tolerance"`
}
