// internal/output/json.go
package output

import (
	"io"

	"headloop/internal/design"
	"headloop/internal/jsonutil"
	"headloop/pkg/api"
)

// ToAPIDesign converts a domain result to the stable wire schema (v1).
func ToAPIDesign(d Designed) api.DesignV1 {
	return api.DesignV1{
		RequestID: d.RequestID,
		Sense:     toAPITagged(d.Pair.Sense),
		Antisense: toAPITagged(d.Pair.Antisense),
	}
}

func toAPITagged(tp design.TaggedPrimer) api.TaggedPrimerV1 {
	return api.TaggedPrimerV1{
		ID:              tp.ID,
		Seq:             tp.Seq,
		Tag:             tp.Tag.Seq,
		TagTm:           tp.Tag.Tm,
		TagDiff:         tp.Tag.Diff,
		Frame:           tp.Tag.Frame,
		WithinTolerance: tp.Tag.WithinTol,
		Note:            tp.Note,
	}
}

// WriteJSON writes a single JSON array of v1 designs (pretty-indented).
func WriteJSON(w io.Writer, list []Designed) error {
	out := make([]api.DesignV1, 0, len(list))
	for _, d := range list {
		out = append(out, ToAPIDesign(d))
	}
	return jsonutil.EncodePretty(w, out)
}

// WriteCandidatesJSON writes the scored candidate tables as a flat v1 array.
func WriteCandidatesJSON(w io.Writer, list []CandidateSet) error {
	var out []api.CandidateV1
	for _, cs := range list {
		for _, c := range cs.RC {
			out = append(out, toAPICandidate(cs.RequestID, "revcomp", c))
		}
		for _, c := range cs.Offset {
			out = append(out, toAPICandidate(cs.RequestID, "offset", c))
		}
	}
	return jsonutil.EncodePretty(w, out)
}

func toAPICandidate(id, role string, c design.Candidate) api.CandidateV1 {
	return api.CandidateV1{
		RequestID:       id,
		Role:            role,
		Seq:             c.Seq,
		Tm:              c.Tm,
		Diff:            c.Diff,
		Frame:           c.Frame,
		WithinTolerance: c.WithinTol,
	}
}
