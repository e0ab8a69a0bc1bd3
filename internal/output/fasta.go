// internal/output/fasta.go
package output

import (
	"fmt"
	"io"

	"headloop/internal/design"
)

// WriteFASTA writes each headloop primer as a FASTA record. The description
// line carries the request id, tag frame, Tm difference, and the annotation.
func WriteFASTA(w io.Writer, list []Designed) error {
	for _, d := range list {
		for _, tp := range []design.TaggedPrimer{d.Pair.Sense, d.Pair.Antisense} {
			if _, err := fmt.Fprintf(
				w,
				">%s %s frame=%d tag_diff=%.2f %s\n%s\n",
				tp.ID, d.RequestID, tp.Tag.Frame, tp.Tag.Diff, tp.Note, tp.Seq,
			); err != nil {
				return err
			}
		}
	}
	return nil
}
