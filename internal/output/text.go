// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"headloop/internal/design"
)

// TSVHeader is the column line for text/TSV design output.
const TSVHeader = "request_id\trole\tsequence\ttag\ttag_tm\ttag_diff\tframe\tstatus\tnote"

// CandidatesHeader is the column line for the --candidates table.
const CandidatesHeader = "request_id\trole\tframe\tseq\ttm\tdiff\twithin_tolerance"

// WriteText prints two lines per design, one per headloop primer.
func WriteText(w io.Writer, list []Designed, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, d := range list {
		for _, tp := range []design.TaggedPrimer{d.Pair.Sense, d.Pair.Antisense} {
			if _, err := fmt.Fprintf(
				w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%d\t%s\t%s\n",
				d.RequestID, tp.ID, tp.Seq,
				tp.Tag.Seq, tp.Tag.Tm, tp.Tag.Diff, tp.Tag.Frame,
				status(tp.Tag.WithinTol), tp.Note,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCandidates prints the six scored tag options per request.
func WriteCandidates(w io.Writer, list []CandidateSet, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, CandidatesHeader); err != nil {
			return err
		}
	}
	for _, cs := range list {
		if err := writeCandidateRows(w, cs.RequestID, "revcomp", cs.RC); err != nil {
			return err
		}
		if err := writeCandidateRows(w, cs.RequestID, "offset", cs.Offset); err != nil {
			return err
		}
	}
	return nil
}

func writeCandidateRows(w io.Writer, id, role string, cands []design.Candidate) error {
	for _, c := range cands {
		if _, err := fmt.Fprintf(
			w, "%s\t%s\t%d\t%s\t%.2f\t%.2f\t%t\n",
			id, role, c.Frame, c.Seq, c.Tm, c.Diff, c.WithinTol,
		); err != nil {
			return err
		}
	}
	return nil
}

func status(withinTol bool) string {
	if withinTol {
		return "OK"
	}
	return "WARN"
}
