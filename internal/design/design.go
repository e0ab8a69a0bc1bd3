// internal/design/design.go
// Headloop tag design for headloop-suppression PCR.
//
// Given a guide sequence with downstream context and an existing primer
// pair, the designer searches three frame-shifted 20-nt windows per tag
// role, scores every candidate by melting-temperature distance to the
// primer it will be appended to, and prepends the closest-matching tag:
//
//   reverse-complement tag  revcomp(ctx[f:f+20]),  f = 0..2
//   offset tag              ctx[f+12:f+32],        f = 0..2
//
// Which primer receives which tag depends on the strand orientation of
// the guide relative to the primers. The whole search is 8 Tm
// evaluations (2 primers + 6 candidates) and is pure: identical inputs
// and an identical Tm function give identical output.
package design

import (
	"errors"
	"fmt"
	"math"

	"headloop/internal/oligo"
)

// Orientation says which strand the guide shares with the primer pair.
type Orientation string

const (
	Sense     Orientation = "sense"
	Antisense Orientation = "antisense"
)

const (
	// TagLen is the length of every headloop tag.
	TagLen = 20

	// MinContext is the minimum guide-plus-context length. The deepest
	// window read is ctx[14:34], so 34 would suffice geometrically; 35 is
	// the conservative floor the published protocol checks against.
	MinContext = 35

	// DefaultTolerance is the Tm-difference (°C) below which a tag is
	// considered matched to its primer.
	DefaultTolerance = 3.0

	offsetShift = 12
	frames      = 3
)

var (
	ErrInvalidOrientation = errors.New(`orientation must be "sense" or "antisense"`)
	ErrContextTooShort    = errors.New("guide and context is not big enough for design")
)

// TmError reports a melting-temperature evaluation failure. Frame is the
// candidate frame offset, or -1 when the failing sequence is a primer.
type TmError struct {
	Seq   string
	Frame int
	Err   error
}

func (e *TmError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("tm of primer %q: %v", e.Seq, e.Err)
	}
	return fmt.Sprintf("tm of tag candidate %q (frame %d): %v", e.Seq, e.Frame, e.Err)
}

func (e *TmError) Unwrap() error { return e.Err }

// TmFunc computes the melting temperature (°C) of a sequence. The reagent
// conditions are the caller's business; the designer only needs the number.
type TmFunc func(seq string) (float64, error)

// Request is one design job.
type Request struct {
	ID           string
	Sense        string // sense primer, 5'→3'
	Antisense    string // antisense primer, 5'→3'
	GuideContext string // guide plus ≥15 nt downstream context
	Orientation  Orientation
}

// Candidate is one scored tag option.
type Candidate struct {
	Seq       string  // tag sequence, 5'→3'
	Tm        float64 // °C
	Diff      float64 // |target primer Tm − tag Tm|, °C
	Frame     int     // 0..2
	WithinTol bool    // Diff < tolerance
}

// TaggedPrimer is one finished headloop primer.
type TaggedPrimer struct {
	ID   string // "Sense HL" or "Antisense HL"
	Seq  string // tag ⧺ original primer
	Tag  Candidate
	Note string // pass or warning annotation
}

// Pair is the designed result: one headloop primer per strand. Only one of
// the two is typically used; which one is decided at the bench.
type Pair struct {
	Sense     TaggedPrimer
	Antisense TaggedPrimer
}

// Designer carries the Tm collaborator and the match tolerance.
// The zero Tolerance means DefaultTolerance.
type Designer struct {
	Tm        TmFunc
	Tolerance float64
}

// Design runs a single design with the default tolerance.
func Design(req Request, tm TmFunc) (Pair, error) {
	return Designer{Tm: tm}.Design(req)
}

// Design validates req, scores all candidates, and assembles the pair.
func (d Designer) Design(req Request) (Pair, error) {
	rc, off, err := d.Candidates(req)
	if err != nil {
		return Pair{}, err
	}
	return d.assemble(req, bestRC(rc), bestOffset(off)), nil
}

// Candidates validates req and returns the two scored candidate sets in
// frame order (0, 1, 2): reverse-complement tags and offset tags.
func (d Designer) Candidates(req Request) (rc, off []Candidate, err error) {
	if req.Orientation != Sense && req.Orientation != Antisense {
		return nil, nil, ErrInvalidOrientation
	}
	ctx := req.GuideContext
	if len(ctx) < MinContext {
		return nil, nil, ErrContextTooShort
	}

	senseTm, err := d.temp(req.Sense, -1)
	if err != nil {
		return nil, nil, err
	}
	antiTm, err := d.temp(req.Antisense, -1)
	if err != nil {
		return nil, nil, err
	}

	// The rc tag lands on the primer sharing the guide's strand; the
	// offset tag lands on the opposite one.
	rcTarget, offTarget := senseTm, antiTm
	if req.Orientation == Antisense {
		rcTarget, offTarget = antiTm, senseTm
	}

	tol := d.tolerance()
	for f := 0; f < frames; f++ {
		c, err := d.score(oligo.RevComp(ctx[f:f+TagLen]), f, rcTarget, tol)
		if err != nil {
			return nil, nil, err
		}
		rc = append(rc, c)

		c, err = d.score(ctx[f+offsetShift:f+offsetShift+TagLen], f, offTarget, tol)
		if err != nil {
			return nil, nil, err
		}
		off = append(off, c)
	}
	return rc, off, nil
}

func (d Designer) tolerance() float64 {
	if d.Tolerance > 0 {
		return d.Tolerance
	}
	return DefaultTolerance
}

func (d Designer) temp(seq string, frame int) (float64, error) {
	tm, err := d.Tm(seq)
	if err != nil {
		return 0, &TmError{Seq: seq, Frame: frame, Err: err}
	}
	return tm, nil
}

func (d Designer) score(seq string, frame int, targetTm, tol float64) (Candidate, error) {
	tm, err := d.temp(seq, frame)
	if err != nil {
		return Candidate{}, err
	}
	diff := math.Abs(targetTm - tm)
	return Candidate{Seq: seq, Tm: tm, Diff: diff, Frame: frame, WithinTol: diff < tol}, nil
}

// bestRC picks the minimum-difference rc candidate; ties go to the lower
// frame offset (shorter shift into the guide).
func bestRC(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Diff < best.Diff {
			best = c
		}
	}
	return best
}

// bestOffset picks the minimum-difference offset candidate; ties go to the
// HIGHER frame offset. The asymmetry with bestRC is deliberate and matches
// the published headloop protocol.
func bestOffset(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Diff < best.Diff || (c.Diff == best.Diff && c.Frame > best.Frame) {
			best = c
		}
	}
	return best
}

func (d Designer) assemble(req Request, rcBest, offBest Candidate) Pair {
	senseTag, antiTag := rcBest, offBest
	if req.Orientation == Antisense {
		senseTag, antiTag = offBest, rcBest
	}
	return Pair{
		Sense:     finish("Sense HL", "sense", senseTag, req.Sense, d.tolerance()),
		Antisense: finish("Antisense HL", "antisense", antiTag, req.Antisense, d.tolerance()),
	}
}

func finish(id, side string, tag Candidate, primer string, tol float64) TaggedPrimer {
	note := fmt.Sprintf("Tm difference < %g°C", tol)
	if !tag.WithinTol {
		note = fmt.Sprintf("WARNING: Could not optimise %s headloop tag (Tm difference > %g°C)", side, tol)
	}
	return TaggedPrimer{ID: id, Seq: tag.Seq + primer, Tag: tag, Note: note}
}
