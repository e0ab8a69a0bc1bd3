// internal/design/design_test.go
package design

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"headloop/internal/oligo"
	"headloop/internal/thermo"
)

// tbx16_AA from Kroll et al 2021 eLife 10:e59683.
const (
	tbxSense   = "AGGTTATTTGCTGTCATGGCTTTG"
	tbxAnti    = "ACTTTCACATCATTCCACTGG"
	tbxContext = "ACCATCATGTGCTGGACGTCCGGATTGATGGAGCG" // 35 nt
)

func constTm(v float64) TmFunc {
	return func(string) (float64, error) { return v, nil }
}

// mapTm returns values from m, errors on sequences it has never heard of.
func mapTm(t *testing.T, m map[string]float64) TmFunc {
	return func(seq string) (float64, error) {
		if v, ok := m[seq]; ok {
			return v, nil
		}
		t.Fatalf("unexpected Tm query %q", seq)
		return 0, nil
	}
}

func realTm(seq string) (float64, error) { return thermo.Temp(seq, thermo.Default()) }

func TestDesign_InvalidOrientation(t *testing.T) {
	_, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: "sideways",
	}, constTm(60))
	if !errors.Is(err, ErrInvalidOrientation) {
		t.Fatalf("want ErrInvalidOrientation, got %v", err)
	}
}

func TestDesign_ContextTooShort(t *testing.T) {
	_, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext[:20], Orientation: Sense,
	}, constTm(60))
	if !errors.Is(err, ErrContextTooShort) {
		t.Fatalf("want ErrContextTooShort, got %v", err)
	}
}

func TestDesign_ContextFloorIs35(t *testing.T) {
	req := Request{Sense: tbxSense, Antisense: tbxAnti, Orientation: Sense}

	req.GuideContext = tbxContext[:34]
	if _, err := Design(req, constTm(60)); !errors.Is(err, ErrContextTooShort) {
		t.Fatalf("34 nt context: want ErrContextTooShort, got %v", err)
	}

	req.GuideContext = tbxContext // exactly 35
	if _, err := Design(req, constTm(60)); err != nil {
		t.Fatalf("35 nt context should design: %v", err)
	}
}

func TestDesign_ValidationShortCircuitsTm(t *testing.T) {
	called := false
	tm := func(string) (float64, error) { called = true; return 60, nil }
	_, _ = Design(Request{GuideContext: "ACGT", Orientation: Sense}, tm)
	if called {
		t.Fatal("Tm must not be evaluated after a validation failure")
	}
}

func TestDesign_TmErrorCarriesSequenceAndFrame(t *testing.T) {
	boom := errors.New("boom")
	bad := oligo.RevComp(tbxContext[1:21]) // rc candidate at frame 1
	tm := func(seq string) (float64, error) {
		if seq == bad {
			return 0, boom
		}
		return 60, nil
	}
	_, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	}, tm)
	var te *TmError
	if !errors.As(err, &te) {
		t.Fatalf("want *TmError, got %v", err)
	}
	if te.Seq != bad || te.Frame != 1 || !errors.Is(err, boom) {
		t.Fatalf("TmError = %+v, want seq %q frame 1 wrapping boom", te, bad)
	}
}

func TestCandidates_WindowCoordinates(t *testing.T) {
	rc, off, err := Designer{Tm: constTm(60)}.Candidates(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rc) != 3 || len(off) != 3 {
		t.Fatalf("want 3+3 candidates, got %d+%d", len(rc), len(off))
	}
	for f := 0; f < 3; f++ {
		if want := oligo.RevComp(tbxContext[f : f+20]); rc[f].Seq != want {
			t.Errorf("rc frame %d = %s, want %s", f, rc[f].Seq, want)
		}
		if want := tbxContext[f+12 : f+32]; off[f].Seq != want {
			t.Errorf("offset frame %d = %s, want %s", f, off[f].Seq, want)
		}
		if rc[f].Frame != f || off[f].Frame != f {
			t.Errorf("frame bookkeeping wrong at %d", f)
		}
	}
}

func TestDesign_TieBreakAsymmetry(t *testing.T) {
	// Constant Tm makes every candidate an exact tie: the rc tag must take
	// frame 0, the offset tag frame 2.
	pair, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	}, constTm(60))
	if err != nil {
		t.Fatal(err)
	}
	if pair.Sense.Tag.Frame != 0 {
		t.Errorf("rc tie-break: frame %d, want 0", pair.Sense.Tag.Frame)
	}
	if pair.Antisense.Tag.Frame != 2 {
		t.Errorf("offset tie-break: frame %d, want 2", pair.Antisense.Tag.Frame)
	}
}

func TestDesign_PicksMinimumDifference(t *testing.T) {
	m := map[string]float64{tbxSense: 60, tbxAnti: 62}
	rcTm := []float64{59, 60.5, 58}    // diffs vs 60: 1, 0.5, 2 → frame 1
	offTm := []float64{65, 64, 63.5}   // diffs vs 62: 3, 2, 1.5 → frame 2
	for f := 0; f < 3; f++ {
		m[oligo.RevComp(tbxContext[f:f+20])] = rcTm[f]
		m[tbxContext[f+12:f+32]] = offTm[f]
	}
	pair, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	}, mapTm(t, m))
	if err != nil {
		t.Fatal(err)
	}
	if pair.Sense.Tag.Frame != 1 || pair.Sense.Tag.Diff != 0.5 {
		t.Errorf("rc winner = frame %d diff %v, want frame 1 diff 0.5", pair.Sense.Tag.Frame, pair.Sense.Tag.Diff)
	}
	if pair.Antisense.Tag.Frame != 2 || pair.Antisense.Tag.Diff != 1.5 {
		t.Errorf("offset winner = frame %d diff %v, want frame 2 diff 1.5", pair.Antisense.Tag.Frame, pair.Antisense.Tag.Diff)
	}
}

func TestDesign_ToleranceBoundaryIsStrict(t *testing.T) {
	// Exactly 3.0 °C is NOT within tolerance.
	m := map[string]float64{tbxSense: 60, tbxAnti: 60}
	for f := 0; f < 3; f++ {
		m[oligo.RevComp(tbxContext[f:f+20])] = 63 // diff 3.0
		m[tbxContext[f+12:f+32]] = 62.9           // diff 2.9
	}
	pair, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	}, mapTm(t, m))
	if err != nil {
		t.Fatal(err)
	}
	if pair.Sense.Tag.WithinTol {
		t.Error("diff of exactly 3.0 must be out of tolerance")
	}
	if !strings.Contains(pair.Sense.Note, "WARNING: Could not optimise sense headloop tag") {
		t.Errorf("sense note = %q, want warning", pair.Sense.Note)
	}
	if !pair.Antisense.Tag.WithinTol || !strings.Contains(pair.Antisense.Note, "Tm difference < 3°C") {
		t.Errorf("antisense note = %q, want pass", pair.Antisense.Note)
	}
}

func TestDesign_AssemblyByOrientation(t *testing.T) {
	rc0 := oligo.RevComp(tbxContext[0:20])
	off2 := tbxContext[14:34]

	t.Run("sense", func(t *testing.T) {
		pair, err := Design(Request{
			Sense: tbxSense, Antisense: tbxAnti,
			GuideContext: tbxContext, Orientation: Sense,
		}, constTm(60))
		if err != nil {
			t.Fatal(err)
		}
		if pair.Sense.Seq != rc0+tbxSense {
			t.Errorf("sense HL = %s, want rc tag + sense primer", pair.Sense.Seq)
		}
		if pair.Antisense.Seq != off2+tbxAnti {
			t.Errorf("antisense HL = %s, want offset tag + antisense primer", pair.Antisense.Seq)
		}
	})

	t.Run("antisense", func(t *testing.T) {
		pair, err := Design(Request{
			Sense: tbxSense, Antisense: tbxAnti,
			GuideContext: tbxContext, Orientation: Antisense,
		}, constTm(60))
		if err != nil {
			t.Fatal(err)
		}
		if pair.Antisense.Seq != rc0+tbxAnti {
			t.Errorf("antisense HL = %s, want rc tag + antisense primer", pair.Antisense.Seq)
		}
		if pair.Sense.Seq != off2+tbxSense {
			t.Errorf("sense HL = %s, want offset tag + sense primer", pair.Sense.Seq)
		}
	})
}

func TestDesign_OrientationSwapIsSymmetric(t *testing.T) {
	// Swapping orientation while swapping which physical primer is sense
	// vs antisense swaps the two outputs.
	a, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	}, realTm)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Design(Request{
		Sense: tbxAnti, Antisense: tbxSense,
		GuideContext: tbxContext, Orientation: Antisense,
	}, realTm)
	if err != nil {
		t.Fatal(err)
	}
	if a.Sense.Seq != b.Antisense.Seq || a.Antisense.Seq != b.Sense.Seq {
		t.Errorf("swap not symmetric:\n a=%+v\n b=%+v", a, b)
	}
}

func TestDesign_TaggedLength(t *testing.T) {
	for _, orient := range []Orientation{Sense, Antisense} {
		pair, err := Design(Request{
			Sense: tbxSense, Antisense: tbxAnti,
			GuideContext: tbxContext, Orientation: orient,
		}, realTm)
		if err != nil {
			t.Fatal(err)
		}
		if len(pair.Sense.Seq) != len(tbxSense)+TagLen {
			t.Errorf("%s: sense HL length %d, want %d", orient, len(pair.Sense.Seq), len(tbxSense)+TagLen)
		}
		if len(pair.Antisense.Seq) != len(tbxAnti)+TagLen {
			t.Errorf("%s: antisense HL length %d, want %d", orient, len(pair.Antisense.Seq), len(tbxAnti)+TagLen)
		}
	}
}

func TestDesign_ReferenceExample(t *testing.T) {
	pair, err := Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Antisense,
	}, realTm)
	if err != nil {
		t.Fatal(err)
	}
	if pair.Sense.ID != "Sense HL" || pair.Antisense.ID != "Antisense HL" {
		t.Errorf("role ids = %q/%q", pair.Sense.ID, pair.Antisense.ID)
	}
	if !strings.HasSuffix(pair.Sense.Seq, tbxSense) {
		t.Errorf("sense HL %s does not end with the sense primer", pair.Sense.Seq)
	}
	if !strings.HasSuffix(pair.Antisense.Seq, tbxAnti) {
		t.Errorf("antisense HL %s does not end with the antisense primer", pair.Antisense.Seq)
	}
	// The antisense HL carries the rc tag here, so its tag must be the
	// reverse complement of one of the three rc windows.
	found := false
	for f := 0; f < 3; f++ {
		if pair.Antisense.Tag.Seq == oligo.RevComp(tbxContext[f:f+20]) {
			found = true
		}
	}
	if !found {
		t.Errorf("antisense tag %s is not an rc window of the context", pair.Antisense.Tag.Seq)
	}
	if pair.Sense.Note == "" || pair.Antisense.Note == "" {
		t.Error("annotations must never be empty")
	}
}

func TestDesign_Idempotent(t *testing.T) {
	req := Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Antisense,
	}
	a, err := Design(req, realTm)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Design(req, realTm)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("not idempotent:\n a=%+v\n b=%+v", a, b)
	}
}

func TestDesign_CustomToleranceInNote(t *testing.T) {
	d := Designer{Tm: constTm(60), Tolerance: 1.5}
	pair, err := d.Design(Request{
		Sense: tbxSense, Antisense: tbxAnti,
		GuideContext: tbxContext, Orientation: Sense,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("Tm difference < %g°C", 1.5)
	if pair.Sense.Note != want {
		t.Errorf("note = %q, want %q", pair.Sense.Note, want)
	}
}
