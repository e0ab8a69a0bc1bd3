// internal/oligo/oligo_test.go
package oligo

import (
	"strings"
	"testing"
)

func TestRevCompSimple(t *testing.T) {
	got := RevComp("AGTC")
	if got != "GACT" {
		t.Errorf("RevComp(AGTC) = %s, want GACT", got)
	}
}

func TestRevCompPreservesCase(t *testing.T) {
	if got := RevComp("acGT"); got != "ACgt" {
		t.Errorf("RevComp(acGT) = %s, want ACgt", got)
	}
}

func TestRevCompEmpty(t *testing.T) {
	if out := RevComp(""); out != "" {
		t.Errorf("RevComp(\"\") = %q, want \"\"", out)
	}
}

func TestRevCompInvolution(t *testing.T) {
	in := "ACCATCATGTGCTGGACGTCC"
	if got := RevComp(RevComp(in)); got != in {
		t.Errorf("RevComp twice = %s, want %s", got, in)
	}
}

func TestCleanStripsNoise(t *testing.T) {
	if got := Clean(" AC GT\t'\"\n"); got != "ACGT" {
		t.Errorf("Clean = %q, want ACGT", got)
	}
}

func TestValidate(t *testing.T) {
	if _, err := Validate(""); err == nil {
		t.Fatal("expected error for empty oligo")
	}
	if _, err := Validate("ACGN"); err == nil || !strings.Contains(err.Error(), "invalid base") {
		t.Fatalf("expected invalid-base error, got %v", err)
	}
	s, err := Validate(" acGT ")
	if err != nil || s != "acGT" {
		t.Fatalf("Validate(\" acGT \") = %q, %v", s, err)
	}
}
