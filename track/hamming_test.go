// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"math"
	"testing"
)

func TestHammingFraction(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		want    float64
		wantErr bool
	}{
		{name: "identical", a: "ACGT", b: "ACGT", want: 0},
		{name: "one mismatch", a: "ACGT", b: "ACGA", want: 0.25},
		{name: "all mismatch", a: "ACGT", b: "TGCA", want: 1},
		{name: "ambiguous excluded", a: "ANGT", b: "ACGA", want: 1.0 / 3},
		{name: "length mismatch", a: "ACG", b: "ACGT", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewSequence(DNA, "a", test.a, -1)
			b := NewSequence(DNA, "b", test.b, -1)
			got, err := HammingFraction(a, b)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-test.want) > 1e-9 {
				t.Errorf("HammingFraction(%q, %q) = %v, want %v", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestHammingFractionAllAmbiguous(t *testing.T) {
	a := NewSequence(DNA, "a", "NNN", -1)
	b := NewSequence(DNA, "b", "ACG", -1)
	got, err := HammingFraction(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("HammingFraction with no non-ambiguous positions = %v, want NaN", got)
	}
}

// injecting the ambiguous symbol at any position in either input leaves
// HammingFraction unchanged relative to a run without that column.
func TestHammingFractionIgnoresAmbiguousColumn(t *testing.T) {
	// Baseline: the same comparison without the extra column at all.
	withoutColumn, err := HammingFraction(
		NewSequence(DNA, "a", "ACGTA", -1),
		NewSequence(DNA, "b", "ACGAA", -1),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same comparison with an extra column present but ambiguous in one side.
	withAmbiguousColumn, err := HammingFraction(
		NewSequence(DNA, "a", "ACGTAN", -1),
		NewSequence(DNA, "b", "ACGAAC", -1),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(withAmbiguousColumn-withoutColumn) > 1e-9 {
		t.Errorf("ambiguous column changed HammingFraction: %v != %v", withAmbiguousColumn, withoutColumn)
	}
}
