// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"math"
	"strings"
	"testing"
)

func TestFormatParseFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 3.14159265358979, math.Inf(1), math.Inf(-1), math.NaN()} {
		s := formatFloat(f)
		got, err := parseFloat(s)
		if err != nil {
			t.Fatalf("parseFloat(%q): %v", s, err)
		}
		if math.IsNaN(f) {
			if !math.IsNaN(got) {
				t.Errorf("formatFloat/parseFloat round trip of NaN got %v", got)
			}
			continue
		}
		if got != f {
			t.Errorf("formatFloat/parseFloat round trip of %v via %q = %v", f, s, got)
		}
	}
}

func TestWriteOmitsEntriesSeenFromDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(nil, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	s.loadLogProb("a", -12.5) // seen from disk, must not be re-emitted
	s.SetLogProb("b", -3.25)  // fresh this run, must be emitted

	var buf strings.Builder
	if err := Write(s, &buf, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\na,") {
		t.Errorf("Write re-emitted a key loaded from disk:\n%s", out)
	}
	if !strings.Contains(out, "b,") {
		t.Errorf("Write dropped a freshly calculated key:\n%s", out)
	}
}

func TestLoadThenWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(nil, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	const in = "unique_ids,logprob,naive_seq,naive_hfrac,cyst_position,errors\n" +
		"a:b,-1.5,ACGT,,3,\n" +
		"a:b:c,,,0.25,,\n" +
		"d,,,,,:boundary\n"

	if err := Load(s, strings.NewReader(in)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v, ok := s.LogProb("a:b"); !ok || v != -1.5 {
		t.Errorf("LogProb(%q) = %v, %v, want -1.5, true", "a:b", v, ok)
	}
	if seq, cyst, ok := s.NaiveSeq("a:b"); !ok || seq != "ACGT" || cyst != 3 {
		t.Errorf("NaiveSeq(%q) = %q, %d, %v, want ACGT, 3, true", "a:b", seq, cyst, ok)
	}
	if v, ok := s.Hfrac("a:b:c"); !ok || v != 0.25 {
		t.Errorf("Hfrac(%q) = %v, %v, want 0.25, true", "a:b:c", v, ok)
	}
	if msg, ok := s.Error("d"); !ok || msg != ":boundary" {
		t.Errorf("Error(%q) = %q, %v, want :boundary, true", "d", msg, ok)
	}

	var buf strings.Builder
	if err := Write(s, &buf, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Every row above was loaded from disk, so re-writing immediately
	// with no new computation must only emit the error-tagged key, which
	// carries no other loaded field and so is not itself "seen".
	got := buf.String()
	if strings.Count(got, "\n") != 2 {
		t.Errorf("Write after Load re-emitted loaded rows:\n%s", got)
	}
}
