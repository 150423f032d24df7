// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/kortschak/glom/cache"
	"github.com/kortschak/glom/hmm"
	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/partition"
	"github.com/kortschak/glom/track"
)

// stubRunner answers Viterbi/Forward calls from fixed tables keyed by
// the sorted set of sequence names in the request, so tests can assert
// on the engine's bookkeeping without a real HMM collaborator.
type stubRunner struct {
	naive   map[string]hmm.ViterbiResult
	logProb map[string]float64
}

func (s *stubRunner) key(seqs []track.Sequence) string {
	names := make([]string, len(seqs))
	for i, sq := range seqs {
		names[i] = sq.Name()
	}
	return partition.JoinNames(names)
}

func (s *stubRunner) RunViterbi(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (hmm.ViterbiResult, error) {
	r, ok := s.naive[s.key(seqs)]
	if !ok {
		return hmm.ViterbiResult{Events: []hmm.Event{{NaiveSeq: seqs[0].Undigitized(), CystPosition: 0}}}, nil
	}
	return r, nil
}

func (s *stubRunner) RunForward(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (hmm.ForwardResult, error) {
	lp, ok := s.logProb[s.key(seqs)]
	if !ok {
		lp = -1
	}
	return hmm.ForwardResult{TotalScore: lp}, nil
}

func newTestGlomerator(t *testing.T, cfg Config, runner *stubRunner) *Glomerator {
	t.Helper()
	store, err := cache.Open(track.DNA, t.TempDir())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(cfg, track.DNA, runner, store, rand.New(rand.NewSource(1)))
}

func seedSingleton(t *testing.T, g *Glomerator, name, raw string) {
	t.Helper()
	seq := track.NewSequence(track.DNA, name, raw, -1)
	g.Seed(name, seq, kbounds.New(kbounds.KSet{}, kbounds.KSet{KV: 5, KD: 5}), nil, 0.01)
}

func TestAddWithMinusInfinities(t *testing.T) {
	if got := addWithMinusInfinities(-3, -4); got != -7 {
		t.Errorf("addWithMinusInfinities(-3, -4) = %v, want -7", got)
	}
	if got := addWithMinusInfinities(math.Inf(-1), -4); !math.IsInf(got, -1) {
		t.Errorf("addWithMinusInfinities(-Inf, -4) = %v, want -Inf", got)
	}
}

func TestLogProbOfPartitionNoFwd(t *testing.T) {
	g := newTestGlomerator(t, Config{NoFwd: true}, &stubRunner{})
	seedSingleton(t, g, "a", "ACGT")
	p := partition.NewFrom([]string{"a"})

	lp, err := g.LogProbOfPartition(p)
	if err != nil {
		t.Fatalf("LogProbOfPartition: %v", err)
	}
	if !math.IsInf(lp, -1) {
		t.Errorf("LogProbOfPartition with NoFwd = %v, want -Inf", lp)
	}
}

func TestChooseMergeRejectsBelowSizeGate(t *testing.T) {
	runner := &stubRunner{
		logProb: map[string]float64{
			"a":   -10,
			"b":   -10,
			"a:b": -19, // lratio = -19 - (-10) - (-10) = 1, well below the size-2 gate of 20
		},
	}
	g := newTestGlomerator(t, Config{HammingFractionBoundHi: 1.0}, runner)
	seedSingleton(t, g, "a", "ACGTACGT")
	seedSingleton(t, g, "b", "ACGTACGA")

	p := partition.NewFrom([]string{"a", "b"})
	_, _, finished, err := g.chooseMerge(p)
	if err != nil {
		t.Fatalf("chooseMerge: %v", err)
	}
	if !finished {
		t.Errorf("chooseMerge did not finish despite the only pair failing the size-2 ratio gate")
	}
}

func TestChooseMergeAcceptsAboveSizeGate(t *testing.T) {
	runner := &stubRunner{
		logProb: map[string]float64{
			"a":   -10,
			"b":   -10,
			"a:b": 5, // lratio = 5 - (-10) - (-10) = 25 >= the size-2 gate of 20
		},
	}
	g := newTestGlomerator(t, Config{HammingFractionBoundHi: 1.0}, runner)
	seedSingleton(t, g, "a", "ACGTACGT")
	seedSingleton(t, g, "b", "ACGTACGA")

	p := partition.NewFrom([]string{"a", "b"})
	q, lratio, finished, err := g.chooseMerge(p)
	if err != nil {
		t.Fatalf("chooseMerge: %v", err)
	}
	if finished {
		t.Fatalf("chooseMerge finished despite a pair clearing the size-2 ratio gate")
	}
	if lratio != 25 {
		t.Errorf("lratio = %v, want 25", lratio)
	}
	if q.Name != "a:b" {
		t.Errorf("merged name = %q, want a:b", q.Name)
	}
}

func TestChooseMergeHammingShortcutSkipsHMM(t *testing.T) {
	runner := &stubRunner{}
	g := newTestGlomerator(t, Config{
		HammingFractionBoundHi: 1.0,
		HammingFractionBoundLo: 0.5, // every pair of identical sequences has hfrac 0, well under this
	}, runner)
	seedSingleton(t, g, "a", "ACGT")
	seedSingleton(t, g, "b", "ACGT")

	p := partition.NewFrom([]string{"a", "b"})
	q, lratio, finished, err := g.chooseMerge(p)
	if err != nil {
		t.Fatalf("chooseMerge: %v", err)
	}
	if finished {
		t.Fatalf("chooseMerge finished despite a hamming-shortcut-eligible pair")
	}
	if !math.IsInf(lratio, -1) {
		t.Errorf("hamming-shortcut lratio = %v, want -Inf", lratio)
	}
	if q.Name != "a:b" {
		t.Errorf("merged name = %q, want a:b", q.Name)
	}
	if g.cache.NHammingMerged != 1 {
		t.Errorf("NHammingMerged = %d, want 1", g.cache.NHammingMerged)
	}
}
