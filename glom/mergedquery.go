// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/track"
)

// A mergedQuery describes a candidate merge of two clusters before it
// has been accepted: its canonical name, its combined sequences and
// metadata, and the two parent keys it would replace.
type mergedQuery struct {
	Name         string
	Seqs         []track.Sequence
	Members      []string
	KBounds      kbounds.KBounds
	OnlyGenes    []string
	MeanMuteFreq float64
	ParentA      string
	ParentB      string
}

// mergeSeqVectors concatenates the member sequences of keyA and keyB,
// rejecting a pair that shares a member name (which would otherwise
// silently drop a sequence from the resulting cluster).
func (g *Glomerator) mergeSeqVectors(keyA, keyB string) ([]track.Sequence, error) {
	a, b := g.meta[keyA], g.meta[keyB]
	merged := make([]track.Sequence, 0, len(a.Seqs)+len(b.Seqs))
	merged = append(merged, a.Seqs...)
	merged = append(merged, b.Seqs...)

	seen := make(map[string]bool, len(merged))
	for _, s := range merged {
		if seen[s.Name()] {
			return nil, dataErrorf("mergeSeqVectors", "tried to add sequence %q twice", s.Name())
		}
		seen[s.Name()] = true
	}
	return merged, nil
}

// getMergedQuery builds the candidate merge of keyA and keyB: its
// canonical name (via the cluster-key interner, not a raw join of the
// two opaque parent keys), its combined sequences, the logical-OR of
// the parents' kbounds, their combined restricted gene list, and the
// size-weighted average of their mutation frequencies.
func (g *Glomerator) getMergedQuery(keyA, keyB string) (mergedQuery, error) {
	a, b := g.meta[keyA], g.meta[keyB]

	seqs, err := g.mergeSeqVectors(keyA, keyB)
	if err != nil {
		return mergedQuery{}, err
	}

	members := make([]string, 0, len(a.Members)+len(b.Members))
	members = append(members, a.Members...)
	members = append(members, b.Members...)
	name := g.interner.Merge(a.Members, b.Members)

	onlyGenes := make([]string, 0, len(a.OnlyGenes)+len(b.OnlyGenes))
	onlyGenes = append(onlyGenes, a.OnlyGenes...)
	onlyGenes = append(onlyGenes, b.OnlyGenes...) // duplicates are harmless

	na, nb := float64(len(a.Seqs)), float64(len(b.Seqs))
	meanMuteFreq := stat.Mean([]float64{a.MeanMuteFreq, b.MeanMuteFreq}, []float64{na, nb})

	return mergedQuery{
		Name:         name,
		Seqs:         seqs,
		Members:      members,
		KBounds:      a.KBounds.LogicalOr(b.KBounds),
		OnlyGenes:    onlyGenes,
		MeanMuteFreq: meanMuteFreq,
		ParentA:      keyA,
		ParentB:      keyB,
	}, nil
}
