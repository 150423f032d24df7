// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"github.com/kortschak/glom/partition"
	"github.com/kortschak/glom/track"
)

// HammingFraction returns the Hamming fraction between two naive
// sequences, memoized under their joint key. The cache is indexed by the
// joint key rather than the pair's identity, so two different pairs whose
// members make up the same name set (for example "a:b" with "c" and "a"
// with "b:c") share one entry, and the later pair is answered with the
// fraction computed for the earlier one.
func (g *Glomerator) HammingFraction(a, b track.Sequence) (float64, error) {
	joint := partition.JoinNames([]string{a.Name(), b.Name()})
	if v, ok := g.cache.Hfrac(joint); ok {
		return v, nil
	}
	v, err := track.HammingFraction(a, b)
	if err != nil {
		return 0, dataErrorf("HammingFraction", "%w", err)
	}
	g.cache.SetHfrac(joint, v)
	return v, nil
}

// NaiveHammingFraction returns the memoized Hamming fraction between the
// naive sequences of the clusters named keyA and keyB, inferring either
// naive sequence first if it isn't already known.
func (g *Glomerator) NaiveHammingFraction(keyA, keyB string) (float64, error) {
	var computeErr error
	v, err := g.cache.NaiveHammingFraction(keyA, keyB, func() (float64, error) {
		seqA, err := g.GetNaiveSeq(keyA)
		if err != nil {
			computeErr = err
			return 0, err
		}
		seqB, err := g.GetNaiveSeq(keyB)
		if err != nil {
			computeErr = err
			return 0, err
		}
		return g.HammingFraction(seqA, seqB)
	})
	if computeErr != nil {
		return 0, computeErr
	}
	return v, err
}
