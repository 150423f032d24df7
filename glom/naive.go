// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"github.com/kortschak/glom/hmm"
	"github.com/kortschak/glom/track"
)

// GetNaiveSeq returns the inferred naive (unmutated ancestor) sequence
// for the cluster named key, running the Viterbi collaborator's
// boundary-refinement loop if it has not already been computed or
// loaded from the cache file.
//
// The widened kbounds from a successful run IS written back to the
// cluster's metadata, unlike GetLogProb's forward call: a cluster's
// Viterbi kbounds are reused by every later caller that needs its naive
// sequence, so the wider window is worth keeping.
func (g *Glomerator) GetNaiveSeq(key string) (track.Sequence, error) {
	if seq, cyst, ok := g.cache.NaiveSeq(key); ok {
		return track.NewSequence(g.track, key, seq, cyst), nil
	}

	m, ok := g.meta[key]
	if !ok {
		return track.Sequence{}, dataErrorf("GetNaiveSeq", "no metadata installed for cluster %q", key)
	}

	kb := m.KBounds
	var result hmm.ViterbiResult
	for {
		var err error
		result, err = g.runner.RunViterbi(m.Seqs, kb, m.OnlyGenes, m.MeanMuteFreq)
		if err != nil {
			return track.Sequence{}, ioErrorf("GetNaiveSeq", "viterbi run for %q: %w", key, err)
		}
		kb = result.BetterKBounds
		if !result.BoundaryError || result.CouldNotExpand {
			break
		}
	}
	m.KBounds = kb
	g.meta[key] = m

	if len(result.Events) < 1 {
		return track.Sequence{}, dataErrorf("GetNaiveSeq", "no events for %q", key)
	}

	event := result.Events[0]
	g.cache.SetNaiveSeq(key, event.NaiveSeq, event.CystPosition)
	if result.BoundaryError {
		g.appendError(key, ":boundary")
	}
	return track.NewSequence(g.track, key, event.NaiveSeq, event.CystPosition), nil
}

func (g *Glomerator) appendError(key, tag string) {
	msg, _ := g.cache.Error(key)
	g.cache.SetError(key, msg+tag)
}
