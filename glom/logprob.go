// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"math"

	"github.com/kortschak/glom/hmm"
	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/partition"
	"github.com/kortschak/glom/track"
)

// GetLogProb returns the total forward log-probability for the cluster
// named key, running the forward collaborator's boundary-refinement
// loop if it has not already been computed or loaded from the cache
// file. kb, onlyGenes and meanMuteFreq are the (possibly merge-time,
// OR'd) parameters to run with - they need not equal the cluster's own
// stored metadata, since the denominator calculation in ChooseMerge
// reuses the merged query's widened gene list for both parents.
//
// Unlike GetNaiveSeq, a kbounds widening discovered here is not written
// back to the cluster's metadata: it's considered cheap enough to redo
// next time this cluster's forward probability is needed from scratch.
func (g *Glomerator) GetLogProb(key string, seqs []track.Sequence, kb kbounds.KBounds, onlyGenes []string, meanMuteFreq float64) (float64, error) {
	if lp, ok := g.cache.LogProb(key); ok {
		return lp, nil
	}

	var result hmm.ForwardResult
	for {
		var err error
		result, err = g.runner.RunForward(seqs, kb, onlyGenes, meanMuteFreq)
		if err != nil {
			return 0, ioErrorf("GetLogProb", "forward run for %q: %w", key, err)
		}
		kb = result.BetterKBounds
		if !result.BoundaryError || result.CouldNotExpand {
			break
		}
	}

	g.cache.SetLogProb(key, result.TotalScore)
	if result.BoundaryError && !result.CouldNotExpand {
		g.appendError(key, ":boundary")
	}
	return result.TotalScore, nil
}

// LogProbOfPartition sums the log-probability of every cluster in p,
// propagating negative infinity if the engine is configured with NoFwd
// (pure naive-hamming glomeration) or if any cluster's own log-prob is
// -Inf.
func (g *Glomerator) LogProbOfPartition(p *partition.Partition) (float64, error) {
	if g.Config.NoFwd {
		return math.Inf(-1), nil
	}

	total := 0.0
	for _, key := range p.Keys() {
		m, ok := g.meta[key]
		if !ok {
			return 0, dataErrorf("LogProbOfPartition", "no metadata installed for cluster %q", key)
		}
		lp, err := g.GetLogProb(key, m.Seqs, m.KBounds, m.OnlyGenes, m.MeanMuteFreq)
		if err != nil {
			return 0, err
		}
		total = addWithMinusInfinities(total, lp)
	}
	return total, nil
}

// addWithMinusInfinities adds a and b in log-space, treating -Inf as an
// absorbing element: the sum is -Inf whenever either operand is -Inf,
// including -Inf + +Inf, which IEEE addition would make NaN.
func addWithMinusInfinities(a, b float64) float64 {
	if math.IsInf(a, -1) || math.IsInf(b, -1) {
		return math.Inf(-1)
	}
	return a + b
}
