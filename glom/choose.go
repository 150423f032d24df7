// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"log"
	"math"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/kortschak/glom/partition"
)

type potentialMerge struct {
	LRatio float64
	Query  mergedQuery
}

// chooseMerge scans every pair of clusters in the current partition and
// either returns the one Hamming-shortcut merge with the smallest
// naive-Hamming fraction (if any cleared hammingFractionBoundLo, with
// chosenLratio -Inf), or an HMM-scored merge: with at most one SMC
// particle the best by log-likelihood ratio, reported as chosenLratio;
// with more, one sampled with weight exp(ratio), for which chosenLratio
// is the merged cluster's absolute log-probability rather than its
// ratio. finished reports that no acceptable pair exists and the calling
// path should stop.
func (g *Glomerator) chooseMerge(p *partition.Partition) (q mergedQuery, chosenLratio float64, finished bool, err error) {
	keys := p.Keys()

	maxLogProb := math.Inf(-1)
	minHammingFraction := math.Inf(1)
	var minHammingMerge mergedQuery
	haveHammingMerge := false

	var potential []potentialMerge
	imax := -1
	nTotalPairs, nSkippedHamming, nInfFactors := 0, 0, 0

	for ia := 0; ia < len(keys); ia++ {
		for ib := ia + 1; ib < len(keys); ib++ {
			keyA, keyB := keys[ia], keys[ib]
			nTotalPairs++

			hfrac, err := g.NaiveHammingFraction(keyA, keyB)
			if err != nil {
				return mergedQuery{}, 0, false, err
			}
			if hfrac > g.Config.HammingFractionBoundHi {
				nSkippedHamming++
				continue
			}

			qmerged, err := g.getMergedQuery(keyA, keyB)
			if err != nil {
				return mergedQuery{}, 0, false, err
			}

			if g.Config.HammingFractionBoundLo > 0.0 && hfrac < g.Config.HammingFractionBoundLo {
				if hfrac < minHammingFraction {
					minHammingFraction = hfrac
					minHammingMerge = qmerged
					haveHammingMerge = true
				}
				continue
			}
			if haveHammingMerge { // we'll do the hamming merges first, before any HMM work
				continue
			}

			metaA, metaB := g.meta[keyA], g.meta[keyB]
			lpA, err := g.GetLogProb(keyA, metaA.Seqs, qmerged.KBounds, qmerged.OnlyGenes, metaA.MeanMuteFreq)
			if err != nil {
				return mergedQuery{}, 0, false, err
			}
			lpB, err := g.GetLogProb(keyB, metaB.Seqs, qmerged.KBounds, qmerged.OnlyGenes, metaB.MeanMuteFreq)
			if err != nil {
				return mergedQuery{}, 0, false, err
			}
			lpMerged, err := g.GetLogProb(qmerged.Name, qmerged.Seqs, qmerged.KBounds, qmerged.OnlyGenes, qmerged.MeanMuteFreq)
			if err != nil {
				return mergedQuery{}, 0, false, err
			}
			lratio := lpMerged - lpA - lpB

			if minRatio, ok := g.Config.MinLogRatioFor(len(qmerged.Seqs)); ok && lratio < minRatio {
				continue
			}

			potential = append(potential, potentialMerge{LRatio: lratio, Query: qmerged})
			if math.IsInf(lratio, -1) {
				nInfFactors++
			}
			if lratio > maxLogProb {
				maxLogProb = lratio
				imax = len(potential) - 1
			}
		}
	}

	if haveHammingMerge {
		g.cache.NHammingMerged++
		return minHammingMerge, math.Inf(-1), false, nil
	}

	if math.IsInf(maxLogProb, -1) {
		switch {
		case len(keys) == 1:
			log.Print("glom: stopping with partition of size one")
		case nSkippedHamming == nTotalPairs:
			log.Printf("glom: stopping with all %d/%d hamming distances above %v", nSkippedHamming, nTotalPairs, g.Config.HammingFractionBoundHi)
		case nInfFactors == nTotalPairs:
			log.Printf("glom: stopping with all %d/%d likelihood ratios at -inf", nInfFactors, nTotalPairs)
		default:
			log.Printf("glom: stopping with no acceptable pair (ham skip %d, -inf %d, total %d)", nSkippedHamming, nInfFactors, nTotalPairs)
		}
		return mergedQuery{}, 0, true, nil
	}

	if g.Config.SMCParticles <= 1 {
		best := potential[imax]
		return best.Query, best.LRatio, false, nil
	}

	chosen := g.chooseRandomMerge(potential)
	// This intentionally reports the merged cluster's absolute
	// log-probability, not its log-likelihood ratio against its
	// parents - the quantity the single-particle branch returns. It preserves a
	// quirk of the routine this is distilled from rather than silently
	// changing what chosen_lratio means for SMC runs.
	lpMerged, _ := g.cache.PeekLogProb(chosen.Query.Name)
	return chosen.Query, lpMerged, false, nil
}

// chooseRandomMerge draws one of the candidate merges with probability
// proportional to the exponential of its log-likelihood ratio.
func (g *Glomerator) chooseRandomMerge(potential []potentialMerge) potentialMerge {
	weights := make([]float64, len(potential))
	for i, p := range potential {
		weights[i] = math.Exp(p.LRatio)
	}
	idx := sampleuv.WeightedSample(g.rng, weights)
	return potential[idx]
}
