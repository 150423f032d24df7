// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

// A RatioThreshold gates merge acceptance on cluster size: a candidate
// merged cluster with exactly Size member sequences is rejected unless
// its log-likelihood-ratio is at least MinLogRatio. Clusters larger than
// every listed Size are ungated.
type RatioThreshold struct {
	Size        int
	MinLogRatio float64
}

// DefaultRatioThresholds is the size-gated acceptance table used when a
// Config doesn't override it: merges of very small clusters need a much
// stronger likelihood ratio before they're trusted, since a two-sequence
// cluster's forward score is noisy enough that an un-gated argmax would
// chase sampling noise.
var DefaultRatioThresholds = []RatioThreshold{
	{Size: 2, MinLogRatio: 20.0},
	{Size: 3, MinLogRatio: 15.0},
	{Size: 4, MinLogRatio: 10.0},
	{Size: 5, MinLogRatio: 5.0},
}

// MinLogRatioFor returns the minimum log-ratio a merged cluster of the
// given size must clear, and whether any threshold applies to that
// size at all.
func (c Config) MinLogRatioFor(size int) (float64, bool) {
	thresholds := c.RatioThresholds
	if thresholds == nil {
		thresholds = DefaultRatioThresholds
	}
	for _, t := range thresholds {
		if t.Size == size {
			return t.MinLogRatio, true
		}
	}
	return 0, false
}

// A Config collects the options the glomeration engine reads at
// startup, corresponding to the original's command-line flags.
type Config struct {
	// CacheFile is the path for cache read/write; empty disables
	// persistence.
	CacheFile string
	// OutFile is the path the partition trajectory is written to.
	OutFile string

	// SMCParticles is the number of parallel paths. Selection policy
	// switches from single-particle argmax to weighted sampling when
	// this is greater than one.
	SMCParticles int

	// HammingFractionBoundHi is the skip threshold in ChooseMerge: pairs
	// with a naive Hamming fraction above this are never considered.
	HammingFractionBoundHi float64
	// HammingFractionBoundLo is the auto-merge threshold: pairs below
	// this are merged without consulting the HMM. Zero disables the
	// shortcut.
	HammingFractionBoundLo float64

	// MaxLogprobDrop is the early-termination guard: a path finishes
	// once its current logprob has fallen this far below its running
	// maximum.
	MaxLogprobDrop float64

	// NoFwd disables forward-probability calls; LogProbOfPartition
	// returns negative infinity unconditionally, for pure naive-hamming
	// glomeration runs.
	NoFwd bool
	// DontWriteNaiveHfracs omits Hamming rows when persisting the cache
	// file.
	DontWriteNaiveHfracs bool

	// RatioThresholds overrides DefaultRatioThresholds.
	RatioThresholds []RatioThreshold
}
