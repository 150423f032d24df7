// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import (
	"math/rand"

	"github.com/kortschak/glom/cache"
	"github.com/kortschak/glom/hmm"
	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/partition"
	"github.com/kortschak/glom/track"
)

// clusterMeta is the per-cluster-key bookkeeping the engine carries
// through GetNaiveSeq, GetLogProb, and GetMergedQuery: its member
// sequences, the kbounds search window used to seed its HMM calls, its
// restricted gene list, and its mean mutation frequency.
type clusterMeta struct {
	Members      []string
	Seqs         []track.Sequence
	KBounds      kbounds.KBounds
	OnlyGenes    []string
	MeanMuteFreq float64
}

// A Glomerator holds the memoizing cache, the engine's HMM collaborator,
// and every cluster's metadata, and implements the agglomerative merge
// step.
type Glomerator struct {
	Config Config

	track    *track.Track
	runner   hmm.Runner
	cache    *cache.Store
	interner *partition.Interner
	rng      *rand.Rand

	meta map[string]clusterMeta
}

// New returns a Glomerator ready to cluster the sequences named in seed.
// rng must not be the global RNG: determinism given a fixed seed is a
// hard requirement of the engine's execution model.
func New(cfg Config, t *track.Track, runner hmm.Runner, store *cache.Store, rng *rand.Rand) *Glomerator {
	return &Glomerator{
		Config:   cfg,
		track:    t,
		runner:   runner,
		cache:    store,
		interner: partition.NewInterner(),
		rng:      rng,
		meta:     make(map[string]clusterMeta),
	}
}

// Seed installs the metadata for a singleton cluster under its member's
// own name, as read from the initial partition input. It is a no-op if
// the cluster is already known, mirroring the original's tolerance of a
// name appearing in more than one initial particle.
func (g *Glomerator) Seed(name string, seq track.Sequence, kb kbounds.KBounds, onlyGenes []string, meanMuteFreq float64) {
	if _, ok := g.meta[name]; ok {
		return
	}
	g.meta[name] = clusterMeta{
		Members:      []string{name},
		Seqs:         []track.Sequence{seq},
		KBounds:      kb,
		OnlyGenes:    onlyGenes,
		MeanMuteFreq: meanMuteFreq,
	}
	g.interner.Key([]string{name})
}

// Members returns the leaf member names of the cluster named by key.
func (g *Glomerator) Members(key string) []string {
	return g.meta[key].Members
}
