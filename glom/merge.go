// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glom

import "github.com/kortschak/glom/partition"

// Merge performs one agglomerative step on path: it chooses the best
// (or, under SMC, a randomly sampled) pair of clusters to merge,
// installs the merged cluster's metadata if this is the first particle
// to reach it, and appends the resulting partition to the path. It is a
// no-op if path is already finished.
func (g *Glomerator) Merge(path *partition.ClusterPath) error {
	if path.Finished() {
		return nil
	}

	qmerged, _, finished, err := g.chooseMerge(path.Current())
	if err != nil {
		return err
	}
	if finished {
		path.Finish()
		return nil
	}

	if _, ok := g.meta[qmerged.Name]; !ok {
		g.meta[qmerged.Name] = clusterMeta{
			Members:      qmerged.Members,
			Seqs:         qmerged.Seqs,
			KBounds:      qmerged.KBounds,
			OnlyGenes:    qmerged.OnlyGenes,
			MeanMuteFreq: qmerged.MeanMuteFreq,
		}
		if _, err := g.GetNaiveSeq(qmerged.Name); err != nil {
			return err
		}
	}

	next := path.Current().WithMerge(qmerged.ParentA, qmerged.ParentB, qmerged.Name)
	logProb, err := g.LogProbOfPartition(next)
	if err != nil {
		return err
	}
	path.AddPartition(next, logProb, path.LogWeights()[len(path.LogWeights())-1], g.Config.MaxLogprobDrop)
	return nil
}
