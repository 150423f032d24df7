// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

// A ClusterPath is the append-only trajectory of partitions visited by
// one particle of the agglomerative search, together with each
// partition's log-probability and log-weight. It transitions to
// Finished either when no acceptable merge remains or when a newly
// appended partition's log-probability has dropped too far below the
// running maximum seen so far on this path.
type ClusterPath struct {
	// PathIndex identifies this path among its siblings; InitialPathIndex
	// names the path it was replicated from when an SMC particle count
	// greater than one required more paths than distinct initial
	// partitions were available.
	PathIndex        int
	InitialPathIndex int

	partitions []*Partition
	logProbs   []float64
	logWeights []float64

	runningMax float64
	finished   bool
}

// NewClusterPath returns a path seeded with an initial partition.
func NewClusterPath(pathIndex, initialPathIndex int, initial *Partition, logProb, logWeight float64) *ClusterPath {
	return &ClusterPath{
		PathIndex:        pathIndex,
		InitialPathIndex: initialPathIndex,
		partitions:       []*Partition{initial},
		logProbs:         []float64{logProb},
		logWeights:       []float64{logWeight},
		runningMax:       logProb,
	}
}

// Finished reports whether the path has stopped accepting new
// partitions.
func (c *ClusterPath) Finished() bool { return c.finished }

// Finish marks the path as finished with no further partitions to
// append, for the "no acceptable pair found" termination.
func (c *ClusterPath) Finish() { c.finished = true }

// Current returns the most recently appended partition.
func (c *ClusterPath) Current() *Partition {
	return c.partitions[len(c.partitions)-1]
}

// CurrentLogProb returns the log-probability of the most recently
// appended partition.
func (c *ClusterPath) CurrentLogProb() float64 {
	return c.logProbs[len(c.logProbs)-1]
}

// Partitions, LogProbs and LogWeights return the path's parallel arrays
// of visited partitions.
func (c *ClusterPath) Partitions() []*Partition { return c.partitions }
func (c *ClusterPath) LogProbs() []float64      { return c.logProbs }
func (c *ClusterPath) LogWeights() []float64    { return c.logWeights }

// AddPartition appends p to the path with the given log-probability and
// log-weight. If running_max - logProb exceeds maxDrop, the path is
// marked Finished after the append: the collapsed partition is still
// recorded, but no further merges are attempted on this path.
func (c *ClusterPath) AddPartition(p *Partition, logProb, logWeight, maxDrop float64) {
	if c.finished {
		return
	}
	c.partitions = append(c.partitions, p)
	c.logProbs = append(c.logProbs, logProb)
	c.logWeights = append(c.logWeights, logWeight)

	if logProb > c.runningMax {
		c.runningMax = logProb
	}
	if c.runningMax-logProb > maxDrop {
		c.finished = true
	}
}
