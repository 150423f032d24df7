// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"github.com/biogo/store/llrb"
)

// clusterKey adapts a canonical cluster key string to llrb.Comparable,
// giving the partition's set representation an iteration order that is
// insertion-independent and equivalent to sorting by key, as the
// ordering guarantees in the resource model require.
type clusterKey string

// Compare implements llrb.Comparable.
func (k clusterKey) Compare(e llrb.Comparable) int {
	o := e.(clusterKey)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

// A Partition is a set of cluster keys, ordered deterministically for
// enumeration regardless of insertion order. It represents one set-
// partition of the input sequence names into clusters.
type Partition struct {
	tree *llrb.Tree
}

// New returns an empty Partition.
func New() *Partition {
	return &Partition{tree: &llrb.Tree{}}
}

// NewFrom returns a Partition containing the given cluster keys.
func NewFrom(keys []string) *Partition {
	p := New()
	for _, k := range keys {
		p.Add(k)
	}
	return p
}

// Add inserts key into the partition. Re-adding an existing key is a
// no-op.
func (p *Partition) Add(key string) {
	p.tree.Insert(clusterKey(key))
}

// Remove deletes key from the partition, if present.
func (p *Partition) Remove(key string) {
	p.tree.Delete(clusterKey(key))
}

// Contains reports whether key is a member of the partition.
func (p *Partition) Contains(key string) bool {
	return p.tree.Get(clusterKey(key)) != nil
}

// Len returns the number of clusters in the partition.
func (p *Partition) Len() int {
	return p.tree.Len()
}

// Keys returns the partition's cluster keys in their deterministic
// iteration order (lexical order of the key strings).
func (p *Partition) Keys() []string {
	keys := make([]string, 0, p.tree.Len())
	p.tree.Do(func(c llrb.Comparable) (done bool) {
		keys = append(keys, string(c.(clusterKey)))
		return false
	})
	return keys
}

// Clone returns an independent copy of the partition.
func (p *Partition) Clone() *Partition {
	return NewFrom(p.Keys())
}

// WithMerge returns a new Partition equal to p with parentA and parentB
// removed and merged added, matching the
// new_partition = current − {parent_a, parent_b} ∪ {merged_key}
// construction used when a merge is accepted.
func (p *Partition) WithMerge(parentA, parentB, merged string) *Partition {
	next := p.Clone()
	next.Remove(parentA)
	next.Remove(parentB)
	next.Add(merged)
	return next
}
