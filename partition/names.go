// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package partition implements cluster-key canonicalization, the
// ordered partition set the glomeration engine merges over, the
// append-only trajectory of partitions visited along a path, and the
// cheaper Hamming-only "divvy" clustering mode.
package partition

import (
	"sort"
	"strings"
)

// JoinNames returns the canonical cluster key for a set of member names:
// the names sorted lexically and joined with ':'. Two clusters with the
// same membership always produce the same key regardless of the order
// their names were merged in.
func JoinNames(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ":")
}

// An Interner maps a cluster's full, fully-sorted member-name set to a
// single canonical key string, so that two clusters with identical
// membership always compare equal as map keys even when they were
// reached by merging members in different orders across particles.
//
// This closes a bug the glomeration loop this engine is distilled from
// is exposed to: JoinNames on a *merge's two parent keys* sorts the two
// keys as opaque strings, not the flattened set of member names inside
// them, so "b:a" merged with "c" and "a:b" merged with "c" could in
// principle diverge. Interning against the flattened, fully-sorted name
// set instead of the parent-key strings removes the divergence at the
// source: see JoinNames via Key for the merge-time canonicalization.
type Interner struct {
	keys map[string]string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{keys: make(map[string]string)}
}

// Key returns the canonical key for the given member names, interning it
// if this is the first time this exact (sorted) name set has been seen.
func (n *Interner) Key(names []string) string {
	key := JoinNames(names)
	if existing, ok := n.keys[key]; ok {
		return existing
	}
	n.keys[key] = key
	return key
}

// Merge returns the canonical key for the union of the member names
// behind keyA and keyB, by flattening both back to their member-name
// sets (via membership, supplied by the caller) rather than
// concatenating the two opaque keys.
func (n *Interner) Merge(membersA, membersB []string) string {
	union := make([]string, 0, len(membersA)+len(membersB))
	union = append(union, membersA...)
	union = append(union, membersB...)
	return n.Key(union)
}
