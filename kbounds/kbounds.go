// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kbounds describes the rectangular region over the two integer HMM
// boundary parameters (k_v and k_d) that bound a rearrangement search.
package kbounds

// A KSet is a pair of HMM boundary parameters: the number of germline V
// bases and D bases assumed present in a rearrangement.
type KSet struct {
	KV, KD int
}

// A KBounds is a half-open rectangle [Min.KV, Max.KV) x [Min.KD, Max.KD)
// over KSet space, constraining the HMM's search.
type KBounds struct {
	Min, Max KSet
}

// New returns the rectangle [min, max).
func New(min, max KSet) KBounds {
	return KBounds{Min: min, Max: max}
}

// LogicalOr returns the component-wise min/max hull of a and b:
// [min(a.Min.KV, b.Min.KV), max(a.Max.KV, b.Max.KV)) x
// [min(a.Min.KD, b.Min.KD), max(a.Max.KD, b.Max.KD)).
func (a KBounds) LogicalOr(b KBounds) KBounds {
	return KBounds{
		Min: KSet{
			KV: min(a.Min.KV, b.Min.KV),
			KD: min(a.Min.KD, b.Min.KD),
		},
		Max: KSet{
			KV: max(a.Max.KV, b.Max.KV),
			KD: max(a.Max.KD, b.Max.KD),
		},
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
