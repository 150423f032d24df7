// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"math"
	"testing"
)

// hammingFixture returns a symmetric Hamming-fraction lookup over 10
// singleton names where "0" and "1" are the closest pair.
func hammingFixture() func(a, b string) float64 {
	dist := map[[2]string]float64{
		{"0", "1"}: 0.01,
	}
	return func(a, b string) float64 {
		if a == b {
			return 0
		}
		if v, ok := dist[[2]string{a, b}]; ok {
			return v
		}
		if v, ok := dist[[2]string{b, a}]; ok {
			return v
		}
		return 0.5
	}
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('0' + i))
	}
	return out
}

func TestNaiveSeqGlomerateBalancesSizes(t *testing.T) {
	clusters := NaiveSeqGlomerate(names(10), 3, hammingFixture())

	if len(clusters) != 3 {
		t.Fatalf("got %d clusters, want 3", len(clusters))
	}

	total := 0
	min, max := math.MaxInt32, 0
	for _, c := range clusters {
		total += len(c)
		if len(c) < min {
			min = len(c)
		}
		if len(c) > max {
			max = len(c)
		}
	}
	if total != 10 {
		t.Errorf("clusters cover %d names, want 10", total)
	}
	if max-min > 1 {
		t.Errorf("cluster sizes differ by more than 1: min=%d max=%d (%v)", min, max, clusters)
	}
}

func TestNaiveSeqGlomerateGroupsClosestPairTogether(t *testing.T) {
	clusters := NaiveSeqGlomerate(names(10), 3, hammingFixture())

	found := false
	for _, c := range clusters {
		has0, has1 := false, false
		for _, n := range c {
			if n == "0" {
				has0 = true
			}
			if n == "1" {
				has1 = true
			}
		}
		if has0 && has1 {
			found = true
		}
	}
	if !found {
		t.Errorf("closest pair (0, 1) ended up in different clusters: %v", clusters)
	}
}
