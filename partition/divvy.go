// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"math"
)

// NaiveSeqGlomerate groups names into nClusters roughly equal-size
// clusters using only the pairwise naive-Hamming-fraction shortcut
// hfrac(a, b), never calling the HMM collaborator. It is the cheap
// "divvy" mode used to pre-bucket a large input before the full
// likelihood-ratio glomeration runs on each bucket separately.
func NaiveSeqGlomerate(names []string, nClusters int, hfrac func(a, b string) float64) [][]string {
	clusters := make([][]string, len(names))
	for i, n := range names {
		clusters[i] = []string{n}
	}

	maxPerCluster := int(math.Ceil(float64(len(names)) / float64(nClusters)))

	mergeWhateverYouGot := false
	for len(clusters) > nClusters {
		a, b, ok := closestPair(clusters, maxPerCluster, mergeWhateverYouGot, hfrac)
		if !ok {
			mergeWhateverYouGot = true
			continue
		}
		clusters = mergeAt(clusters, a, b)
	}

	clusters = homogenize(clusters)
	return clusters
}

// closestPair returns the indices of the two clusters with the smallest
// minimum pairwise Hamming fraction between any of their members,
// skipping pairs whose merge would exceed maxPerCluster unless
// mergeWhateverYouGot allows it. ok is false if every pair was skipped.
func closestPair(clusters [][]string, maxPerCluster int, mergeWhateverYouGot bool, hfrac func(a, b string) float64) (i, j int, ok bool) {
	smallest := math.Inf(1)
	for a := 0; a < len(clusters); a++ {
		for b := a + 1; b < len(clusters); b++ {
			if !mergeWhateverYouGot && len(clusters[a])+len(clusters[b]) > maxPerCluster {
				continue
			}
			min := math.Inf(1)
			for _, qa := range clusters[a] {
				for _, qb := range clusters[b] {
					if f := hfrac(qa, qb); f < min {
						min = f
					}
				}
			}
			if min < smallest {
				smallest = min
				i, j, ok = a, b, true
			}
		}
	}
	return i, j, ok
}

// mergeAt merges clusters[i] and clusters[j] (i < j) into one cluster
// appended in place of clusters[i], removing clusters[j].
func mergeAt(clusters [][]string, i, j int) [][]string {
	merged := make([]string, 0, len(clusters[i])+len(clusters[j]))
	merged = append(merged, clusters[i]...)
	merged = append(merged, clusters[j]...)

	next := make([][]string, 0, len(clusters)-1)
	for k, c := range clusters {
		switch k {
		case i:
			next = append(next, merged)
		case j:
			// dropped
		default:
			next = append(next, c)
		}
	}
	return next
}

// homogenize repeatedly moves members from the largest cluster into the
// smallest while the largest is more than 1.1x the smallest and their
// sizes differ by more than 3, capping the number of passes at the
// cluster count to bound pathological oscillation.
func homogenize(clusters [][]string) [][]string {
	tries := 0
	for {
		smallIdx, bigIdx := smallBig(clusters)
		small, big := clusters[smallIdx], clusters[bigIdx]
		if !(float64(len(big))/float64(len(small)) > 1.1 && len(big)-len(small) > 3) {
			break
		}
		target := (len(small) + len(big) + 1) / 2 // ceil((|small|+|big|)/2)
		moved := append([]string(nil), big[target:]...)
		clusters[bigIdx] = append([]string(nil), big[:target]...)
		clusters[smallIdx] = append(append([]string(nil), small...), moved...)

		tries++
		if tries >= len(clusters) {
			break
		}
	}
	return clusters
}

// smallBig returns the indices of the smallest and largest clusters.
func smallBig(clusters [][]string) (small, big int) {
	for i, c := range clusters {
		if clusters[small] == nil || len(c) < len(clusters[small]) {
			small = i
		}
		if clusters[big] == nil || len(c) > len(clusters[big]) {
			big = i
		}
	}
	return small, big
}
