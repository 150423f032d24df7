// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache memoizes the results of the engine's two collaborator
// calls - forward log-probability and Viterbi naive-sequence inference -
// together with the Hamming-fraction shortcuts computed from those naive
// sequences, so that a merge considered more than once during a run (or
// across runs, via the CSV cache file) is never recomputed.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"modernc.org/kv"

	"github.com/kortschak/glom/track"
)

// A Store holds the four memoization tables the engine consults before
// calling out to its HMM collaborator or recomputing a Hamming fraction:
//
//   - logProbs: cluster key -> total forward log-probability
//   - naiveSeqs: cluster key -> inferred naive sequence and cyst position
//   - naiveHfracs: joint pair key -> Hamming fraction between two naive
//     sequences (see track.HammingFraction)
//   - hamming: ordered pair key "a-b" -> the same fraction, memoized a
//     second time under the unsorted pair so repeated NaiveHammingFraction
//     lookups in either order are free
//
// The first three mirror the unordered_map fields of the source this
// engine was distilled from; they round-trip through the CSV cache file
// and stay small enough to live as plain Go maps. The fourth is not
// persisted externally: it grows with the number of distinct pairs ever
// compared rather than the number of live clusters, so it is kept in an
// on-disk B-tree instead of growing the process's live heap without
// bound.
type Store struct {
	track *track.Track

	logProbs  map[string]float64
	naiveSeqs map[string]naiveSeqEntry
	hfracs    map[string]float64

	// seenFromDisk records which keys were loaded from the cache file
	// rather than computed this run, so a write-out can tell freshly
	// computed entries from ones it only needs to echo back.
	seenLogProbs  map[string]bool
	seenNaiveSeqs map[string]bool
	seenHfracs    map[string]bool

	errs map[string]string

	hamming *hammingTable

	NForwardCached     int
	NForwardCalculated int
	NViterbiCached     int
	NViterbiCalculated int
	NHfracCalculated   int
	NHammingMerged     int
}

type naiveSeqEntry struct {
	seq  string
	cyst int
}

// Open creates a Store backed by a scratch directory dir for the
// pairwise Hamming-fraction B-tree. dir is created if it does not exist.
func Open(t *track.Track, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cache: creating scratch directory: %w", err)
	}
	h, err := newHammingTable(filepath.Join(dir, "naive-hamming.db"))
	if err != nil {
		return nil, fmt.Errorf("cache: opening hamming table: %w", err)
	}
	return &Store{
		track:         t,
		logProbs:      make(map[string]float64),
		naiveSeqs:     make(map[string]naiveSeqEntry),
		hfracs:        make(map[string]float64),
		seenLogProbs:  make(map[string]bool),
		seenNaiveSeqs: make(map[string]bool),
		seenHfracs:    make(map[string]bool),
		errs:          make(map[string]string),
		hamming:       h,
	}, nil
}

// Close releases the on-disk resources held by the Store. The in-memory
// tables are unaffected; call Write first to persist them.
func (s *Store) Close() error {
	return s.hamming.close()
}

// LogProb returns the cached total log-probability for key, and whether
// it was present.
func (s *Store) LogProb(key string) (float64, bool) {
	v, ok := s.logProbs[key]
	if ok {
		s.NForwardCached++
	}
	return v, ok
}

// PeekLogProb returns the cached total log-probability for key without
// counting the read as a cache hit. It exists for bookkeeping reads that
// look up a value already known to be present, rather than a collaborator
// call site deciding whether it needs to ask the HMM for one.
func (s *Store) PeekLogProb(key string) (float64, bool) {
	v, ok := s.logProbs[key]
	return v, ok
}

// SetLogProb records a freshly calculated log-probability for key.
func (s *Store) SetLogProb(key string, logProb float64) {
	s.logProbs[key] = logProb
	s.NForwardCalculated++
}

// loadLogProb installs a log-probability read from the cache file,
// marking it as seen from disk rather than calculated this run.
func (s *Store) loadLogProb(key string, logProb float64) {
	s.logProbs[key] = logProb
	s.seenLogProbs[key] = true
}

// NaiveSeq returns the cached naive sequence and cyst position for key.
func (s *Store) NaiveSeq(key string) (seq string, cyst int, ok bool) {
	e, ok := s.naiveSeqs[key]
	if ok {
		s.NViterbiCached++
	}
	return e.seq, e.cyst, ok
}

// SetNaiveSeq records a freshly inferred naive sequence for key.
func (s *Store) SetNaiveSeq(key, seq string, cyst int) {
	s.naiveSeqs[key] = naiveSeqEntry{seq: seq, cyst: cyst}
	s.NViterbiCalculated++
}

func (s *Store) loadNaiveSeq(key, seq string, cyst int) {
	s.naiveSeqs[key] = naiveSeqEntry{seq: seq, cyst: cyst}
	s.seenNaiveSeqs[key] = true
}

// Hfrac returns the cached Hamming fraction for the joint key of a pair
// of naive sequences (see partition.JoinNames).
func (s *Store) Hfrac(jointKey string) (float64, bool) {
	v, ok := s.hfracs[jointKey]
	return v, ok
}

// SetHfrac records a freshly computed Hamming fraction under jointKey.
func (s *Store) SetHfrac(jointKey string, hfrac float64) {
	s.hfracs[jointKey] = hfrac
	s.NHfracCalculated++
}

func (s *Store) loadHfrac(jointKey string, hfrac float64) {
	s.hfracs[jointKey] = hfrac
	s.seenHfracs[jointKey] = true
}

// NaiveHammingFraction returns the memoized Hamming fraction between the
// naive sequences of clusters named by keyA and keyB, computing and
// caching it via compute if it is not already known under either
// ordering of the pair.
func (s *Store) NaiveHammingFraction(keyA, keyB string, compute func() (float64, error)) (float64, error) {
	if v, ok, err := s.hamming.get(keyA, keyB); err != nil {
		return 0, fmt.Errorf("cache: reading hamming table: %w", err)
	} else if ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return 0, err
	}
	if err := s.hamming.set(keyA, keyB, v); err != nil {
		return 0, fmt.Errorf("cache: writing hamming table: %w", err)
	}
	return v, nil
}

// SetError tags key with an error string carried forward into the CSV
// cache file's errors column. An empty msg clears the tag.
func (s *Store) SetError(key, msg string) {
	if msg == "" {
		delete(s.errs, key)
		return
	}
	s.errs[key] = msg
}

// Error returns the error tag recorded for key, if any.
func (s *Store) Error(key string) (string, bool) {
	msg, ok := s.errs[key]
	return msg, ok
}
