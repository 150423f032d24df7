// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"encoding/binary"
	"math"

	"modernc.org/kv"
)

// hammingTable is the on-disk memo of NaiveHammingFraction results, keyed
// under both orderings of a name pair so a lookup for (a, b) hits
// regardless of which order the pair is later asked for in. It is backed
// by a B-tree rather than a map since the number of distinct pairs ever
// compared is not bounded by the number of live clusters.
type hammingTable struct {
	db *kv.DB
}

func newHammingTable(path string) (*hammingTable, error) {
	db, err := kv.Create(path, &kv.Options{})
	if err != nil {
		return nil, err
	}
	return &hammingTable{db: db}, nil
}

func (h *hammingTable) close() error {
	return h.db.Close()
}

func (h *hammingTable) get(keyA, keyB string) (float64, bool, error) {
	v, err := h.db.Get(nil, pairKey(keyA, keyB))
	if err != nil {
		return 0, false, err
	}
	if v == nil {
		return 0, false, nil
	}
	return math.Float64frombits(binary.BigEndian.Uint64(v)), true, nil
}

func (h *hammingTable) set(keyA, keyB string, val float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(val))
	if err := h.db.Set(pairKey(keyA, keyB), buf[:]); err != nil {
		return err
	}
	return h.db.Set(pairKey(keyB, keyA), buf[:])
}

func pairKey(a, b string) []byte {
	buf := make([]byte, 0, len(a)+len(b)+1)
	buf = append(buf, a...)
	buf = append(buf, '-')
	buf = append(buf, b...)
	return buf
}
