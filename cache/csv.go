// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

var header = []string{"unique_ids", "logprob", "naive_seq", "naive_hfrac", "cyst_position", "errors"}

// cystUnset marks a naive-sequence entry with no known cyst position; it
// is written as an empty cyst_position field.
const cystUnset = -1

// Load reads a cache file written by Write, installing every row's
// populated fields and marking the corresponding keys as seen from disk
// so a later Write does not re-emit them.
func Load(s *Store, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	rec, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("cache: reading header: %w", err)
	}
	if len(rec) < len(header) {
		return fmt.Errorf("cache: malformed header %q", rec)
	}
	for i, want := range header {
		if rec[i] != want {
			return fmt.Errorf("cache: malformed header: column %d is %q, want %q", i, rec[i], want)
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cache: reading row: %w", err)
		}
		if err := loadRow(s, rec); err != nil {
			return err
		}
	}
}

func loadRow(s *Store, rec []string) error {
	key := rec[0]
	if key == "" {
		return fmt.Errorf("cache: row with empty unique_ids")
	}

	if rec[1] != "" {
		v, err := parseFloat(rec[1])
		if err != nil {
			return fmt.Errorf("cache: parsing logprob for %q: %w", key, err)
		}
		s.loadLogProb(key, v)
	}

	if rec[2] != "" || rec[4] != "" {
		cyst := cystUnset
		if rec[4] != "" {
			v, err := strconv.Atoi(rec[4])
			if err != nil {
				return fmt.Errorf("cache: parsing cyst_position for %q: %w", key, err)
			}
			cyst = v
		}
		s.loadNaiveSeq(key, rec[2], cyst)
	}

	if rec[3] != "" {
		v, err := parseFloat(rec[3])
		if err != nil {
			return fmt.Errorf("cache: parsing naive_hfrac for %q: %w", key, err)
		}
		s.loadHfrac(key, v)
	}

	if rec[5] != "" {
		s.errs[key] = rec[5]
	}

	return nil
}

// Write serializes every entry not loaded from disk this run. Log-probs,
// naive sequences and Hamming fractions seen from disk are not re-emitted,
// per the monotone/append-only cache contract; error tags are written for
// every tagged key, including tags that were loaded from disk.
func Write(s *Store, w io.Writer, writeHfracs bool) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = false

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cache: writing header: %w", err)
	}

	keys := make(map[string]bool)
	for k := range s.logProbs {
		if !s.seenLogProbs[k] {
			keys[k] = true
		}
	}
	for k := range s.naiveSeqs {
		if !s.seenNaiveSeqs[k] {
			keys[k] = true
		}
	}
	if writeHfracs {
		for k := range s.hfracs {
			if !s.seenHfracs[k] {
				keys[k] = true
			}
		}
	}
	for k := range s.errs {
		keys[k] = true
	}

	for _, k := range sortedKeys(keys) {
		rec := []string{k, "", "", "", "", ""}
		if v, ok := s.logProbs[k]; ok && !s.seenLogProbs[k] {
			rec[1] = formatFloat(v)
		}
		if e, ok := s.naiveSeqs[k]; ok && !s.seenNaiveSeqs[k] {
			rec[2] = e.seq
			if e.cyst != cystUnset {
				rec[4] = strconv.Itoa(e.cyst)
			}
		}
		if writeHfracs {
			if v, ok := s.hfracs[k]; ok && !s.seenHfracs[k] {
				rec[3] = formatFloat(v)
			}
		}
		if msg, ok := s.errs[k]; ok {
			rec[5] = msg
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("cache: writing row for %q: %w", k, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion order from a map range is non-deterministic; the cache
	// file's row order has no semantic meaning, but a deterministic
	// order makes repeated runs over unchanged state byte-identical.
	sort.Strings(keys)
	return keys
}

// formatFloat prints f as a decimal float with 20 significant digits,
// rendering the infinities and NaN in the lowercase form the cache file
// uses so they round-trip through parseFloat unambiguously.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 20, 64)
}

func parseFloat(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "+inf":
		return strconv.ParseFloat("+Inf", 64)
	case "-inf":
		return strconv.ParseFloat("-Inf", 64)
	case "nan":
		return strconv.ParseFloat("NaN", 64)
	}
	return strconv.ParseFloat(s, 64)
}
