// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"github.com/biogo/biogo/alphabet"
)

// cystUnset marks a Sequence with no known cyst (anchor) position.
const cystUnset = -1

// A Sequence is a single named, digitized read: a name, the digitized
// symbol array used for HMM/Hamming work, the original ungapped string,
// and an optional cyst anchor position produced by Viterbi decoding.
//
// A Sequence is immutable once constructed.
type Sequence struct {
	name   string
	track  *Track
	raw    string
	digits []alphabet.Letter
	cyst   int
}

// NewSequence digitizes raw against track and names the result name.
// cyst is the anchor position, or cystUnset's negative convention (pass
// any value < 0) if the sequence has none.
func NewSequence(track *Track, name, raw string, cyst int) Sequence {
	if cyst < 0 {
		cyst = cystUnset
	}
	return Sequence{
		name:   name,
		track:  track,
		raw:    raw,
		digits: alphabet.BytesToLetters([]byte(raw)),
		cyst:   cyst,
	}
}

// Name returns the sequence's name.
func (s Sequence) Name() string { return s.name }

// Undigitized returns the original, ungapped string the sequence was
// constructed from.
func (s Sequence) Undigitized() string { return s.raw }

// Track returns the alphabet/ambiguous-symbol pair this sequence is
// digitized against.
func (s Sequence) Track() *Track { return s.track }

// Len returns the number of digitized symbols in the sequence.
func (s Sequence) Len() int { return len(s.digits) }

// At returns the digitized symbol at position i.
func (s Sequence) At(i int) alphabet.Letter { return s.digits[i] }

// CystPosition returns the sequence's cyst anchor position, or a negative
// value if none is set.
func (s Sequence) CystPosition() int { return s.cyst }

// HasCyst reports whether the sequence carries a cyst anchor position.
func (s Sequence) HasCyst() bool { return s.cyst >= 0 }
