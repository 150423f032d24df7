// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package track provides the alphabet and sequence types that the
// glomeration engine clusters over: a Track names the alphabet a group of
// sequences is digitized against and the symbol treated as "unknown" for
// Hamming comparison, and a Sequence is one digitized, named read.
package track

import (
	"github.com/biogo/biogo/alphabet"
)

// A Track describes the alphabet a set of sequences share and designates
// one letter of that alphabet as ambiguous - positions carrying it are
// skipped by HammingFraction rather than counted as a mismatch.
type Track struct {
	alpha     alphabet.Alphabet
	ambiguous alphabet.Letter
}

// New returns a Track over alpha with ambiguous marked as the
// "don't know" symbol.
func New(alpha alphabet.Alphabet, ambiguous alphabet.Letter) *Track {
	return &Track{alpha: alpha, ambiguous: ambiguous}
}

// Alphabet returns the track's alphabet.
func (t *Track) Alphabet() alphabet.Alphabet { return t.alpha }

// Ambiguous returns the letter treated as "unknown residue" by this track.
func (t *Track) Ambiguous() alphabet.Letter { return t.ambiguous }

// DNA is the default nucleotide track used for rearrangement sequences,
// with 'N' as the ambiguous symbol - the same redundancy alphabet the
// teacher's cmd/ins uses for genomic sequence (alphabet.DNAredundant), since
// antibody reads routinely carry ambiguous base calls.
var DNA = New(alphabet.DNAredundant, alphabet.Letter('N'))
