// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"fmt"
	"math"
)

// HammingFraction returns the fraction of aligned positions at which a and
// b disagree. Positions where either sequence carries its track's ambiguous
// symbol are excluded from both the numerator and the denominator. a and b
// must have equal length, and the comparison uses a's track to decide
// ambiguity.
//
// If every aligned position is ambiguous, the result is NaN, matching the
// zero-over-zero division the original implementation performs rather than
// special-casing it.
func HammingFraction(a, b Sequence) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("track: sequences of different length in HammingFraction (%s, %s)", a.Undigitized(), b.Undigitized())
	}

	ambiguous := a.track.Ambiguous()
	var distance, nonAmbiguous int
	for i := 0; i < a.Len(); i++ {
		ca, cb := a.At(i), b.At(i)
		if ca == ambiguous || cb == ambiguous {
			continue
		}
		nonAmbiguous++
		if ca != cb {
			distance++
		}
	}
	if nonAmbiguous == 0 {
		return math.NaN(), nil
	}
	return float64(distance) / float64(nonAmbiguous), nil
}
