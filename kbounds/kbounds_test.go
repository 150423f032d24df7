// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kbounds

import "testing"

func TestLogicalOr(t *testing.T) {
	a := New(KSet{KV: 2, KD: 1}, KSet{KV: 5, KD: 4})
	b := New(KSet{KV: 1, KD: 3}, KSet{KV: 6, KD: 3})

	got := a.LogicalOr(b)
	want := New(KSet{KV: 1, KD: 1}, KSet{KV: 6, KD: 4})
	if got != want {
		t.Errorf("LogicalOr(%+v, %+v) = %+v, want %+v", a, b, got, want)
	}

	// LogicalOr is commutative.
	if got2 := b.LogicalOr(a); got2 != got {
		t.Errorf("LogicalOr is not commutative: %+v != %+v", got2, got)
	}
}
