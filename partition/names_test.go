// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import "testing"

func TestJoinNamesOrderIndependent(t *testing.T) {
	a := JoinNames([]string{"c", "a", "b"})
	b := JoinNames([]string{"b", "c", "a"})
	if a != b {
		t.Errorf("JoinNames not order-independent: %q != %q", a, b)
	}
	if a != "a:b:c" {
		t.Errorf("JoinNames = %q, want a:b:c", a)
	}
}

func TestInternerMergeIsOrderIndependentAcrossParentOrder(t *testing.T) {
	in := NewInterner()

	// Two particles that build up the same three-way cluster by merging
	// in different orders must land on the same canonical key.
	ab := in.Key([]string{"a", "b"})
	abc1 := in.Merge([]string{"a", "b"}, []string{"c"})

	ba := in.Key([]string{"b", "a"})
	abc2 := in.Merge([]string{"c"}, []string{"b", "a"})

	if ab != ba {
		t.Errorf("Key not order-independent: %q != %q", ab, ba)
	}
	if abc1 != abc2 {
		t.Errorf("Merge not independent of parent ordering: %q != %q", abc1, abc2)
	}
}
