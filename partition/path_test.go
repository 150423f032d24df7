// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import "testing"

func TestClusterPathFinishesOnLogProbDrop(t *testing.T) {
	p0 := NewFrom([]string{"a", "b", "c"})
	path := NewClusterPath(0, 0, p0, -10, 0)

	path.AddPartition(NewFrom([]string{"a:b", "c"}), -9, 0, 5)
	if path.Finished() {
		t.Fatalf("path finished early after a small improvement")
	}

	path.AddPartition(NewFrom([]string{"a:b:c"}), -20, 0, 5)
	if !path.Finished() {
		t.Fatalf("path did not finish after logprob dropped %v below the running max %v with max_drop 5", -20.0, -9.0)
	}

	// Further appends are ignored once finished.
	path.AddPartition(NewFrom([]string{"a:b:c:d"}), 0, 0, 5)
	if len(path.Partitions()) != 3 {
		t.Errorf("AddPartition after Finished appended anyway: got %d partitions", len(path.Partitions()))
	}
}

func TestClusterPathCurrent(t *testing.T) {
	p0 := NewFrom([]string{"a"})
	path := NewClusterPath(0, 0, p0, -1, 0)
	p1 := NewFrom([]string{"a", "b"})
	path.AddPartition(p1, -2, 0, 100)

	if path.Current() != p1 {
		t.Errorf("Current() did not return the most recently appended partition")
	}
	if path.CurrentLogProb() != -2 {
		t.Errorf("CurrentLogProb() = %v, want -2", path.CurrentLogProb())
	}
}
