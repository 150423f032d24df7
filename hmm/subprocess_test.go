// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"reflect"
	"testing"

	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/track"
)

func TestToWireRequest(t *testing.T) {
	seqs := []track.Sequence{
		track.NewSequence(track.DNA, "a", "ACGT", -1),
		track.NewSequence(track.DNA, "b", "ACGA", -1),
	}
	kb := kbounds.New(kbounds.KSet{KV: 1, KD: 2}, kbounds.KSet{KV: 5, KD: 6})

	got := toWireRequest(seqs, kb, []string{"IGHV1"}, 0.05)
	want := wireRequest{
		Names:        []string{"a", "b"},
		Seqs:         []string{"ACGT", "ACGA"},
		KMin:         kbounds.KSet{KV: 1, KD: 2},
		KMax:         kbounds.KSet{KV: 5, KD: 6},
		Genes:        []string{"IGHV1"},
		MeanMuteFreq: 0.05,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("toWireRequest = %+v, want %+v", got, want)
	}
}

func TestSubprocessConfigBuildCommand(t *testing.T) {
	c := SubprocessConfig{Cmd: "bcrham", HMMDir: "/models"}
	cmd, err := c.buildCommand("viterbi")
	if err != nil {
		t.Fatalf("buildCommand: %v", err)
	}
	if got, want := cmd.Args[0], "bcrham"; got != want {
		t.Errorf("cmd.Args[0] = %q, want %q", got, want)
	}
	joined := cmd.Args[1:]
	found := map[string]bool{}
	for _, a := range joined {
		found[a] = true
	}
	for _, want := range []string{"--algorithm", "viterbi", "--hmmdir", "/models"} {
		if !found[want] {
			t.Errorf("buildCommand args %v missing %q", joined, want)
		}
	}
}
