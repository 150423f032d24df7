// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hmm declares the interface the glomeration engine uses to reach
// its HMM inference collaborator: a Viterbi decoder that infers a cluster's
// naive (unmutated ancestor) sequence, and a forward algorithm that scores a
// cluster's total rearrangement log-probability. The algorithms themselves
// are out of scope here - only the call/response contract is.
package hmm

import (
	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/track"
)

// An Event is one inferred rearrangement: a Viterbi run's canonical result.
type Event struct {
	NaiveSeq     string
	CystPosition int
}

// A ViterbiResult is what a Viterbi run reports back.
type ViterbiResult struct {
	Events []Event

	BetterKBounds  kbounds.KBounds
	BoundaryError  bool
	CouldNotExpand bool
}

// A ForwardResult is what a forward run reports back.
type ForwardResult struct {
	TotalScore float64

	BetterKBounds  kbounds.KBounds
	BoundaryError  bool
	CouldNotExpand bool
}

// ViterbiRunner infers the most likely rearrangement event for a cluster.
type ViterbiRunner interface {
	RunViterbi(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (ViterbiResult, error)
}

// ForwardRunner scores a cluster's total rearrangement log-probability.
type ForwardRunner interface {
	RunForward(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (ForwardResult, error)
}

// A Runner provides both HMM capabilities the glomeration engine needs.
type Runner interface {
	ViterbiRunner
	ForwardRunner
}
