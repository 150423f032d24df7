// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/biogo/external"

	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/track"
)

// SubprocessConfig describes how to invoke an external HMM collaborator
// binary. It is built the same way the teacher's blast.Nucleic/blast.MakeDB
// build their command lines: a struct of parameters with buildarg tags,
// turned into an exec.Cmd by github.com/biogo/external.
type SubprocessConfig struct {
	// Usage: bcrham --algorithm <viterbi|forward> --hmmdir <dir>
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}bcrham{{end}}"`

	HMMDir string `buildarg:"{{with .}}--hmmdir{{split}}{{.}}{{end}}"` // --hmmdir <s>

	// ExtraFlags is passed through to the binary as additional flags.
	ExtraFlags string
}

func (c SubprocessConfig) buildCommand(algorithm string) (*exec.Cmd, error) {
	c2 := struct {
		Cmd       string `buildarg:"{{if .}}{{.}}{{else}}bcrham{{end}}"`
		Algorithm string `buildarg:"--algorithm{{split}}{{.}}"`
		HMMDir    string `buildarg:"{{with .}}--hmmdir{{split}}{{.}}{{end}}"`
	}{Cmd: c.Cmd, Algorithm: algorithm, HMMDir: c.HMMDir}

	cl := external.Must(external.Build(c2))
	var extra []string
	if c.ExtraFlags != "" {
		extra = strings.Split(c.ExtraFlags, " ")
	}
	return exec.Command(cl[0], append(cl[1:], extra...)...), nil
}

// SubprocessRunner is a Runner that reaches its HMM collaborator by running
// an external process: the request is written to the process's stdin as
// JSON, and the response is read back from its stdout as JSON. This mirrors
// the ham/bcrham split in the source this engine is distilled from.
type SubprocessRunner struct {
	Config SubprocessConfig
}

type wireEvent struct {
	NaiveSeq     string `json:"naive_seq"`
	CystPosition int    `json:"cyst_position"`
}

type wireRequest struct {
	Names        []string `json:"names"`
	Seqs         []string `json:"seqs"`
	KMin         kbounds.KSet `json:"k_min"`
	KMax         kbounds.KSet `json:"k_max"`
	Genes        []string `json:"genes"`
	MeanMuteFreq float64  `json:"mean_mute_freq"`
}

type wireResult struct {
	Events         []wireEvent  `json:"events"`
	TotalScore     float64      `json:"total_score"`
	BetterKMin     kbounds.KSet `json:"better_k_min"`
	BetterKMax     kbounds.KSet `json:"better_k_max"`
	BoundaryError  bool         `json:"boundary_error"`
	CouldNotExpand bool         `json:"could_not_expand"`
}

func toWireRequest(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) wireRequest {
	req := wireRequest{
		Names:        make([]string, len(seqs)),
		Seqs:         make([]string, len(seqs)),
		KMin:         kb.Min,
		KMax:         kb.Max,
		Genes:        genes,
		MeanMuteFreq: meanMuteFreq,
	}
	for i, s := range seqs {
		req.Names[i] = s.Name()
		req.Seqs[i] = s.Undigitized()
	}
	return req
}

func (r *SubprocessRunner) run(algorithm string, seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (wireResult, error) {
	var result wireResult

	cmd, err := r.Config.buildCommand(algorithm)
	if err != nil {
		return result, fmt.Errorf("hmm: building %s command: %w", algorithm, err)
	}

	reqBytes, err := json.Marshal(toWireRequest(seqs, kb, genes, meanMuteFreq))
	if err != nil {
		return result, fmt.Errorf("hmm: encoding %s request: %w", algorithm, err)
	}
	cmd.Stdin = bytes.NewReader(reqBytes)

	out, err := cmd.Output()
	if err != nil {
		return result, fmt.Errorf("hmm: running %s: %w", algorithm, err)
	}

	if err := json.Unmarshal(out, &result); err != nil {
		return result, fmt.Errorf("hmm: decoding %s response: %w", algorithm, err)
	}
	return result, nil
}

// RunViterbi implements ViterbiRunner by shelling out to the configured
// binary with --algorithm viterbi.
func (r *SubprocessRunner) RunViterbi(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (ViterbiResult, error) {
	wr, err := r.run("viterbi", seqs, kb, genes, meanMuteFreq)
	if err != nil {
		return ViterbiResult{}, err
	}
	events := make([]Event, len(wr.Events))
	for i, e := range wr.Events {
		events[i] = Event{NaiveSeq: e.NaiveSeq, CystPosition: e.CystPosition}
	}
	return ViterbiResult{
		Events:         events,
		BetterKBounds:  kbounds.KBounds{Min: wr.BetterKMin, Max: wr.BetterKMax},
		BoundaryError:  wr.BoundaryError,
		CouldNotExpand: wr.CouldNotExpand,
	}, nil
}

// RunForward implements ForwardRunner by shelling out to the configured
// binary with --algorithm forward.
func (r *SubprocessRunner) RunForward(seqs []track.Sequence, kb kbounds.KBounds, genes []string, meanMuteFreq float64) (ForwardResult, error) {
	wr, err := r.run("forward", seqs, kb, genes, meanMuteFreq)
	if err != nil {
		return ForwardResult{}, err
	}
	return ForwardResult{
		TotalScore:     wr.TotalScore,
		BetterKBounds:  kbounds.KBounds{Min: wr.BetterKMin, Max: wr.BetterKMax},
		BoundaryError:  wr.BoundaryError,
		CouldNotExpand: wr.CouldNotExpand,
	}, nil
}
