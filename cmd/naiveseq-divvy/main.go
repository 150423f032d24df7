// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// naiveseq-divvy groups a FASTA of naive (already-inferred ancestor)
// sequences into a target number of roughly equal-size clusters using
// only pairwise Hamming fraction, without consulting an HMM
// collaborator. It is the cheap pre-bucketing pass run ahead of a full
// likelihood-ratio glomeration on a large input.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/glom/partition"
	"github.com/kortschak/glom/track"
)

func main() {
	in := flag.String("fasta", "", "specify FASTA file of naive sequences (required)")
	out := flag.String("out", "", "specify divvy output CSV path (required)")
	n := flag.Int("n", 1, "specify target number of clusters")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -fasta naive.fa -n 10 -out partition.csv

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" || *out == "" || *n < 1 {
		flag.Usage()
		os.Exit(2)
	}

	seqs, err := readFasta(*in)
	if err != nil {
		log.Fatal(err)
	}
	if len(seqs) < *n {
		log.Fatalf("have %d sequences, cannot divvy into %d clusters", len(seqs), *n)
	}

	names := make([]string, 0, len(seqs))
	for _, s := range seqs {
		names = append(names, s.Name())
	}

	hfracCache := make(map[[2]string]float64)
	hfrac := func(a, b string) float64 {
		key := [2]string{a, b}
		if v, ok := hfracCache[key]; ok {
			return v
		}
		v, err := track.HammingFraction(seqs[a], seqs[b])
		if err != nil {
			log.Fatal(err)
		}
		hfracCache[key] = v
		hfracCache[[2]string{b, a}] = v
		return v
	}

	clusters := partition.NaiveSeqGlomerate(names, *n, hfrac)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := partition.WriteDivvyOutput(clusters, f); err != nil {
		log.Fatal(err)
	}
}

func readFasta(path string) (map[string]track.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs := make(map[string]track.Sequence)
	sc := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		raw := make([]byte, s.Len())
		for i := range raw {
			raw[i] = byte(s.Seq[i])
		}
		seqs[s.ID] = track.NewSequence(track.DNA, s.ID, string(raw), -1)
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return seqs, nil
}
