// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// glom performs agglomerative hierarchical clustering of antibody
// sequence reads, merging clusters by an HMM-derived likelihood ratio
// with an optional Hamming-distance pre-filter, and writes the resulting
// partition trajectory.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/kortschak/glom/cache"
	"github.com/kortschak/glom/glom"
	"github.com/kortschak/glom/hmm"
	"github.com/kortschak/glom/kbounds"
	"github.com/kortschak/glom/partition"
	"github.com/kortschak/glom/track"
)

func main() {
	infile := flag.String("in", "", "specify input partition CSV (required)")
	fasta := flag.String("fasta", "", "specify FASTA file of sequences named in -in, indexed by a .fai alongside it (required)")
	cacheFile := flag.String("cachefile", "", "specify cache file path (empty disables persistence)")
	outFile := flag.String("outfile", "", "specify output partition trajectory file (required)")
	hmmCmd := flag.String("hmm-cmd", "bcrham", "specify the HMM collaborator binary")
	hmmDir := flag.String("hmm-dir", "", "specify the HMM collaborator's model directory")
	particles := flag.Int("smc-particles", 1, "specify number of parallel search particles")
	hammingHi := flag.Float64("hamming-hi", 0.2, "specify skip threshold for ChooseMerge")
	hammingLo := flag.Float64("hamming-lo", 0.0, "specify auto-merge threshold (0 disables)")
	maxDrop := flag.Float64("max-logprob-drop", 10.0, "specify early-termination logprob drop guard")
	noFwd := flag.Bool("no-fwd", false, "disable forward-probability calls (pure naive-hamming glomeration)")
	dontWriteHfracs := flag.Bool("dont-write-naive-hfracs", false, "omit hamming rows when persisting the cache file")
	seed := flag.Int64("seed", 1, "specify RNG seed")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -in partition.csv -fasta seqs.fa -outfile out.csv [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *infile == "" || *fasta == "" || *outFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := glom.Config{
		CacheFile:              *cacheFile,
		OutFile:                *outFile,
		SMCParticles:           *particles,
		HammingFractionBoundHi: *hammingHi,
		HammingFractionBoundLo: *hammingLo,
		MaxLogprobDrop:         *maxDrop,
		NoFwd:                  *noFwd,
		DontWriteNaiveHfracs:   *dontWriteHfracs,
	}

	rows, err := readInputRows(*infile)
	if err != nil {
		log.Fatal(err)
	}

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.UniqueID
	}
	seqs, err := partition.LoadIndexedSequences(track.DNA, *fasta, names)
	if err != nil {
		log.Fatal(err)
	}

	workDir, err := os.MkdirTemp("", "glom-cache-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(workDir)

	store, err := cache.Open(track.DNA, workDir)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if *cacheFile != "" {
		if f, err := os.Open(*cacheFile); err == nil {
			err = cache.Load(store, f)
			f.Close()
			if err != nil {
				log.Fatal(err)
			}
		}
	}

	runner := &hmm.SubprocessRunner{Config: hmm.SubprocessConfig{Cmd: *hmmCmd, HMMDir: *hmmDir}}
	rng := rand.New(rand.NewSource(*seed))
	g := glom.New(cfg, track.DNA, runner, store, rng)

	paths, err := buildInitialPaths(g, rows, seqs, cfg)
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range paths {
		for !p.Finished() {
			if err := g.Merge(p); err != nil {
				log.Fatal(err)
			}
		}
	}

	out, err := os.Create(*outFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := partition.WritePartitions(paths, out); err != nil {
		out.Close()
		log.Fatal(err)
	}
	if err := out.Close(); err != nil {
		log.Fatal(err)
	}

	if *cacheFile != "" {
		f, err := os.Create(*cacheFile)
		if err != nil {
			log.Fatal(err)
		}
		err = cache.Write(store, f, !*dontWriteHfracs)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
	}
}

// inputRow is one sequence's startup record: its path index (which
// initial particle/partition it belongs to), its own HMM search window,
// restricted gene list, mutation frequency, and the path's log-weight.
type inputRow struct {
	PathIndex int
	UniqueID  string
	KVMin     int
	KVMax     int
	KDMin     int
	KDMax     int
	OnlyGenes []string
	MuteFreq  float64
	LogWeight float64
}

func readInputRows(path string) ([]inputRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading input header: %w", err)
	}
	want := []string{"path_index", "unique_id", "k_v_min", "k_v_max", "k_d_min", "k_d_max", "only_genes", "mute_freq", "logweight"}
	for i, w := range want {
		if i >= len(header) || header[i] != w {
			return nil, fmt.Errorf("malformed input header: got %v, want %v", header, want)
		}
	}

	var rows []inputRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseInputRow(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseInputRow(rec []string) (inputRow, error) {
	atoi := func(s string) (int, error) { return strconv.Atoi(s) }

	pathIndex, err := atoi(rec[0])
	if err != nil {
		return inputRow{}, err
	}
	kvMin, err := atoi(rec[2])
	if err != nil {
		return inputRow{}, err
	}
	kvMax, err := atoi(rec[3])
	if err != nil {
		return inputRow{}, err
	}
	kdMin, err := atoi(rec[4])
	if err != nil {
		return inputRow{}, err
	}
	kdMax, err := atoi(rec[5])
	if err != nil {
		return inputRow{}, err
	}
	muteFreq, err := strconv.ParseFloat(rec[7], 64)
	if err != nil {
		return inputRow{}, err
	}
	logWeight, err := strconv.ParseFloat(rec[8], 64)
	if err != nil {
		return inputRow{}, err
	}

	var onlyGenes []string
	if rec[6] != "" {
		onlyGenes = strings.Split(rec[6], ";")
	}

	return inputRow{
		PathIndex: pathIndex,
		UniqueID:  rec[1],
		KVMin:     kvMin,
		KVMax:     kvMax,
		KDMin:     kdMin,
		KDMax:     kdMax,
		OnlyGenes: onlyGenes,
		MuteFreq:  muteFreq,
		LogWeight: logWeight,
	}, nil
}

// buildInitialPaths seeds the engine with each row's cluster metadata,
// groups rows into per-path initial partitions, and replicates the sole
// initial partition across every SMC particle if the input supplied
// only one but the configuration asked for more.
func buildInitialPaths(g *glom.Glomerator, rows []inputRow, seqs []track.Sequence, cfg glom.Config) ([]*partition.ClusterPath, error) {
	seqByName := make(map[string]track.Sequence, len(seqs))
	for _, s := range seqs {
		seqByName[s.Name()] = s
	}

	byPath := make(map[int][]string)
	var pathOrder []int
	logWeightByPath := make(map[int]float64)
	for _, r := range rows {
		if _, ok := byPath[r.PathIndex]; !ok {
			pathOrder = append(pathOrder, r.PathIndex)
		}
		byPath[r.PathIndex] = append(byPath[r.PathIndex], r.UniqueID)
		logWeightByPath[r.PathIndex] = r.LogWeight

		seq, ok := seqByName[r.UniqueID]
		if !ok {
			return nil, fmt.Errorf("sequence %q not found in fasta", r.UniqueID)
		}
		kb := kbounds.New(
			kbounds.KSet{KV: r.KVMin, KD: r.KDMin},
			kbounds.KSet{KV: r.KVMax, KD: r.KDMax},
		)
		g.Seed(r.UniqueID, seq, kb, r.OnlyGenes, r.MuteFreq)
	}

	var paths []*partition.ClusterPath
	for i, pi := range pathOrder {
		p := partition.NewFrom(byPath[pi])
		logProb, err := g.LogProbOfPartition(p)
		if err != nil {
			return nil, err
		}
		paths = append(paths, partition.NewClusterPath(i, pi, p, logProb, logWeightByPath[pi]))
	}

	if len(paths) == 1 && cfg.SMCParticles > 1 {
		base := paths[0]
		for i := 1; i < cfg.SMCParticles; i++ {
			clone := base.Current().Clone()
			logProb, err := g.LogProbOfPartition(clone)
			if err != nil {
				return nil, err
			}
			paths = append(paths, partition.NewClusterPath(i, base.InitialPathIndex, clone, logProb, base.LogWeights()[0]))
		}
	}
	if len(paths) != cfg.SMCParticles && cfg.SMCParticles > 0 {
		return nil, &glom.EngineError{Kind: glom.ConfigError, Op: "buildInitialPaths", Err: fmt.Errorf("wrong number of initial partitions %d (should be %d)", len(paths), cfg.SMCParticles)}
	}

	return paths, nil
}
