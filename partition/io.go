// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package partition

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/fai"

	"github.com/kortschak/glom/track"
)

var partitionHeader = []string{"path_index", "initial_path_index", "partition", "logprob", "logweight"}

// WritePartitions serializes every partition visited on each path, one
// row per partition, paths emitted sequentially in the order given.
func WritePartitions(paths []*ClusterPath, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(partitionHeader); err != nil {
		return fmt.Errorf("partition: writing header: %w", err)
	}
	for _, p := range paths {
		for i, part := range p.Partitions() {
			rec := []string{
				strconv.Itoa(p.PathIndex),
				strconv.Itoa(p.InitialPathIndex),
				strings.Join(part.Keys(), ";"),
				strconv.FormatFloat(p.LogProbs()[i], 'g', 20, 64),
				strconv.FormatFloat(p.LogWeights()[i], 'g', 20, 64),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("partition: writing row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDivvyOutput serializes the result of NaiveSeqGlomerate: a single
// data row listing clusters joined by '|', each cluster's member names
// joined by ';'.
func WriteDivvyOutput(clusters [][]string, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"partition"}); err != nil {
		return fmt.Errorf("partition: writing divvy header: %w", err)
	}
	groups := make([]string, len(clusters))
	for i, c := range clusters {
		groups[i] = strings.Join(c, ";")
	}
	if err := cw.Write([]string{strings.Join(groups, "|")}); err != nil {
		return fmt.Errorf("partition: writing divvy row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// LoadIndexedSequences resolves names to track.Sequence values by
// consulting a samtools-style FASTA index (.fai) alongside fastaPath,
// reading each record's bases only when it is actually named - this
// avoids loading an entire reference-sized FASTA into memory just to
// seed a handful of clusters, the same access pattern the teacher's
// command-line tools use for BLAST subjects.
func LoadIndexedSequences(t *track.Track, fastaPath string, names []string) ([]track.Sequence, error) {
	idxFile, err := os.Open(fastaPath + ".fai")
	if err != nil {
		return nil, fmt.Errorf("partition: opening fasta index: %w", err)
	}
	defer idxFile.Close()

	idx, err := fai.ReadFrom(bufio.NewReader(idxFile))
	if err != nil {
		return nil, fmt.Errorf("partition: reading fasta index: %w", err)
	}

	f, err := os.Open(fastaPath)
	if err != nil {
		return nil, fmt.Errorf("partition: opening fasta: %w", err)
	}
	defer f.Close()

	seqs := make([]track.Sequence, 0, len(names))
	for _, name := range names {
		rec, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("partition: sequence %q not found in %s", name, fastaPath)
		}
		raw, err := readFaidxRecord(f, rec)
		if err != nil {
			return nil, fmt.Errorf("partition: reading %q: %w", name, err)
		}
		seqs = append(seqs, track.NewSequence(t, name, raw, -1))
	}
	return seqs, nil
}

// readFaidxRecord extracts the bases for rec from a FASTA file opened at
// f, following the samtools faidx layout the .fai index describes.
func readFaidxRecord(f *os.File, rec fai.Record) (string, error) {
	buf := make([]byte, 0, rec.Length)
	remaining := rec.Length
	offset := rec.Start
	for remaining > 0 {
		lineBases := rec.BasesPerLine
		if remaining < lineBases {
			lineBases = remaining
		}
		line := make([]byte, lineBases)
		if _, err := f.ReadAt(line, int64(offset)); err != nil && err != io.EOF {
			return "", err
		}
		buf = append(buf, line...)
		remaining -= lineBases
		offset += rec.BytesPerLine
	}
	return string(buf), nil
}
