// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/ctrprf/random123/word"
)

// MarshalText renders the engine's observable state as a single line of
// space-separated decimal integers: the PRF key words, the base counter
// words, the sequence counter, and the buffer index. It deliberately omits
// the buffered block; UnmarshalText always regenerates it lazily.
func (e *Engine[W]) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeWords(&sb, e.prf.Key())
	writeWords(&sb, e.base)
	sb.WriteString(e.seq.Dec())
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d", e.idx)
	return []byte(sb.String()), nil
}

func writeWords[W word.Word](sb *strings.Builder, words []W) {
	for _, w := range words {
		fmt.Fprintf(sb, "%d ", uint64(w))
	}
}

// UnmarshalText restores an engine previously rendered by MarshalText. The
// receiver must already carry a PRF of the correct family (its key and
// round count are whatever was last set; UnmarshalText replaces the key).
// A successful call leaves the buffer invalidated, so the next Next call
// regenerates it from the restored (key, base, sequence counter) triple.
func (e *Engine[W]) UnmarshalText(data []byte) error {
	fields := strings.Fields(string(data))
	want := e.prf.KeyLen() + e.n + 2
	if len(fields) != want {
		return fmt.Errorf("engine: %w: expected %d fields, got %d", ErrMalformedStream, want, len(fields))
	}

	bitSize := int(word.Width[W]())
	parseWords := func(toks []string) ([]W, error) {
		out := make([]W, len(toks))
		for i, tok := range toks {
			v, err := strconv.ParseUint(tok, 10, bitSize)
			if err != nil {
				return nil, fmt.Errorf("engine: %w: %v", ErrMalformedStream, err)
			}
			out[i] = W(v)
		}
		return out, nil
	}

	keyTok := fields[:e.prf.KeyLen()]
	baseTok := fields[e.prf.KeyLen() : e.prf.KeyLen()+e.n]
	seqTok := fields[e.prf.KeyLen()+e.n]
	idxTok := fields[e.prf.KeyLen()+e.n+1]

	key, err := parseWords(keyTok)
	if err != nil {
		return err
	}
	base, err := parseWords(baseTok)
	if err != nil {
		return err
	}

	seq, err := uint256.FromDecimal(seqTok)
	if err != nil {
		return fmt.Errorf("engine: %w: sequence counter: %v", ErrMalformedStream, err)
	}
	idx, err := strconv.Atoi(idxTok)
	if err != nil || idx < 0 || idx >= e.n {
		return fmt.Errorf("engine: %w: buffer index out of range", ErrMalformedStream)
	}

	keyed, err := e.prf.WithKey(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	if mask := reservedMaskWords[W](e.n, e.counterBits); !elementwiseDisjoint(base, mask) {
		return fmt.Errorf("%w: %w", ErrOutOfRange, ErrBaseCounterOverlapsReserved)
	}
	if seqAtLimit(seq, e.counterBits) && idx != 0 {
		return fmt.Errorf("engine: %w: sequence counter past limit with a nonzero buffer index", ErrMalformedStream)
	}

	e.prf = keyed
	e.base = base
	e.seq = *seq
	e.idx = idx
	e.bufValid = false
	return nil
}
