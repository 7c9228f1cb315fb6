// Copyright 2017 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2017 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pattern builds and walks the double-array Aho-Corasick
// automata the scoring kernel scans the input against: one keyed by
// code points (char-ngram), one keyed by character categories
// (type-ngram). Construction happens once at model-load time; the
// result is a value-typed table of plain int32 slices with no
// pointers and no cycles, so it is trivially safe to share across
// concurrent predictions.
//
// Construction builds a linked trie, propagates fail links
// breadth-first, then compacts the result into the base/check
// double-array layout so the hot scan touches contiguous arrays only.
package pattern

// Symbol is the input alphabet element an automaton is keyed on: a
// Unicode scalar value for the char-ngram index, or a small integer
// category code for the type-ngram index.
type Symbol = int32

const rootState int32 = 0
const freeCheck int32 = -1

// trieNode is the build-time representation; it is discarded once
// Build compacts it into an Index.
type trieNode struct {
	children map[Symbol]int32 // symbol -> child trie node index
	fail     int32
	output   []int32 // pattern ids whose occurrence ends here, fail-chain merged
}

// Builder accumulates patterns and compacts them into an Index.
type Builder struct {
	nodes       []trieNode
	alphabet    map[Symbol]int32
	patternLens []int32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{
		nodes:    []trieNode{{children: map[Symbol]int32{}}},
		alphabet: map[Symbol]int32{},
	}
	return b
}

// Add inserts a pattern (a sequence of symbols) and returns its
// pattern id, stable for the lifetime of the built Index. Patterns
// added more than once receive distinct ids; callers that must reject
// duplicate patterns (model loading, dictionary replacement) check
// for that themselves before calling Add.
func (b *Builder) Add(symbols []Symbol) int32 {
	cur := int32(0)
	for _, sym := range symbols {
		if _, ok := b.alphabet[sym]; !ok {
			b.alphabet[sym] = int32(len(b.alphabet))
		}
		child, ok := b.nodes[cur].children[sym]
		if !ok {
			b.nodes = append(b.nodes, trieNode{children: map[Symbol]int32{}})
			child = int32(len(b.nodes) - 1)
			b.nodes[cur].children[sym] = child
		}
		cur = child
	}
	id := int32(len(b.patternLens))
	b.patternLens = append(b.patternLens, int32(len(symbols)))
	b.nodes[cur].output = append(b.nodes[cur].output, id)
	return id
}

// Build computes fail links over the trie, merges fail-chain output
// sets, then compacts the trie into a double-array Index.
func (b *Builder) Build() *Index {
	b.buildFailLinks()
	return b.compact()
}

func (b *Builder) buildFailLinks() {
	queue := make([]int32, 0, len(b.nodes))
	for _, child := range b.nodes[rootState].children {
		b.nodes[child].fail = rootState
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for sym, child := range b.nodes[cur].children {
			queue = append(queue, child)
			b.nodes[child].fail = b.findFailTarget(b.nodes[cur].fail, sym)
			if len(b.nodes[b.nodes[child].fail].output) > 0 {
				b.nodes[child].output = append(b.nodes[child].output, b.nodes[b.nodes[child].fail].output...)
			}
		}
	}
}

// findFailTarget follows fail links starting at f looking for a node
// with an outgoing edge on sym, stopping at the root if none exists.
func (b *Builder) findFailTarget(f int32, sym Symbol) int32 {
	for {
		if next, ok := b.nodes[f].children[sym]; ok {
			return next
		}
		if f == rootState {
			return rootState
		}
		f = b.nodes[f].fail
	}
}

func (b *Builder) compact() *Index {
	n := len(b.nodes)
	stateID := make([]int32, n)
	base := make([]int32, 1, n*2)
	check := make([]int32, 1, n*2)
	check[0] = freeCheck
	fail := make([]int32, 1, n*2)
	output := make([][]int32, 1, n*2)
	output[0] = b.nodes[rootState].output

	ensure := func(upTo int32) {
		for int32(len(check)) <= upTo {
			base = append(base, 0)
			check = append(check, freeCheck)
			fail = append(fail, rootState)
			output = append(output, nil)
		}
	}

	queue := []int32{rootState}
	for len(queue) > 0 {
		nodeIdx := queue[0]
		queue = queue[1:]
		s := stateID[nodeIdx]
		children := b.nodes[nodeIdx].children
		if len(children) == 0 {
			continue
		}
		codes := make([]Symbol, 0, len(children))
		for sym := range children {
			codes = append(codes, b.alphabet[sym])
		}
		baseOffset := findFreeBase(codes, check)
		base[s] = baseOffset
		for sym, childNode := range children {
			pos := baseOffset + b.alphabet[sym]
			ensure(pos)
			check[pos] = s
			fail[pos] = stateID[b.nodes[childNode].fail]
			output[pos] = b.nodes[childNode].output
			stateID[childNode] = pos
			queue = append(queue, childNode)
		}
	}

	return &Index{
		base:        base,
		check:       check,
		fail:        fail,
		output:      output,
		alphabet:    b.alphabet,
		patternLens: append([]int32(nil), b.patternLens...),
	}
}

// findFreeBase finds the smallest offset >= 1 such that offset+code
// is unused in check for every code in codes. Run once per trie node
// at build time; never on the hot prediction path.
func findFreeBase(codes []Symbol, check []int32) int32 {
	var maxCode Symbol
	for _, c := range codes {
		if c > maxCode {
			maxCode = c
		}
	}
candidate:
	for offset := int32(1); ; offset++ {
		for _, c := range codes {
			pos := offset + c
			if int(pos) < len(check) && check[pos] != freeCheck {
				continue candidate
			}
		}
		return offset
	}
}

// Index is the compacted double-array automaton.
type Index struct {
	base, check, fail []int32
	output            [][]int32
	alphabet          map[Symbol]int32
	patternLens       []int32
}

// PatternLen returns the length of the pattern identified by id.
func (ix *Index) PatternLen(id int32) int { return int(ix.patternLens[id]) }

// NumPatterns returns the number of pattern ids the Builder that
// produced this Index handed out; a pattern added twice counts twice.
func (ix *Index) NumPatterns() int { return len(ix.patternLens) }

func (ix *Index) step(state int32, sym Symbol) int32 {
	code, ok := ix.alphabet[sym]
	if !ok {
		return rootState
	}
	for {
		pos := ix.base[state] + code
		if pos >= 0 && int(pos) < len(ix.check) && ix.check[pos] == state {
			return pos
		}
		if state == rootState {
			return rootState
		}
		state = ix.fail[state]
	}
}

// ScanFunc streams, for each accepted occurrence ending at position i
// in input, a call to fn(i, patternID). Patterns are reported in no
// particular order within a position.
func (ix *Index) ScanFunc(input []Symbol, fn func(pos int, patternID int32)) {
	state := rootState
	for i, sym := range input {
		state = ix.step(state, sym)
		for _, id := range ix.output[state] {
			fn(i, id)
		}
	}
}
