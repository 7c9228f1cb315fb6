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

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func toSymbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

func TestScanFindsAllOccurrences(t *testing.T) {
	b := NewBuilder()
	heID := b.Add(toSymbols("he"))
	sheID := b.Add(toSymbols("she"))
	hersID := b.Add(toSymbols("hers"))
	hisID := b.Add(toSymbols("his"))
	ix := b.Build()

	type hit struct {
		pos int
		id  int32
	}
	var hits []hit
	ix.ScanFunc(toSymbols("ushers"), func(pos int, id int32) {
		hits = append(hits, hit{pos, id})
	})

	assert.Contains(t, hits, hit{2, sheID})
	assert.Contains(t, hits, hit{3, heID})
	assert.Contains(t, hits, hit{5, hersID})
	_ = hisID
}

func TestScanNoMatchOnUnknownSymbol(t *testing.T) {
	b := NewBuilder()
	b.Add(toSymbols("ab"))
	ix := b.Build()

	var count int
	ix.ScanFunc(toSymbols("xyz"), func(pos int, id int32) { count++ })
	assert.Equal(t, 0, count)
}

func TestScanRepeatedOverlappingPattern(t *testing.T) {
	b := NewBuilder()
	id := b.Add(toSymbols("aa"))
	ix := b.Build()

	var positions []int
	ix.ScanFunc(toSymbols("aaaa"), func(pos int, pid int32) {
		if pid == id {
			positions = append(positions, pos)
		}
	})
	assert.Equal(t, []int{1, 2, 3}, positions)
}

func TestPatternLen(t *testing.T) {
	b := NewBuilder()
	id := b.Add(toSymbols("foo"))
	ix := b.Build()
	assert.Equal(t, 3, ix.PatternLen(id))
	assert.Equal(t, 1, ix.NumPatterns())
}
