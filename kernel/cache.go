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

// Package kernel implements the pointwise boundary-scoring
// convolution: for every pattern occurrence the automata in package
// pattern report, add that pattern's weight vector into a window of
// boundary scores anchored on the occurrence's position.
package kernel

import (
	"github.com/daac-tools/vaporetto/charclass"
	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/model"
)

// pairKey identifies a length-2 type-ngram pattern by its two categories.
type pairKey [2]charclass.Category

// Cache holds the config-dependent structures derived once from a
// Model at Predictor construction time:
// the type-pair lookup table and, when enabled, fixed-length copies of
// the char-ngram weight vectors. Building these here instead of inside
// Accumulate keeps the hot per-sentence path free of any per-call
// allocation driven by config.
type Cache struct {
	typePair1 map[charclass.Category]model.Entry
	typePair2 map[pairKey]model.Entry
	// longType holds every type-ngram entry whose pattern length exceeds
	// 2: the pair cache cannot represent these directly, so Accumulate
	// always resolves them through the automaton scan regardless of
	// UseTypePairCache.
	longType []int32 // indices into m.TypeNgrams

	fixedChar    [][]int16
	fixedCharLen int
}

// BuildCache derives a Cache from m under cfg. Safe to call once and
// share across every concurrent prediction using the same (m, cfg)
// pair; the result is read-only after construction.
func BuildCache(m *model.Model, cfg config.PredictorConfig) *Cache {
	c := &Cache{}
	if cfg.UseTypePairCache {
		c.typePair1 = map[charclass.Category]model.Entry{}
		c.typePair2 = map[pairKey]model.Entry{}
		// non-nil even when empty: Accumulate reads nil as "no filter,
		// scan every pattern", which would double-count the cached ones.
		c.longType = make([]int32, 0)
		for i, e := range m.TypeNgrams {
			switch len(e.Pattern) {
			case 1:
				c.typePair1[charclass.Category(e.Pattern[0])] = e
			case 2:
				c.typePair2[pairKey{charclass.Category(e.Pattern[0]), charclass.Category(e.Pattern[1])}] = e
			default:
				c.longType = append(c.longType, int32(i))
			}
		}
	}
	if cfg.FixWeightLength {
		maxLen := 0
		for _, e := range m.CharNgrams {
			if len(e.Weights) > maxLen {
				maxLen = len(e.Weights)
			}
		}
		c.fixedCharLen = maxLen
		c.fixedChar = make([][]int16, len(m.CharNgrams))
		for i, e := range m.CharNgrams {
			padded := make([]int16, maxLen)
			copy(padded, e.Weights)
			c.fixedChar[i] = padded
		}
	}
	return c
}
