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

package kernel

import (
	"github.com/daac-tools/vaporetto/charclass"
	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/model"
	"github.com/daac-tools/vaporetto/pattern"
	"github.com/daac-tools/vaporetto/sentence"
)

// Accumulate adds every applicable pattern's contribution into s's
// boundary scores, then decides Break/NoBreak for every boundary the
// input didn't already preset. A well-formed Sentence against a
// well-formed Model never produces an error; the convolution is pure
// addition over int32, wrapping on overflow the same way the model
// was trained.
func Accumulate(s *sentence.Sentence, m *model.Model, c *Cache, cfg config.PredictorConfig) {
	scores := s.Scores()
	if m.Bias != 0 {
		for i := range scores {
			scores[i] += m.Bias
		}
	}

	addCharNgrams(s, m, c, cfg, scores)
	addTypeNgrams(s, m, c, cfg, scores)
	addDictionary(s, m, scores)

	s.Decide()
}

// addWindow adds weights into scores starting at boundary index
// leftmost. Elements whose target falls outside the sentence's
// boundary range are silently discarded: near the edges a pattern's
// window simply extends past the text.
func addWindow(scores []int32, leftmost int, weights []int16) {
	for k, w := range weights {
		target := leftmost + k
		if target >= 0 && target < len(scores) {
			scores[target] += int32(w)
		}
	}
}

func runesToSymbols(rs []rune) []pattern.Symbol {
	out := make([]pattern.Symbol, len(rs))
	for i, r := range rs {
		out[i] = pattern.Symbol(r)
	}
	return out
}

func categoriesToSymbols(cats []charclass.Category) []pattern.Symbol {
	out := make([]pattern.Symbol, len(cats))
	for i, cat := range cats {
		out[i] = pattern.Symbol(cat)
	}
	return out
}

func charWiseSymbols(cats []charclass.Category) []pattern.Symbol {
	out := make([]pattern.Symbol, len(cats))
	for i, cat := range cats {
		out[i] = pattern.Symbol(model.CategoryRune(int(cat)))
	}
	return out
}

func addCharNgrams(s *sentence.Sentence, m *model.Model, c *Cache, cfg config.PredictorConfig, scores []int32) {
	if m.CharIndex == nil || len(m.CharNgrams) == 0 {
		return
	}
	symbols := runesToSymbols(s.Chars())
	m.CharIndex.ScanFunc(symbols, func(pos int, id int32) {
		l := m.CharIndex.PatternLen(id)
		start := pos - l + 1
		leftmost := start - m.CharWindow
		if cfg.FixWeightLength && c != nil && c.fixedChar != nil {
			addWindow(scores, leftmost, c.fixedChar[id])
			return
		}
		addWindow(scores, leftmost, m.CharNgrams[id].Weights)
	})
}

func addTypeNgrams(s *sentence.Sentence, m *model.Model, c *Cache, cfg config.PredictorConfig, scores []int32) {
	if len(m.TypeNgrams) == 0 {
		return
	}
	cats := s.Categories()

	scan := m.TypeIndex
	symbols := categoriesToSymbols(cats)
	if cfg.CharWisePMA {
		scan = m.TypeIndexCharWise
		symbols = charWiseSymbols(cats)
	}

	if !cfg.UseTypePairCache || c == nil {
		addTypeNgramsByIDs(m, scan, scores, nil, symbols)
		return
	}

	for pos, cat := range cats {
		if e, ok := c.typePair1[cat]; ok {
			addWindow(scores, pos-m.TypeWindow, e.Weights)
		}
	}
	for pos := 1; pos < len(cats); pos++ {
		if e, ok := c.typePair2[pairKey{cats[pos-1], cats[pos]}]; ok {
			addWindow(scores, pos-1-m.TypeWindow, e.Weights)
		}
	}
	addTypeNgramsByIDs(m, scan, scores, c.longType, symbols)
}

// addTypeNgramsByIDs scans symbols against scan and adds the
// contribution of every reported occurrence. When allow is non-nil,
// only pattern ids present in it are applied -- used to resolve the
// handful of type-ngram patterns too long for the pair cache to
// represent while the cache handles the rest.
func addTypeNgramsByIDs(m *model.Model, scan *pattern.Index, scores []int32, allow []int32, symbols []pattern.Symbol) {
	if scan == nil {
		return
	}
	var wanted map[int32]struct{}
	if allow != nil {
		if len(allow) == 0 {
			return
		}
		wanted = make(map[int32]struct{}, len(allow))
		for _, id := range allow {
			wanted[id] = struct{}{}
		}
	}
	scan.ScanFunc(symbols, func(pos int, id int32) {
		if wanted != nil {
			if _, ok := wanted[id]; !ok {
				return
			}
		}
		l := scan.PatternLen(id)
		start := pos - l + 1
		leftmost := start - m.TypeWindow
		addWindow(scores, leftmost, m.TypeNgrams[id].Weights)
	})
}

func addDictionary(s *sentence.Sentence, m *model.Model, scores []int32) {
	if m.DictIndex == nil || len(m.Dictionary) == 0 {
		return
	}
	symbols := runesToSymbols(s.Chars())
	m.DictIndex.ScanFunc(symbols, func(pos int, id int32) {
		e := m.Dictionary[id]
		l := len(e.Word)
		start := pos - l + 1
		// the dictionary table anchors to the occurrence itself, not to
		// a window radius: weights[0..l] cover the boundary just before
		// the match through the boundary just after it.
		leftmost := start - 1
		addWindow(scores, leftmost, e.Weights)
	})
}
