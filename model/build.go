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

package model

import "github.com/daac-tools/vaporetto/pattern"

// buildIndex adds every pattern in patterns to a fresh Builder and
// returns the compacted automaton. The caller is responsible for
// checking the returned index's pattern ids line up positionally
// with patterns (Builder.Add assigns ids in call order starting at 0).
func buildIndex(patterns [][]int32) *pattern.Index {
	b := pattern.NewBuilder()
	for _, p := range patterns {
		b.Add(p)
	}
	return b.Build()
}

// BuildCharIndex compacts the model's char-ngram patterns into a
// rune-keyed double-array automaton.
func (m *Model) BuildCharIndex() {
	patterns := make([][]int32, len(m.CharNgrams))
	for i, e := range m.CharNgrams {
		patterns[i] = e.Pattern
	}
	m.CharIndex = buildIndex(patterns)
}

// BuildTypeIndex compacts the model's type-ngram patterns (sequences
// of charclass.Category values, already stored as int32) into a
// category-keyed double-array automaton.
func (m *Model) BuildTypeIndex() {
	patterns := make([][]int32, len(m.TypeNgrams))
	for i, e := range m.TypeNgrams {
		patterns[i] = e.Pattern
	}
	m.TypeIndex = buildIndex(patterns)
}

// BuildCharWiseTypeIndex compacts the same type-ngram patterns into a
// rune-keyed automaton by relabeling each category through
// CategoryRune. The caller must feed CategoryRune-relabeled input
// (not raw categories) into this index's ScanFunc.
func (m *Model) BuildCharWiseTypeIndex() {
	patterns := make([][]int32, len(m.TypeNgrams))
	for i, e := range m.TypeNgrams {
		relabeled := make([]int32, len(e.Pattern))
		for j, cat := range e.Pattern {
			relabeled[j] = int32(CategoryRune(int(cat)))
		}
		patterns[i] = relabeled
	}
	m.TypeIndexCharWise = buildIndex(patterns)
}

// BuildDictIndex compacts the dictionary's word patterns into a
// rune-keyed double-array automaton.
func (m *Model) BuildDictIndex() {
	patterns := make([][]int32, len(m.Dictionary))
	for i, e := range m.Dictionary {
		patterns[i] = runesToInt32(e.Word)
	}
	m.DictIndex = buildIndex(patterns)
}

func runesToInt32(rs []rune) []int32 {
	out := make([]int32, len(rs))
	for i, r := range rs {
		out[i] = int32(r)
	}
	return out
}

// BuildTagIndices compacts every tag group's left/right pattern
// tables into their own automata. Safe to call on a nil TagModel.
func (m *Model) BuildTagIndices() {
	if m.Tags == nil {
		return
	}
	for i := range m.Tags.Groups {
		g := &m.Tags.Groups[i]
		g.LeftIndex = buildIndex(g.LeftPatterns)
		g.RightIndex = buildIndex(g.RightPatterns)
		g.InsideIndex = buildIndex(g.InsidePatterns)
	}
}
