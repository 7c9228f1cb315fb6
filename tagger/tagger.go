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

// Package tagger predicts per-token classification tags (part of
// speech, and similar per-token labels) from the character windows
// surrounding a decided token and the token's own characters. It runs
// strictly after Sentence.Decide: unlike boundary scoring it operates
// per token, not per boundary.
package tagger

import (
	"github.com/daac-tools/vaporetto/model"
	"github.com/daac-tools/vaporetto/pattern"
	"github.com/daac-tools/vaporetto/sentence"
	"github.com/daac-tools/vaporetto/verr"
)

// Predict fills in t.Tags for every token of s, one class per tag
// group in tm. It fails with a TagError only if tm is nil -- callers
// (the root Predictor) are expected to check HasTags before calling,
// this guards direct callers of the package too.
func Predict(s *sentence.Sentence, tm *model.TagModel) error {
	if tm == nil {
		return verr.New(verr.TagError, "tag prediction requested but the model carries no tag submodel")
	}
	chars := runesToSymbols(s.Chars())
	tokens := s.Tokens()
	for ti := range tokens {
		tok := &tokens[ti]
		for gi := range tm.Groups {
			class := predictClass(&tm.Groups[gi], chars, tok.Start, tok.End, tm.LeftWindow, tm.RightWindow)
			sentence.SetTag(tok, gi, class)
		}
	}
	return nil
}

func runesToSymbols(rs []rune) []pattern.Symbol {
	out := make([]pattern.Symbol, len(rs))
	for i, r := range rs {
		out[i] = pattern.Symbol(r)
	}
	return out
}

// predictClass scores every class of g by scanning three windows: the
// leftWindow characters before the token against g.LeftIndex, the
// rightWindow characters after it against g.RightIndex, and the
// token's own characters against g.InsideIndex. Argmax with ties
// broken by class-list order, which keeps results stable across runs.
func predictClass(g *model.TagGroup, chars []pattern.Symbol, start, end, leftWindow, rightWindow int) string {
	scores := make([]int32, len(g.Classes))
	copy32(scores, g.Bias)

	leftFrom := start - leftWindow
	if leftFrom < 0 {
		leftFrom = 0
	}
	if g.LeftIndex != nil {
		g.LeftIndex.ScanFunc(chars[leftFrom:start], func(pos int, id int32) {
			addRow(scores, g.LeftWeights[id])
		})
	}

	rightTo := end + rightWindow
	if rightTo > len(chars) {
		rightTo = len(chars)
	}
	if g.RightIndex != nil {
		g.RightIndex.ScanFunc(chars[end:rightTo], func(pos int, id int32) {
			addRow(scores, g.RightWeights[id])
		})
	}

	if g.InsideIndex != nil {
		g.InsideIndex.ScanFunc(chars[start:end], func(pos int, id int32) {
			addRow(scores, g.InsideWeights[id])
		})
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if len(g.Classes) == 0 {
		return ""
	}
	return g.Classes[best]
}

func copy32(dst []int32, src []int32) {
	if src == nil {
		return
	}
	copy(dst, src)
}

func addRow(scores []int32, row []int32) {
	for i, v := range row {
		scores[i] += v
	}
}
