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

// Package model holds the immutable, loaded weight model: the
// char-ngram and type-ngram pattern tables and their automata, the
// dictionary table, the bias and window radii, and an optional tag
// submodel. A Model is constructed once from serialized bytes and is
// safe to share across any number of concurrent predictions.
package model

import "github.com/daac-tools/vaporetto/pattern"

// Entry is one pattern and its weight vector. The weight vector
// length is exactly len(Pattern) + 2*window - 1 for char- and
// type-ngram entries (window = CharWindow or TypeWindow respectively),
// enforced at load time.
type Entry struct {
	Pattern []int32
	Weights []int16
}

// DictEntry is one dictionary (word-pattern) entry. Its weight vector
// always has exactly len(Word)+1 elements, one per internal-or-edge
// boundary of an occurrence of Word: dictionary contributions bypass
// the generic window-radius convolution the char/type ngram tables
// use.
type DictEntry struct {
	Word    []rune
	Weights []int16
	Comment string
}

// TagGroup is one classification task (e.g. part of speech): a fixed
// class list and three pattern tables -- one scanned over the window
// left of the token, one over the window right of it, one over the
// token's own characters -- plus a per-class bias.
type TagGroup struct {
	Name    string
	Classes []string

	LeftPatterns [][]int32
	// LeftWeights[patternID] is a dense len(Classes)-element row.
	LeftWeights [][]int32
	LeftIndex   *pattern.Index

	RightPatterns [][]int32
	RightWeights  [][]int32
	RightIndex    *pattern.Index

	InsidePatterns [][]int32
	InsideWeights  [][]int32
	InsideIndex    *pattern.Index

	Bias []int32
}

// TagModel is the optional tag-prediction submodel.
type TagModel struct {
	LeftWindow  int
	RightWindow int
	Groups      []TagGroup
}

// Model is the full, immutable loaded model.
type Model struct {
	Bias       int32
	CharWindow int
	TypeWindow int
	DictWindow int

	CharNgrams []Entry
	TypeNgrams []Entry
	Dictionary []DictEntry

	CharIndex         *pattern.Index
	TypeIndex         *pattern.Index // category-keyed
	TypeIndexCharWise *pattern.Index // representative-rune-keyed variant, see BuildCharWiseTypeIndex
	DictIndex         *pattern.Index

	Tags *TagModel
}

// HasTags reports whether the model carries a tag submodel.
func (m *Model) HasTags() bool { return m.Tags != nil }

// categoryRune gives every charclass.Category a representative code
// point from the private-use area so the char-wise automaton variant
// can scan the category stream through the same rune-keyed machinery
// as the char-ngram index. A pure relabeling of the same partition,
// so it accepts exactly what the category-keyed automaton accepts.
var categoryRune = [...]rune{
	0xE000, // Other
	0xE001, // Digit
	0xE002, // Roman
	0xE003, // Hiragana
	0xE004, // Katakana
	0xE005, // Han
}

// CategoryRune returns the representative code point used to encode
// category c in the char-wise automaton variant.
func CategoryRune(c int) rune { return categoryRune[c] }
