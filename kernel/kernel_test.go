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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/model"
	"github.com/daac-tools/vaporetto/sentence"
)

func runes(s string) []int32 {
	out := make([]int32, 0, len(s))
	for _, r := range s {
		out = append(out, int32(r))
	}
	return out
}

// buildModel assembles a tiny hand-written model: one char-ngram
// pattern, one type-ngram pattern of length 1 and one of length 3 (too
// long for the pair cache), and one dictionary word.
func buildModel(t *testing.T) *model.Model {
	t.Helper()
	m := &model.Model{
		Bias:       0,
		CharWindow: 2,
		TypeWindow: 2,
		DictWindow: 0,
		CharNgrams: []model.Entry{
			{Pattern: runes("ab"), Weights: []int16{1, 2, 3, 4, 5}}, // len 2, window 2 -> len 2+2*2-1=5
		},
		TypeNgrams: []model.Entry{
			{Pattern: []int32{int32(mustCat("Roman"))}, Weights: []int16{10, 20, 30, 40}}, // len 1 -> 1+2*2-1=4
			{Pattern: []int32{int32(mustCat("Roman")), int32(mustCat("Roman")), int32(mustCat("Roman"))}, Weights: []int16{1, 1, 1, 1, 1, 1}}, // len 3, window 2 -> 3+2*2-1=6
		},
		Dictionary: []model.DictEntry{
			{Word: []rune("cd"), Weights: []int16{100, 200, 300}}, // len 2 -> len+1=3
		},
	}
	m.BuildCharIndex()
	m.BuildTypeIndex()
	m.BuildCharWiseTypeIndex()
	m.BuildDictIndex()
	return m
}

func mustCat(name string) int {
	switch name {
	case "Roman":
		return 2
	default:
		return 0
	}
}

func TestAccumulateCharNgramWindow(t *testing.T) {
	m := buildModel(t)
	s, err := sentence.FromRaw("zabz")
	require.NoError(t, err)
	Accumulate(s, m, nil, config.Default())
	// "ab" ends at char index 2 (0-indexed), start=1, leftmost=1-2=-1.
	// weights [1,2,3,4,5] land on boundaries -1,0,1,2,3; boundary -1 is
	// discarded (3 boundaries total: 0,1,2 for a 4-char sentence).
	assert.GreaterOrEqual(t, s.Scores()[0], int32(2))
}

func TestAccumulateDictionaryAnchor(t *testing.T) {
	m := buildModel(t)
	s, err := sentence.FromRaw("xcdx")
	require.NoError(t, err)
	Accumulate(s, m, nil, config.Default())
	// "cd" occurs at chars[1:3], start=1, leftmost=start-1=0: weights
	// [100,200,300] land on boundaries 0,1,2 exactly (3 boundaries total).
	require.Len(t, s.Scores(), 3)
	assert.Equal(t, int32(100), s.Scores()[0])
	assert.Equal(t, int32(200), s.Scores()[1])
	assert.Equal(t, int32(300), s.Scores()[2])
}

func TestAccumulateTypePairCacheMatchesScan(t *testing.T) {
	m := buildModel(t)

	sScan, err := sentence.FromRaw("abcxyz")
	require.NoError(t, err)
	Accumulate(sScan, m, nil, config.Default())

	cache := BuildCache(m, config.PredictorConfig{UseTypePairCache: true})
	sCache, err := sentence.FromRaw("abcxyz")
	require.NoError(t, err)
	Accumulate(sCache, m, cache, config.PredictorConfig{UseTypePairCache: true})

	assert.Equal(t, sScan.Scores(), sCache.Scores())
}

func TestAccumulateFixedWeightLengthMatchesScan(t *testing.T) {
	m := buildModel(t)

	sScan, err := sentence.FromRaw("zabz")
	require.NoError(t, err)
	Accumulate(sScan, m, nil, config.Default())

	cache := BuildCache(m, config.PredictorConfig{FixWeightLength: true})
	sFixed, err := sentence.FromRaw("zabz")
	require.NoError(t, err)
	Accumulate(sFixed, m, cache, config.PredictorConfig{FixWeightLength: true})

	assert.Equal(t, sScan.Scores(), sFixed.Scores())
}

func TestAccumulateCharWisePMAMatchesScan(t *testing.T) {
	m := buildModel(t)

	sScan, err := sentence.FromRaw("abcxyz")
	require.NoError(t, err)
	Accumulate(sScan, m, nil, config.Default())

	sCharWise, err := sentence.FromRaw("abcxyz")
	require.NoError(t, err)
	Accumulate(sCharWise, m, nil, config.PredictorConfig{CharWisePMA: true})

	assert.Equal(t, sScan.Scores(), sCharWise.Scores())
}

func TestAccumulateShortInputTruncatesSilently(t *testing.T) {
	m := buildModel(t)
	// a single "ab" sentence has only 1 boundary; the char-ngram window
	// wants to write 5 boundaries -- everything outside [0,0] must be
	// discarded rather than panicking or erroring.
	s, err := sentence.FromRaw("ab")
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		Accumulate(s, m, nil, config.Default())
	})
	require.Len(t, s.Scores(), 1)
}

func TestAccumulateRespectsPresetLabels(t *testing.T) {
	s, err := sentence.FromAnnotated("a-b c")
	require.NoError(t, err)
	m := &model.Model{CharWindow: 1, TypeWindow: 1}
	m.BuildCharIndex()
	m.BuildTypeIndex()
	m.BuildCharWiseTypeIndex()
	m.BuildDictIndex()
	Accumulate(s, m, nil, config.Default())
	assert.True(t, s.IsPreset(0))
	assert.Equal(t, sentence.NoBreak, s.Labels()[0])
}
