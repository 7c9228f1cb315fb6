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

package vaporetto

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/dict"
	"github.com/daac-tools/vaporetto/model"
)

func tinyModel() *model.Model {
	m := &model.Model{
		Bias:       1,
		CharWindow: 1,
		TypeWindow: 1,
		CharNgrams: []model.Entry{
			{Pattern: []int32{'a'}, Weights: []int16{5, 5}},
		},
	}
	m.BuildCharIndex()
	m.BuildTypeIndex()
	m.BuildCharWiseTypeIndex()
	m.BuildDictIndex()
	return m
}

func TestNewPredictorRejectsTagsWithoutSubmodel(t *testing.T) {
	m := tinyModel()
	_, err := NewPredictor(m, config.PredictorConfig{PredictTags: true})
	require.Error(t, err)
}

func TestTokenize(t *testing.T) {
	m := tinyModel()
	p, err := NewPredictor(m, config.Default())
	require.NoError(t, err)

	s, err := p.Tokenize("cabc")
	require.NoError(t, err)
	assert.Equal(t, 4, s.NumChars())
}

// TestDictionaryEditChangesSegmentation mirrors the editor workflow:
// a model that keeps "abc" whole starts splitting around 'b' once a
// dictionary row with strong break weights is inserted.
func TestDictionaryEditChangesSegmentation(t *testing.T) {
	m := &model.Model{CharWindow: 1, TypeWindow: 1}
	m.BuildCharIndex()
	m.BuildTypeIndex()
	m.BuildCharWiseTypeIndex()
	m.BuildDictIndex()
	p, err := NewPredictor(m, config.Default())
	require.NoError(t, err)

	s, err := p.Tokenize("abc")
	require.NoError(t, err)
	var before strings.Builder
	require.NoError(t, s.WriteTokenized(&before))
	assert.Equal(t, "abc", before.String())

	require.NoError(t, dict.ReplaceDictionary(m, []dict.Row{
		{Word: "b", Weights: []int32{10, 10}, Comment: "forced split"},
	}))
	p2, err := NewPredictor(m, config.Default())
	require.NoError(t, err)
	s2, err := p2.Tokenize("abc")
	require.NoError(t, err)
	var after strings.Builder
	require.NoError(t, s2.WriteTokenized(&after))
	assert.Equal(t, "a b c", after.String())
}

// TestDictionaryDumpReplaceRoundTrip checks replace(dump(M)) leaves
// predictions unchanged on a model whose dictionary does real work.
func TestDictionaryDumpReplaceRoundTrip(t *testing.T) {
	m := tinyModel()
	require.NoError(t, dict.ReplaceDictionary(m, []dict.Row{
		{Word: "bc", Weights: []int32{-100, 3, -100}},
		{Word: "ca", Weights: []int32{2, -7, 2}},
	}))
	p, err := NewPredictor(m, config.Default())
	require.NoError(t, err)
	s, err := p.Tokenize("cabcab")
	require.NoError(t, err)
	want := append([]int32(nil), s.Scores()...)

	require.NoError(t, dict.ReplaceDictionary(m, dict.DumpDictionary(m)))
	p2, err := NewPredictor(m, config.Default())
	require.NoError(t, err)
	s2, err := p2.Tokenize("cabcab")
	require.NoError(t, err)
	assert.Equal(t, want, s2.Scores())
	assert.Equal(t, s.Labels(), s2.Labels())
}

func TestPredictorConcurrentUse(t *testing.T) {
	m := tinyModel()
	p, err := NewPredictor(m, config.Default())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Tokenize("cabcabc")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
