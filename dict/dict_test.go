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

package dict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daac-tools/vaporetto/model"
	"github.com/daac-tools/vaporetto/verr"
)

func TestReplaceAndDumpRoundTrip(t *testing.T) {
	m := &model.Model{CharWindow: 1, TypeWindow: 1}
	rows := []Row{
		{Word: "東京", Weights: []int32{1, 2, 3}, Comment: "place"},
		{Word: "大阪", Weights: []int32{4, 5, 6}, Comment: ""},
	}
	require.NoError(t, ReplaceDictionary(m, rows))
	require.Len(t, m.Dictionary, 2)

	dumped := DumpDictionary(m)
	words := map[string]Row{}
	for _, r := range dumped {
		words[r.Word] = r
	}
	assert.Equal(t, []int32{1, 2, 3}, words["東京"].Weights)
	assert.Equal(t, "place", words["東京"].Comment)
}

func TestReplaceRejectsDuplicateWord(t *testing.T) {
	m := &model.Model{}
	rows := []Row{
		{Word: "ab", Weights: []int32{1, 2, 3}},
		{Word: "ab", Weights: []int32{4, 5, 6}},
	}
	err := ReplaceDictionary(m, rows)
	require.Error(t, err)
	kind, ok := verr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, verr.DictError, kind)
}

func TestReplaceRejectsBadWeightLength(t *testing.T) {
	m := &model.Model{}
	rows := []Row{{Word: "abc", Weights: []int32{1, 2}}}
	err := ReplaceDictionary(m, rows)
	require.Error(t, err)
}

func TestParseCSVRoundTrip(t *testing.T) {
	in := "abc,1 2 3 4,a sample word\nxy,5 6 7,\n"
	rows, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "abc", rows[0].Word)
	assert.Equal(t, []int32{1, 2, 3, 4}, rows[0].Weights)
	assert.Equal(t, "a sample word", rows[0].Comment)

	var out strings.Builder
	require.NoError(t, WriteCSV(&out, rows))
	rows2, err := ParseCSV(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.Equal(t, rows, rows2)
}

func TestParseCSVRejectsMalformedRow(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("onlyoneword\n"))
	require.Error(t, err)
}
