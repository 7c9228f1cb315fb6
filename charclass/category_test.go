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

package charclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDeterministic(t *testing.T) {
	cases := []struct {
		r    rune
		want Category
	}{
		{'0', Digit},
		{'9', Digit},
		{'A', Roman},
		{'z', Roman},
		{0xFF21, Roman}, // full-width 'A'
		{'あ', Hiragana},
		{'ん', Hiragana},
		{'ア', Katakana},
		{'ヴ', Katakana},
		{0x30FC, Katakana}, // long sound mark
		{'外', Han},
		{'国', Han},
		{'。', Other},
		{' ', Other},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.r), "rune %q", c.r)
	}
}

func TestClassifyIsPure(t *testing.T) {
	for i := 0; i < 1000; i++ {
		assert.Equal(t, Classify('外'), Classify('外'))
	}
}

func TestClassifyAll(t *testing.T) {
	got := ClassifyAll([]rune("外1a"))
	assert.Equal(t, []Category{Han, Digit, Roman}, got)
}
