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

// Package dict edits a loaded model's dictionary table in place. It
// never touches the char-ngram or type-ngram tables; replacing the
// dictionary only rebuilds the dictionary automaton.
package dict

import (
	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"

	"github.com/daac-tools/vaporetto/model"
	"github.com/daac-tools/vaporetto/verr"
)

// Row is one dictionary entry in the editor's own representation --
// weights as plain int32 so CSV round-trips never lose the sign or
// clip silently before ReplaceDictionary validates them against the
// model's int16 storage.
type Row struct {
	Word    string
	Weights []int32
	Comment string
}

// dictKey orders and deduplicates Rows by word alone, mirroring
// cmd/udex's tokenFeats.Compare: the BinTree only needs to tell two
// entries apart, not rank them semantically.
type dictKey struct {
	row Row
}

func (k *dictKey) Compare(other collections.Comparable) int {
	o, ok := other.(*dictKey)
	if !ok {
		return -1
	}
	switch {
	case k.row.Word < o.row.Word:
		return -1
	case k.row.Word > o.row.Word:
		return 1
	default:
		return 0
	}
}

// DumpDictionary returns every dictionary entry of m as a Row, in the
// order the model stores them.
func DumpDictionary(m *model.Model) []Row {
	rows := make([]Row, len(m.Dictionary))
	for i, e := range m.Dictionary {
		weights := make([]int32, len(e.Weights))
		for j, w := range e.Weights {
			weights[j] = int32(w)
		}
		rows[i] = Row{Word: string(e.Word), Weights: weights, Comment: e.Comment}
	}
	return rows
}

// ReplaceDictionary validates rows, rejects duplicate words, converts
// weights to the model's int16 storage, rebuilds m's dictionary table
// and automaton, and leaves m untouched if validation fails.
func ReplaceDictionary(m *model.Model, rows []Row) error {
	tree := new(collections.BinTree[*dictKey])
	tree.UniqValues = true
	seen := map[string]struct{}{}
	for _, r := range rows {
		if len(r.Word) == 0 {
			return verr.New(verr.DictError, "dictionary row has an empty word")
		}
		wordLen := len([]rune(r.Word))
		if len(r.Weights) != wordLen+1 {
			return verr.New(verr.DictError, "word %q: weight vector has %d elements, want %d (len+1)", r.Word, len(r.Weights), wordLen+1)
		}
		for _, w := range r.Weights {
			if w < -32768 || w > 32767 {
				return verr.New(verr.DictError, "word %q: weight %d out of int16 range", r.Word, w)
			}
		}
		if _, dup := seen[r.Word]; dup {
			return verr.New(verr.DictError, "duplicate word %q in replacement dictionary", r.Word)
		}
		seen[r.Word] = struct{}{}
		tree.Add(&dictKey{row: r})
	}

	keys := tree.ToSlice()
	entries := make([]model.DictEntry, len(keys))
	for i, k := range keys {
		weights := make([]int16, len(k.row.Weights))
		for j, w := range k.row.Weights {
			weights[j] = int16(w)
		}
		entries[i] = model.DictEntry{
			Word:    []rune(k.row.Word),
			Weights: weights,
			Comment: k.row.Comment,
		}
	}
	m.Dictionary = entries
	m.BuildDictIndex()
	log.Debug().Int("words", len(entries)).Msg("dictionary replaced")
	return nil
}
