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

package sentence

import (
	"github.com/daac-tools/vaporetto/charclass"
	"github.com/daac-tools/vaporetto/textfmt"
	"github.com/daac-tools/vaporetto/verr"
)

// FromAnnotated parses the partial-annotation training/editing
// syntax: between every two characters sits exactly one
// marker, '|' for Break, '-' for NoBreak, ' ' for Unknown, and any
// character may be followed by one or more "/tag" suffixes that
// attach to the token ending at that character once boundaries are
// decided.
func FromAnnotated(text string) (*Sentence, error) {
	if text == "" {
		return nil, verr.New(verr.InputError, "empty input")
	}
	if err := textfmt.RejectLineTerminators(text); err != nil {
		return nil, err
	}
	runes := []rune(text)

	isMarker := func(r rune) bool { return r == '|' || r == '-' || r == ' ' }

	pos := 0
	if isMarker(runes[0]) || runes[0] == '/' {
		return nil, verr.New(verr.InputError, "annotated input must start with a character, not a marker")
	}
	chars := []rune{runes[0]}
	labels := make([]Label, 0, len(runes)/2)
	preset := make([]bool, 0, len(runes)/2)
	tagsByChar := make(map[int][]string)
	pos = 1

	for pos < len(runes) {
		r := runes[pos]
		switch {
		case r == '/':
			pos++
			start := pos
			for pos < len(runes) && runes[pos] != '/' && !isMarker(runes[pos]) {
				pos++
			}
			if pos == start {
				return nil, verr.New(verr.InputError, "empty tag in annotated input")
			}
			tag := string(runes[start:pos])
			idx := len(chars) - 1
			tagsByChar[idx] = append(tagsByChar[idx], tag)

		case isMarker(r):
			pos++
			if pos >= len(runes) {
				return nil, verr.New(verr.InputError, "annotated input ends with a dangling marker")
			}
			nc := runes[pos]
			if isMarker(nc) || nc == '/' {
				return nil, verr.New(verr.InputError, "annotated input has two markers in a row")
			}
			switch r {
			case '|':
				labels = append(labels, Break)
				preset = append(preset, true)
			case '-':
				labels = append(labels, NoBreak)
				preset = append(preset, true)
			default: // ' '
				labels = append(labels, Unknown)
				preset = append(preset, false)
			}
			chars = append(chars, nc)
			pos++

		default:
			return nil, verr.New(verr.InputError, "expected a boundary marker ('|', '-' or ' ') at position %d", pos)
		}
	}

	s := &Sentence{
		chars:      chars,
		cats:       charclass.ClassifyAll(chars),
		scores:     make([]int32, len(labels)),
		labels:     labels,
		preset:     preset,
		tagsByChar: tagsByChar,
	}
	return s, nil
}

// FromTokenized parses the full-annotation training form: tokens
// separated by single spaces, each optionally
// followed by "/tag" suffixes. Every boundary is preset -- Break
// between tokens, NoBreak inside them -- so prediction against such a
// sentence changes nothing.
func FromTokenized(text string) (*Sentence, error) {
	if text == "" {
		return nil, verr.New(verr.InputError, "empty input")
	}
	if err := textfmt.RejectLineTerminators(text); err != nil {
		return nil, err
	}
	runes := []rune(text)

	var chars []rune
	var labels []Label
	tagsByChar := make(map[int][]string)
	inToken := false

	pos := 0
	for pos < len(runes) {
		switch r := runes[pos]; r {
		case ' ':
			if !inToken {
				return nil, verr.New(verr.InputError, "tokenized input has a leading, trailing or doubled space")
			}
			labels = append(labels, Break)
			inToken = false
			pos++

		case '/':
			if !inToken {
				return nil, verr.New(verr.InputError, "tag suffix without a preceding token")
			}
			pos++
			start := pos
			for pos < len(runes) && runes[pos] != '/' && runes[pos] != ' ' {
				pos++
			}
			if pos == start {
				return nil, verr.New(verr.InputError, "empty tag in tokenized input")
			}
			idx := len(chars) - 1
			tagsByChar[idx] = append(tagsByChar[idx], string(runes[start:pos]))

		default:
			if inToken {
				labels = append(labels, NoBreak)
			}
			chars = append(chars, r)
			inToken = true
			pos++
		}
	}
	if !inToken {
		return nil, verr.New(verr.InputError, "tokenized input ends with a trailing space")
	}

	preset := make([]bool, len(labels))
	for i := range preset {
		preset[i] = true
	}
	s := &Sentence{
		chars:      chars,
		cats:       charclass.ClassifyAll(chars),
		scores:     make([]int32, len(labels)),
		labels:     labels,
		preset:     preset,
		tagsByChar: tagsByChar,
	}
	return s, nil
}
