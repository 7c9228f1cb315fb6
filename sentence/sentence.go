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

// Package sentence holds the per-call state the engine mutates during
// prediction: code points, their categories, a boundary score
// accumulator, decided labels and, once boundaries are decided, a
// token list. A Sentence is owned by its caller; the engine only
// touches its score and label arrays.
package sentence

import (
	"fmt"
	"io"
	"strings"

	"github.com/daac-tools/vaporetto/charclass"
	"github.com/daac-tools/vaporetto/verr"
)

// Label is the decided state of a boundary.
type Label uint8

const (
	Unknown Label = iota
	Break
	NoBreak
)

// Token is a half-open character range with optional per-tag-group
// values, attached after tag prediction (or carried over from
// annotated input).
type Token struct {
	Start, End int
	Tags       []string
}

// Text returns the token's characters joined back into a string.
func (t Token) Text(chars []rune) string {
	return string(chars[t.Start:t.End])
}

// Sentence is an ordered sequence of N code points plus N-1
// inter-character boundaries.
type Sentence struct {
	chars  []rune
	cats   []charclass.Category
	scores []int32
	labels []Label
	preset []bool

	// tagsByChar maps the index of a token's last character to tag
	// values parsed from a "/tag1/tag2" suffix in annotated input.
	tagsByChar map[int][]string

	// tokens caches the token list derived from the current labels.
	// Decide invalidates it; the tag predictor mutates the cached
	// slice in place so its assignments survive later Tokens calls.
	tokens []Token
}

// NumChars returns the number of code points in the sentence.
func (s *Sentence) NumChars() int { return len(s.chars) }

// NumBoundaries returns the number of inter-character boundaries (N-1).
func (s *Sentence) NumBoundaries() int { return len(s.scores) }

// Chars returns the sentence's code points. The slice must not be mutated.
func (s *Sentence) Chars() []rune { return s.chars }

// Categories returns the per-character category assigned at
// construction time. The slice must not be mutated.
func (s *Sentence) Categories() []charclass.Category { return s.cats }

// Scores returns the mutable boundary score accumulator.
func (s *Sentence) Scores() []int32 { return s.scores }

// Labels returns the mutable per-boundary decided label.
func (s *Sentence) Labels() []Label { return s.labels }

// IsPreset reports whether boundary i was pre-set by the input (and
// therefore must not be overwritten by the boundary decision pass).
func (s *Sentence) IsPreset(i int) bool { return s.preset[i] }

func containsLineTerminator(text string) bool {
	return strings.ContainsAny(text, "\n\r")
}

// FromRaw constructs a Sentence from plain text, classifying every
// character and initializing every boundary to Unknown. It fails with
// an InputError if text is empty or contains a line terminator.
func FromRaw(text string) (*Sentence, error) {
	if text == "" {
		return nil, verr.New(verr.InputError, "empty input")
	}
	if containsLineTerminator(text) {
		return nil, verr.New(verr.InputError, "input must not contain a line terminator")
	}
	chars := []rune(text)
	n := len(chars)
	s := &Sentence{
		chars:  chars,
		cats:   charclass.ClassifyAll(chars),
		scores: make([]int32, n-1),
		labels: make([]Label, n-1),
		preset: make([]bool, n-1),
	}
	return s, nil
}

// Decide sets boundary i to Break or NoBreak based on the
// accumulated score, unless the boundary was pre-set by the input.
func (s *Sentence) Decide() {
	for i, sc := range s.scores {
		if s.preset[i] {
			continue
		}
		if sc > 0 {
			s.labels[i] = Break
		} else {
			s.labels[i] = NoBreak
		}
	}
	s.tokens = nil
}

// Tokens derives the token list from the current labels: a Break
// boundary terminates a token, every other boundary state (NoBreak or
// still Unknown) keeps the run going. Tags parsed from annotated input
// are merged onto the token whose last character carried them. The
// list is built once per Decide and cached.
func (s *Sentence) Tokens() []Token {
	if s.tokens != nil {
		return s.tokens
	}
	n := len(s.chars)
	if n == 0 {
		return nil
	}
	tokens := make([]Token, 0, 4)
	start := 0
	for i := 0; i < len(s.labels); i++ {
		if s.labels[i] == Break {
			tokens = append(tokens, s.makeToken(start, i+1))
			start = i + 1
		}
	}
	tokens = append(tokens, s.makeToken(start, n))
	s.tokens = tokens
	return tokens
}

func (s *Sentence) makeToken(start, end int) Token {
	t := Token{Start: start, End: end}
	if tags, ok := s.tagsByChar[end-1]; ok {
		t.Tags = tags
	}
	return t
}

// SetTag assigns the class chosen for tag group groupIdx to token tok
// (a pointer into a slice returned by Tokens, or built inline by the
// tag predictor) by growing its Tags slice as needed.
func SetTag(t *Token, groupIdx int, class string) {
	for len(t.Tags) <= groupIdx {
		t.Tags = append(t.Tags, "")
	}
	t.Tags[groupIdx] = class
}

// WriteTokenized serializes the sentence to the human form: tokens
// separated by single spaces, Break boundaries rendered as the space,
// and any token tags rendered as a "/tag" suffix per group.
func (s *Sentence) WriteTokenized(w io.Writer) error {
	tokens := s.Tokens()
	for i, tok := range tokens {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, tok.Text(s.chars)); err != nil {
			return err
		}
		for _, tag := range tok.Tags {
			if tag == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "/%s", tag); err != nil {
				return err
			}
		}
	}
	return nil
}
