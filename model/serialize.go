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

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/daac-tools/vaporetto/verr"
)

var magic = [4]byte{'V', 'P', 'R', 'T'}

const formatVersion byte = 1

// Load reads a Model from its binary container: a magic prefix, a
// version byte, then header / char-ngram / type-ngram / dictionary /
// optional tag-submodel sections in that fixed order. The stream is
// assumed already decompressed; Zstandard framing is the caller's
// concern.
func Load(r io.Reader) (*Model, error) {
	br := &reader{r: bufio.NewReader(r)}

	var gotMagic [4]byte
	br.read(gotMagic[:])
	if br.err == nil && gotMagic != magic {
		return nil, verr.New(verr.ModelError, "bad magic prefix %q", gotMagic[:])
	}
	version := br.u8()
	if br.err == nil && version != formatVersion {
		return nil, verr.New(verr.ModelError, "unsupported model version %d", version)
	}

	m := &Model{}
	m.Bias = br.i32()
	m.CharWindow = int(br.i32())
	m.TypeWindow = int(br.i32())
	m.DictWindow = int(br.i32())
	_ = br.u8() // reserved feature-flag byte, informational only

	var err error
	m.CharNgrams, err = br.readNgramSection(2 * m.CharWindow - 1)
	if err != nil {
		return nil, err
	}
	m.TypeNgrams, err = br.readNgramSection(2 * m.TypeWindow - 1)
	if err != nil {
		return nil, err
	}
	m.Dictionary, err = br.readDictSection()
	if err != nil {
		return nil, err
	}

	hasTags := br.u8()
	if br.err != nil {
		return nil, verr.Wrap(verr.ModelError, br.err, "truncated model stream")
	}
	if hasTags != 0 {
		m.Tags, err = br.readTagModel()
		if err != nil {
			return nil, err
		}
	}
	if br.err != nil {
		return nil, verr.Wrap(verr.ModelError, br.err, "truncated model stream")
	}

	m.BuildCharIndex()
	m.BuildTypeIndex()
	m.BuildCharWiseTypeIndex()
	m.BuildDictIndex()
	m.BuildTagIndices()
	log.Debug().
		Int("charNgrams", len(m.CharNgrams)).
		Int("typeNgrams", len(m.TypeNgrams)).
		Int("dictWords", len(m.Dictionary)).
		Bool("tags", m.HasTags()).
		Msg("model loaded")
	return m, nil
}

func (br *reader) readNgramSection(expectedExtra int) ([]Entry, error) {
	count := br.i32()
	if br.err != nil {
		return nil, verr.Wrap(verr.ModelError, br.err, "truncated ngram section header")
	}
	out := make([]Entry, count)
	seen := make(map[string]struct{}, count)
	for i := range out {
		patLen := br.i32()
		pattern := make([]int32, patLen)
		for j := range pattern {
			pattern[j] = br.i32()
		}
		weightLen := br.i32()
		weights := make([]int16, weightLen)
		for j := range weights {
			weights[j] = br.i16()
		}
		if br.err != nil {
			return nil, verr.Wrap(verr.ModelError, br.err, "truncated ngram entry %d", i)
		}
		if int(weightLen) != int(patLen)+expectedExtra {
			return nil, verr.New(verr.ModelError, "ngram entry %d: weight vector length %d inconsistent with pattern length %d and window radius", i, weightLen, patLen)
		}
		key := patternKey(pattern)
		if _, dup := seen[key]; dup {
			return nil, verr.New(verr.ModelError, "duplicate pattern key in ngram table at entry %d", i)
		}
		seen[key] = struct{}{}
		out[i] = Entry{Pattern: pattern, Weights: weights}
	}
	return out, nil
}

func (br *reader) readDictSection() ([]DictEntry, error) {
	count := br.i32()
	if br.err != nil {
		return nil, verr.Wrap(verr.ModelError, br.err, "truncated dictionary section header")
	}
	out := make([]DictEntry, count)
	seen := make(map[string]struct{}, count)
	for i := range out {
		wordLen := br.i32()
		word := make([]rune, wordLen)
		for j := range word {
			word[j] = rune(br.i32())
		}
		weightLen := br.i32()
		weights := make([]int16, weightLen)
		for j := range weights {
			weights[j] = br.i16()
		}
		comment := string(br.bytesN(int(br.i32())))
		if br.err != nil {
			return nil, verr.Wrap(verr.ModelError, br.err, "truncated dictionary entry %d", i)
		}
		if int(weightLen) != int(wordLen)+1 {
			return nil, verr.New(verr.ModelError, "dictionary entry %d: weight vector length %d must equal word length+1 (%d)", i, weightLen, wordLen+1)
		}
		key := string(word)
		if _, dup := seen[key]; dup {
			return nil, verr.New(verr.ModelError, "duplicate word %q in dictionary table", key)
		}
		seen[key] = struct{}{}
		out[i] = DictEntry{Word: word, Weights: weights, Comment: comment}
	}
	return out, nil
}

func (br *reader) readTagModel() (*TagModel, error) {
	tm := &TagModel{}
	tm.LeftWindow = int(br.i32())
	tm.RightWindow = int(br.i32())
	groupCount := br.i32()
	tm.Groups = make([]TagGroup, groupCount)
	for gi := range tm.Groups {
		g := &tm.Groups[gi]
		g.Name = string(br.bytesN(int(br.i32())))
		classCount := int(br.i32())
		g.Classes = make([]string, classCount)
		for i := range g.Classes {
			g.Classes[i] = string(br.bytesN(int(br.i32())))
		}
		g.Bias = make([]int32, classCount)
		for i := range g.Bias {
			g.Bias[i] = br.i32()
		}
		var err error
		g.LeftPatterns, g.LeftWeights, err = br.readTagPatternTable(classCount)
		if err != nil {
			return nil, err
		}
		g.RightPatterns, g.RightWeights, err = br.readTagPatternTable(classCount)
		if err != nil {
			return nil, err
		}
		g.InsidePatterns, g.InsideWeights, err = br.readTagPatternTable(classCount)
		if err != nil {
			return nil, err
		}
	}
	if br.err != nil {
		return nil, verr.Wrap(verr.ModelError, br.err, "truncated tag submodel")
	}
	return tm, nil
}

func (br *reader) readTagPatternTable(classCount int) ([][]int32, [][]int32, error) {
	count := br.i32()
	patterns := make([][]int32, count)
	weights := make([][]int32, count)
	for i := range patterns {
		patLen := br.i32()
		pat := make([]int32, patLen)
		for j := range pat {
			pat[j] = br.i32()
		}
		row := make([]int32, classCount)
		for j := range row {
			row[j] = br.i32()
		}
		patterns[i] = pat
		weights[i] = row
	}
	if br.err != nil {
		return nil, nil, verr.Wrap(verr.ModelError, br.err, "truncated tag pattern table")
	}
	return patterns, weights, nil
}

func patternKey(pattern []int32) string {
	b := make([]byte, len(pattern)*4)
	for i, p := range pattern {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(p))
	}
	return string(b)
}

// reader wraps a bufio.Reader with sticky-error little-endian
// primitive reads so call sites can read a whole section without
// checking an error after every field; the first error is surfaced by
// Load once the section is fully read.
type reader struct {
	r   *bufio.Reader
	err error
}

func (br *reader) read(buf []byte) {
	if br.err != nil {
		return
	}
	_, br.err = io.ReadFull(br.r, buf)
}

func (br *reader) bytesN(n int) []byte {
	buf := make([]byte, n)
	br.read(buf)
	return buf
}

func (br *reader) u8() byte {
	var buf [1]byte
	br.read(buf[:])
	return buf[0]
}

func (br *reader) i16() int16 {
	var buf [2]byte
	br.read(buf[:])
	return int16(binary.LittleEndian.Uint16(buf[:]))
}

func (br *reader) i32() int32 {
	var buf [4]byte
	br.read(buf[:])
	return int32(binary.LittleEndian.Uint32(buf[:]))
}

// Save writes m back out in the same binary container Load reads.
func Save(w io.Writer, m *Model) error {
	bw := &writer{w: bufio.NewWriter(w)}
	bw.write(magic[:])
	bw.u8(formatVersion)
	bw.i32(m.Bias)
	bw.i32(int32(m.CharWindow))
	bw.i32(int32(m.TypeWindow))
	bw.i32(int32(m.DictWindow))
	bw.u8(0)

	bw.writeNgramSection(m.CharNgrams)
	bw.writeNgramSection(m.TypeNgrams)
	bw.writeDictSection(m.Dictionary)

	if m.Tags == nil {
		bw.u8(0)
	} else {
		bw.u8(1)
		bw.writeTagModel(m.Tags)
	}
	if bw.err != nil {
		return verr.Wrap(verr.ModelError, bw.err, "failed to write model")
	}
	return bw.w.Flush()
}

func (bw *writer) writeNgramSection(entries []Entry) {
	bw.i32(int32(len(entries)))
	for _, e := range entries {
		bw.i32(int32(len(e.Pattern)))
		for _, p := range e.Pattern {
			bw.i32(p)
		}
		bw.i32(int32(len(e.Weights)))
		for _, w := range e.Weights {
			bw.i16(w)
		}
	}
}

func (bw *writer) writeDictSection(entries []DictEntry) {
	bw.i32(int32(len(entries)))
	for _, e := range entries {
		bw.i32(int32(len(e.Word)))
		for _, r := range e.Word {
			bw.i32(int32(r))
		}
		bw.i32(int32(len(e.Weights)))
		for _, w := range e.Weights {
			bw.i16(w)
		}
		bw.i32(int32(len(e.Comment)))
		bw.write([]byte(e.Comment))
	}
}

func (bw *writer) writeTagModel(tm *TagModel) {
	bw.i32(int32(tm.LeftWindow))
	bw.i32(int32(tm.RightWindow))
	bw.i32(int32(len(tm.Groups)))
	for _, g := range tm.Groups {
		bw.i32(int32(len(g.Name)))
		bw.write([]byte(g.Name))
		bw.i32(int32(len(g.Classes)))
		for _, c := range g.Classes {
			bw.i32(int32(len(c)))
			bw.write([]byte(c))
		}
		for _, b := range g.Bias {
			bw.i32(b)
		}
		bw.writeTagPatternTable(g.LeftPatterns, g.LeftWeights)
		bw.writeTagPatternTable(g.RightPatterns, g.RightWeights)
		bw.writeTagPatternTable(g.InsidePatterns, g.InsideWeights)
	}
}

func (bw *writer) writeTagPatternTable(patterns [][]int32, weights [][]int32) {
	bw.i32(int32(len(patterns)))
	for i, p := range patterns {
		bw.i32(int32(len(p)))
		for _, s := range p {
			bw.i32(s)
		}
		for _, w := range weights[i] {
			bw.i32(w)
		}
	}
}

type writer struct {
	w   *bufio.Writer
	err error
}

func (bw *writer) write(buf []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(buf)
}

func (bw *writer) u8(v byte) { bw.write([]byte{v}) }

func (bw *writer) i16(v int16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	bw.write(buf[:])
}

func (bw *writer) i32(v int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	bw.write(buf[:])
}
