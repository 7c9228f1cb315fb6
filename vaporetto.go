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

// Package vaporetto is the engine's public surface: load a model once,
// build a Predictor from it and a chosen configuration, then predict
// any number of Sentences concurrently.
package vaporetto

import (
	"io"

	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/kernel"
	"github.com/daac-tools/vaporetto/model"
	"github.com/daac-tools/vaporetto/sentence"
	"github.com/daac-tools/vaporetto/tagger"
	"github.com/daac-tools/vaporetto/verr"
)

// LoadModel reads a binary model from r. The stream must already be
// decompressed.
func LoadModel(r io.Reader) (*model.Model, error) {
	return model.Load(r)
}

// SaveModel writes m back out in the same binary container LoadModel reads.
func SaveModel(w io.Writer, m *model.Model) error {
	return model.Save(w, m)
}

// Predictor pairs an immutable Model with the build-time Cache its
// PredictorConfig derives. A Predictor is safe for concurrent use: its
// only mutable state lives in the Sentence each call is given.
type Predictor struct {
	model *model.Model
	cfg   config.PredictorConfig
	cache *kernel.Cache
}

// NewPredictor builds a Predictor from m under cfg. It fails with a
// TagError immediately if cfg.PredictTags is set but m carries no tag
// submodel, rather than deferring that failure to the first Predict call.
func NewPredictor(m *model.Model, cfg config.PredictorConfig) (*Predictor, error) {
	if cfg.PredictTags && !m.HasTags() {
		return nil, verr.New(verr.TagError, "tag prediction requested but the loaded model carries no tag submodel")
	}
	return &Predictor{
		model: m,
		cfg:   cfg,
		cache: kernel.BuildCache(m, cfg),
	}, nil
}

// Predict scores every boundary of s, decides Break/NoBreak (honoring
// any preset labels), and -- if the Predictor was built with
// PredictTags -- assigns per-token tags. It never fails on a
// well-formed Sentence against the Predictor's Model.
func (p *Predictor) Predict(s *sentence.Sentence) error {
	kernel.Accumulate(s, p.model, p.cache, p.cfg)
	if p.cfg.PredictTags {
		return tagger.Predict(s, p.model.Tags)
	}
	return nil
}

// Tokenize is a convenience wrapper: it builds a Sentence from raw
// text and predicts it in one call.
func (p *Predictor) Tokenize(text string) (*sentence.Sentence, error) {
	s, err := sentence.FromRaw(text)
	if err != nil {
		return nil, err
	}
	if err := p.Predict(s); err != nil {
		return nil, err
	}
	return s, nil
}
