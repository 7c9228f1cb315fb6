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

// Package config holds the single configuration record the
// predictor is built from. Cache, fix-weight-length, char-wise PMA
// and tag prediction are independent build-time knobs that change
// internal data shapes but never change predictions; they are routed
// through this one record instead of conditionals scattered through
// the hot loop.
package config

import (
	"os"

	"github.com/bytedance/sonic"
)

// PredictorConfig gates the optional engine behaviors.
type PredictorConfig struct {
	// PredictTags enables the tag-prediction pass. Requires the loaded
	// model to carry a tag submodel, otherwise NewPredictor fails with
	// a TagError.
	PredictTags bool `json:"predictTags"`

	// UseTypePairCache resolves type-ngram patterns of length 1 and 2
	// through lookup tables keyed by a character's category or by a pair
	// of adjacent categories; longer type-ngram patterns still go
	// through the automaton scan. Predictions are bit-identical either
	// way.
	UseTypePairCache bool `json:"useTypePairCache"`

	// FixWeightLength pads every char-ngram weight vector with zeros to
	// a common length, that of the longest char-ngram weight vector in
	// the model. Predictions are bit-identical either way.
	FixWeightLength bool `json:"fixWeightLength"`

	// CharWisePMA builds the type-ngram automaton over the code-point
	// alphabet instead of the category alphabet. Predictions are
	// bit-identical either way; this only changes cache behavior on
	// highly repetitive category runs.
	CharWisePMA bool `json:"charWisePMA"`
}

// Default returns the scanning-path configuration: no caches, no
// padding, category-keyed type automaton, tags off.
func Default() PredictorConfig {
	return PredictorConfig{}
}

// Load reads a PredictorConfig from a JSON file the way cnf.LoadConf
// reads a VTEConf: read-then-unmarshal, no defaults silently filled in.
func Load(path string) (PredictorConfig, error) {
	var conf PredictorConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := sonic.Unmarshal(raw, &conf); err != nil {
		return conf, err
	}
	return conf, nil
}
