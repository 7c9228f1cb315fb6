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

package library

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/fs"
)

// InputFormat selects how batch input lines are parsed.
type InputFormat string

const (
	// FormatRaw treats every line as plain unsegmented text.
	FormatRaw InputFormat = "raw"
	// FormatAnnotated treats every line as partially annotated text
	// ('|', '-' and space markers); preset boundaries are honored.
	FormatAnnotated InputFormat = "annotated"
)

// Conf describes one batch tokenization run: which model to load,
// which files to process and how to parse them.
type Conf struct {
	ModelPath string `json:"modelPath"`

	// InputPath names a single file or a directory whose regular files
	// are all processed. Mutually exclusive with InputPaths.
	InputPath  string   `json:"inputPath"`
	InputPaths []string `json:"inputPaths"`

	// OutputPath receives the tokenized lines; empty means stdout.
	OutputPath string `json:"outputPath"`

	Format    InputFormat            `json:"format"`
	Predictor config.PredictorConfig `json:"predictor"`
}

// LoadConf reads a Conf from a JSON file.
func LoadConf(path string) (*Conf, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load conf %s: %w", path, err)
	}
	var conf Conf
	if err := sonic.Unmarshal(raw, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse conf %s: %w", path, err)
	}
	if conf.Format == "" {
		conf.Format = FormatRaw
	}
	return &conf, nil
}

// resolveInputFiles expands the conf's input specification into a
// concrete file list.
func resolveInputFiles(conf *Conf) ([]string, error) {
	if conf.InputPath != "" && len(conf.InputPaths) > 0 {
		return nil, fmt.Errorf("cannot use inputPath and inputPaths at the same time")
	}
	switch {
	case conf.InputPath != "" && fs.IsFile(conf.InputPath):
		return []string{conf.InputPath}, nil
	case conf.InputPath != "" && fs.IsDir(conf.InputPath):
		return fs.ListFilesInDir(conf.InputPath)
	case len(conf.InputPaths) > 0 && fs.AllFilesExist(conf.InputPaths):
		return conf.InputPaths, nil
	}
	return nil, fmt.Errorf("neither inputPath nor inputPaths provide a valid data source")
}
