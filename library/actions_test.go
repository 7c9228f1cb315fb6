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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daac-tools/vaporetto"
	"github.com/daac-tools/vaporetto/model"
)

func writeTestModel(t *testing.T, dir string) string {
	t.Helper()
	m := &model.Model{
		Bias:       1,
		CharWindow: 1,
		TypeWindow: 1,
		CharNgrams: []model.Entry{
			{Pattern: []int32{'a'}, Weights: []int16{5, 5}},
		},
	}
	path := filepath.Join(dir, "model.bin")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, vaporetto.SaveModel(f, m))
	return path
}

func TestTokenizeFiles(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeTestModel(t, dir)
	inPath := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(inPath, []byte("cabc\ncabc\n"), 0o644))
	outPath := filepath.Join(dir, "out.txt")

	conf := &Conf{
		ModelPath:  modelPath,
		InputPath:  inPath,
		OutputPath: outPath,
	}
	statusChan, err := TokenizeFiles(context.Background(), conf)
	require.NoError(t, err)
	var lines int
	for status := range statusChan {
		require.NoError(t, status.Error)
		lines = status.ProcessedLines
	}
	assert.Equal(t, 2, lines)

	// bias 1 plus the 'a' ngram weights drive every boundary positive
	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "c a b c\nc a b c\n", string(out))
}

func TestTokenizeFilesDirInput(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeTestModel(t, dir)
	inDir := filepath.Join(dir, "in")
	require.NoError(t, os.Mkdir(inDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "a.txt"), []byte("ca\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "b.txt"), []byte("ca\n"), 0o644))

	conf := &Conf{
		ModelPath:  modelPath,
		InputPath:  inDir,
		OutputPath: filepath.Join(dir, "out.txt"),
	}
	statusChan, err := TokenizeFiles(context.Background(), conf)
	require.NoError(t, err)
	files := map[string]bool{}
	for status := range statusChan {
		require.NoError(t, status.Error)
		files[status.File] = true
	}
	assert.Len(t, files, 2)
}

func TestTokenizeFilesBadInput(t *testing.T) {
	dir := t.TempDir()
	conf := &Conf{
		ModelPath: writeTestModel(t, dir),
		InputPath: filepath.Join(dir, "no-such-file"),
	}
	_, err := TokenizeFiles(context.Background(), conf)
	require.Error(t, err)
}
