// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Charles University, Faculty of Arts,
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

// Package fs provides the few filesystem probes batch runs need to
// resolve their input specification.
package fs

import (
	"os"
	"path/filepath"
)

// IsDir tests whether path names a directory. IO errors report false.
func IsDir(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return finfo.Mode().IsDir()
}

// IsFile tests whether path names a regular file. IO errors report false.
func IsFile(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return finfo.Mode().IsRegular()
}

// FileSize returns the size in bytes of the file at path, or 0 if it
// cannot be stat'd. Used to scale batch progress reporting to input
// size instead of a fixed line count.
func FileSize(path string) int64 {
	finfo, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return finfo.Size()
}

// ListFilesInDir returns the paths of every regular file directly
// inside dir (non-recursive).
func ListFilesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// AllFilesExist reports whether every path in paths names an existing
// regular file.
func AllFilesExist(paths []string) bool {
	for _, p := range paths {
		if !IsFile(p) {
			return false
		}
	}
	return true
}
