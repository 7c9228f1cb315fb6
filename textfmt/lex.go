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

// Package textfmt holds the lexing rules shared by the engine's two
// human-readable surfaces, annotated training/editing sentences and
// dictionary CSV rows. Both need the same "reject embedded newlines,
// split on single whitespace, parse strict integer fields"
// discipline, so it lives here once instead of twice.
package textfmt

import (
	"strconv"
	"strings"

	"github.com/daac-tools/vaporetto/verr"
)

// RejectLineTerminators fails with an InputError if s contains an
// embedded newline or carriage return.
func RejectLineTerminators(s string) error {
	if strings.ContainsAny(s, "\n\r") {
		return verr.New(verr.InputError, "input must not contain a line terminator")
	}
	return nil
}

// ParseIntWeights splits a whitespace-separated field of signed
// integers (the dictionary CSV's weight column) and checks every
// value fits in an int32.
func ParseIntWeights(field string) ([]int32, error) {
	fields := strings.Fields(field)
	out := make([]int32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, verr.Wrap(verr.DictError, err, "weight %q is not a valid 32-bit integer", f)
		}
		out[i] = int32(v)
	}
	return out, nil
}

// FormatIntWeights renders weights back into the whitespace-separated
// form ParseIntWeights accepts.
func FormatIntWeights(weights []int32) string {
	parts := make([]string, len(weights))
	for i, w := range weights {
		parts[i] = strconv.FormatInt(int64(w), 10)
	}
	return strings.Join(parts, " ")
}
