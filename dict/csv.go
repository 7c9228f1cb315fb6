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

package dict

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/daac-tools/vaporetto/textfmt"
	"github.com/daac-tools/vaporetto/verr"
)

// ParseCSV reads the dictionary editing surface: one row per line,
// three comma-separated fields "word,weight0 weight1 ... weightN,comment".
// The comment field may be empty but must be present.
func ParseCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			return nil, verr.New(verr.DictError, "line %d: expected 3 comma-separated fields, got %d", lineNum, len(fields))
		}
		weights, err := textfmt.ParseIntWeights(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		rows = append(rows, Row{Word: fields[0], Weights: weights, Comment: fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, verr.Wrap(verr.DictError, err, "failed reading dictionary CSV")
	}
	return rows, nil
}

// WriteCSV renders rows back into the form ParseCSV accepts, one row
// per line in the order given.
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%s,%s,%s\n", r.Word, textfmt.FormatIntWeights(r.Weights), r.Comment); err != nil {
			return err
		}
	}
	return bw.Flush()
}
