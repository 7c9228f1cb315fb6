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

// Package library drives whole-file tokenization runs on top of the
// engine's per-sentence API: resolve the input file list, load the
// model once, stream every line through the predictor and report
// progress over a status channel.
package library

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/daac-tools/vaporetto"
	"github.com/daac-tools/vaporetto/fs"
	"github.com/daac-tools/vaporetto/sentence"
)

// Status is one progress update of a batch run. A non-nil Error ends
// the whole run: files after the one it names are not processed.
type Status struct {
	Datetime       time.Time
	File           string
	ProcessedLines int
	Error          error
}

func sendErrStatus(statusChan chan Status, file string, err error) {
	statusChan <- Status{
		Datetime: time.Now(),
		File:     file,
		Error:    err,
	}
}

// determineLineReportingStep picks a progress-report period, in lines,
// from the file's size in bytes: the smallest power of ten (at least
// 100) that is more than a tenth of the size. The step only affects
// reporting, never results.
func determineLineReportingStep(filePath string) int {
	size := fs.FileSize(filePath)
	step := 100
	for ; step < 1000000000; step *= 10 {
		if float64(size)/float64(step) < 10 {
			break
		}
	}
	return step
}

// TokenizeFiles tokenizes every input file named by conf, writing one
// tokenized line per nonempty input line to conf.OutputPath (stdout
// when empty); empty input lines are skipped. The returned channel delivers progress and error statuses
// and is closed when the run finishes; cancelling ctx stops the run
// between lines.
func TokenizeFiles(ctx context.Context, conf *Conf) (chan Status, error) {
	filesToProc, err := resolveInputFiles(conf)
	if err != nil {
		return nil, err
	}

	mf, err := os.Open(conf.ModelPath)
	if err != nil {
		return nil, err
	}
	m, err := vaporetto.LoadModel(mf)
	mf.Close()
	if err != nil {
		return nil, err
	}
	pred, err := vaporetto.NewPredictor(m, conf.Predictor)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	var outFile *os.File
	if conf.OutputPath != "" {
		outFile, err = os.Create(conf.OutputPath)
		if err != nil {
			return nil, err
		}
		out = outFile
	}

	statusChan := make(chan Status)
	go func() {
		defer close(statusChan)
		if outFile != nil {
			defer outFile.Close()
		}
		bw := bufio.NewWriter(out)
		defer bw.Flush()

		for _, inputFile := range filesToProc {
			log.Info().Str("input", inputFile).Msg("Processing file")
			if err := processFile(ctx, pred, conf.Format, inputFile, bw, statusChan); err != nil {
				sendErrStatus(statusChan, inputFile, err)
				return
			}
		}
	}()
	return statusChan, nil
}

func processFile(
	ctx context.Context,
	pred *vaporetto.Predictor,
	format InputFormat,
	path string,
	out *bufio.Writer,
	statusChan chan Status,
) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reportStep := determineLineReportingStep(path)
	in := bufio.NewScanner(f)
	lines := 0
	for in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := in.Text()
		if line == "" {
			continue
		}

		var s *sentence.Sentence
		if format == FormatAnnotated {
			s, err = sentence.FromAnnotated(line)
		} else {
			s, err = sentence.FromRaw(line)
		}
		if err != nil {
			return err
		}
		if err := pred.Predict(s); err != nil {
			return err
		}
		if err := s.WriteTokenized(out); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}

		lines++
		if lines%reportStep == 0 {
			statusChan <- Status{
				Datetime:       time.Now(),
				File:           path,
				ProcessedLines: lines,
			}
		}
	}
	if err := in.Err(); err != nil {
		return err
	}
	statusChan <- Status{
		Datetime:       time.Now(),
		File:           path,
		ProcessedLines: lines,
	}
	return nil
}
