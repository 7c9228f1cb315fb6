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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/daac-tools/vaporetto"
	"github.com/daac-tools/vaporetto/config"
	"github.com/daac-tools/vaporetto/dict"
	"github.com/daac-tools/vaporetto/library"
	"github.com/daac-tools/vaporetto/verr"
)

var (
	version   string
	build     string
	gitCommit string
)

func fatal(err error) {
	if kind, ok := verr.KindOf(err); ok {
		log.Error().Err(err).Str("kind", kind.String()).Msg("command failed")
		os.Exit(kind.ExitCode())
	}
	log.Error().Err(err).Msg("command failed")
	os.Exit(1)
}

func openModel(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		fatal(verr.Wrap(verr.ModelError, err, "failed to open model file %q", path))
	}
	return f
}

func predict(args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	modelPath := fs.String("model", "", "path to a vaporetto binary model")
	tags := fs.Bool("tags", false, "predict per-token tags (requires a model with a tag submodel)")
	confPath := fs.String("config", "", "optional JSON predictor configuration")
	fs.Parse(args)
	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: vaporetto predict -model FILE [-tags] [-config FILE]")
		os.Exit(2)
	}

	f := openModel(*modelPath)
	defer f.Close()
	m, err := vaporetto.LoadModel(f)
	if err != nil {
		fatal(err)
	}

	cfg := config.Default()
	if *confPath != "" {
		cfg, err = config.Load(*confPath)
		if err != nil {
			fatal(verr.Wrap(verr.InputError, err, "failed to load predictor configuration %q", *confPath))
		}
	}
	if *tags {
		cfg.PredictTags = true
	}
	p, err := vaporetto.NewPredictor(m, cfg)
	if err != nil {
		fatal(err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		s, err := p.Tokenize(in.Text())
		if err != nil {
			fatal(err)
		}
		if err := s.WriteTokenized(out); err != nil {
			fatal(verr.Wrap(verr.InputError, err, "failed writing tokenized output"))
		}
		fmt.Fprintln(out)
	}
	if err := in.Err(); err != nil {
		fatal(verr.Wrap(verr.InputError, err, "failed reading stdin"))
	}
}

func dictDump(args []string) {
	fs := flag.NewFlagSet("dict-dump", flag.ExitOnError)
	modelPath := fs.String("model", "", "path to a vaporetto binary model")
	fs.Parse(args)
	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: vaporetto dict-dump -model FILE")
		os.Exit(2)
	}

	f := openModel(*modelPath)
	defer f.Close()
	m, err := vaporetto.LoadModel(f)
	if err != nil {
		fatal(err)
	}

	if err := dict.WriteCSV(os.Stdout, dict.DumpDictionary(m)); err != nil {
		fatal(verr.Wrap(verr.DictError, err, "failed writing dictionary CSV"))
	}
}

func dictReplace(args []string) {
	fs := flag.NewFlagSet("dict-replace", flag.ExitOnError)
	modelPath := fs.String("model", "", "path to a vaporetto binary model")
	csvPath := fs.String("csv", "", "path to a replacement dictionary CSV")
	outPath := fs.String("out", "", "path to write the edited model to")
	fs.Parse(args)
	if *modelPath == "" || *csvPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: vaporetto dict-replace -model FILE -csv FILE -out FILE")
		os.Exit(2)
	}

	mf := openModel(*modelPath)
	m, err := vaporetto.LoadModel(mf)
	mf.Close()
	if err != nil {
		fatal(err)
	}

	cf, err := os.Open(*csvPath)
	if err != nil {
		fatal(verr.Wrap(verr.DictError, err, "failed to open replacement CSV %q", *csvPath))
	}
	rows, err := dict.ParseCSV(cf)
	cf.Close()
	if err != nil {
		fatal(err)
	}

	if err := dict.ReplaceDictionary(m, rows); err != nil {
		fatal(err)
	}

	of, err := os.Create(*outPath)
	if err != nil {
		fatal(verr.Wrap(verr.ModelError, err, "failed to create output model %q", *outPath))
	}
	defer of.Close()
	if err := vaporetto.SaveModel(of, m); err != nil {
		fatal(err)
	}
	log.Info().Str("out", *outPath).Int("words", len(m.Dictionary)).Msg("dictionary replaced")
}

func batch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	confPath := fs.String("conf", "", "path to a batch run JSON configuration")
	fs.Parse(args)
	if *confPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: vaporetto batch -conf FILE")
		os.Exit(2)
	}

	conf, err := library.LoadConf(*confPath)
	if err != nil {
		fatal(verr.Wrap(verr.InputError, err, "failed to load batch configuration"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statusChan, err := library.TokenizeFiles(ctx, conf)
	if err != nil {
		fatal(err)
	}
	var failed error
	for status := range statusChan {
		if status.Error != nil {
			log.Error().Err(status.Error).Str("file", status.File).Msg("batch run failed")
			failed = status.Error
			continue
		}
		log.Info().
			Str("file", status.File).
			Int("lines", status.ProcessedLines).
			Msg("progress")
	}
	if failed != nil {
		fatal(failed)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Println("\n+-------------------------------------------------------------+")
		fmt.Println("|   Vaporetto - a pointwise-prediction tokenizer and tagger    |")
		fmt.Printf("|                       version %s                         |\n", version)
		fmt.Println("+-------------------------------------------------------------+")
		fmt.Println("\nUsage:")
		fmt.Println("vaporetto predict -model FILE [-tags] [-config FILE]\n\t(read sentences from stdin, one per line, write tokenized output)")
		fmt.Println("vaporetto batch -conf FILE\n\t(tokenize whole files per a JSON run configuration)")
		fmt.Println("vaporetto dict-dump -model FILE\n\t(write the model's dictionary as CSV to stdout)")
		fmt.Println("vaporetto dict-replace -model FILE -csv FILE -out FILE\n\t(replace the dictionary and write the edited model)")
		fmt.Println("vaporetto version\n\tshow detailed version information")
		fmt.Println("\nExit codes: 0 ok, 2 input error, 3 model error, 4 dictionary error, 5 tag error, 1 unexpected")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "predict":
		predict(os.Args[2:])
	case "batch":
		batch(os.Args[2:])
	case "dict-dump":
		dictDump(os.Args[2:])
	case "dict-replace":
		dictReplace(os.Args[2:])
	case "version":
		fmt.Printf("vaporetto %s\nbuild date: %s\nlast commit: %s\n", version, build, gitCommit)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
