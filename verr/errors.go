// Copyright 2022 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2022 Charles University, Faculty of Arts,
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

// Package verr defines the four error kinds the engine can fail with
// and a small typed wrapper so callers can both
// errors.Is a specific cause and recover a CLI exit code from the
// kind without string matching.
package verr

import (
	"errors"
	"fmt"
)

// Kind classifies why a boundary call (load, parse, edit) failed.
// Prediction itself never fails on a well-formed sentence against a
// well-formed model, so Kind never appears outside those calls.
type Kind int

const (
	// InputError: empty input, embedded newline, malformed annotated text.
	InputError Kind = iota + 1
	// ModelError: bad magic, unsupported version, truncated section,
	// weight-vector length inconsistent with the applicable window radius,
	// duplicate pattern key.
	ModelError
	// DictError: duplicate word in a replacement table, weight-vector
	// length mismatch, integer out of int32 range.
	DictError
	// TagError: tag prediction requested against a model with no tag submodel.
	TagError
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case ModelError:
		return "ModelError"
	case DictError:
		return "DictError"
	case TagError:
		return "TagError"
	default:
		return "UnknownError"
	}
}

// ExitCode gives each kind the distinct nonzero exit code CLI
// wrappers report it with.
func (k Kind) ExitCode() int {
	switch k {
	case InputError:
		return 2
	case ModelError:
		return 3
	case DictError:
		return 4
	case TagError:
		return 5
	default:
		return 1
	}
}

// Error is the engine's single error type. It always carries a Kind
// and, when available, the specific cause that produced it.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an existing cause.
func Wrap(k Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf reports the Kind of err if it (or something it wraps) is a
// *Error, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
