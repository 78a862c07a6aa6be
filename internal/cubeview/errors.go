package cubeview

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidJSON       = errors.New("invalid JSON")
	ErrMalformedDocument = errors.New("malformed document")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNoFrameSelected   = errors.New("no frame selected")
	ErrSupersededLoad    = errors.New("load superseded by a newer file selection")
)

// IngestionError reports why a capture file could not become a Repository.
// Kind is ErrInvalidJSON or ErrMalformedDocument; Path points at the offending
// element, e.g. "data[2][5]" or "resolution.rows".
type IngestionError struct {
	Kind error
	Path string
	Msg  string
}

func (e *IngestionError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Path != "" && e.Msg != "":
		return fmt.Sprintf("%s at %s: %s", e.Kind.Error(), e.Path, e.Msg)
	case e.Path != "":
		return fmt.Sprintf("%s at %s", e.Kind.Error(), e.Path)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	}
	return e.Kind.Error()
}

func (e *IngestionError) Unwrap() error { return e.Kind }

func malformedf(path, format string, args ...any) error {
	return &IngestionError{Kind: ErrMalformedDocument, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// ControllerError is returned for commands the controller refuses. The
// controller state is unchanged when one is returned.
type ControllerError struct {
	Kind  error
	Op    string
	Index int
	Limit int
}

func (e *ControllerError) Error() string {
	if e == nil {
		return ""
	}
	if errors.Is(e.Kind, ErrIndexOutOfRange) {
		return fmt.Sprintf("%s: %s: %d not in [0, %d)", e.Op, e.Kind.Error(), e.Index, e.Limit)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind.Error())
}

func (e *ControllerError) Unwrap() error { return e.Kind }

func outOfRange(op string, idx, limit int) error {
	return &ControllerError{Kind: ErrIndexOutOfRange, Op: op, Index: idx, Limit: limit}
}

// WarningKind classifies soft decode anomalies.
type WarningKind uint8

const (
	WarnRaggedSlice WarningKind = iota // slice length differs from the column count
	WarnInvalidWord                    // word was neither hex nor a number, decoded as zero
)

func (k WarningKind) String() string {
	switch k {
	case WarnRaggedSlice:
		return "ragged slice"
	case WarnInvalidWord:
		return "invalid word"
	}
	return fmt.Sprintf("warning(%d)", uint8(k))
}

// DecodeWarning never stops decoding; it only describes how the input was repaired.
type DecodeWarning struct {
	Kind   WarningKind
	Column int    // offending column for WarnInvalidWord
	Got    int    // slice length for WarnRaggedSlice
	Want   int    // column count for WarnRaggedSlice
	Raw    string // raw text of an invalid word
}

func (w DecodeWarning) String() string {
	switch w.Kind {
	case WarnRaggedSlice:
		return fmt.Sprintf("%s: %d words for %d columns", w.Kind, w.Got, w.Want)
	case WarnInvalidWord:
		return fmt.Sprintf("%s at column %d: %q", w.Kind, w.Column, w.Raw)
	}
	return w.Kind.String()
}
