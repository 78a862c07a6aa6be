package cubeview

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var hexWord = regexp.MustCompile(`^[0-9A-Fa-f]+$`)

// ParsedDocument is a syntactically valid capture whose words are already
// coerced. Its structure is only checked by Load.
type ParsedDocument struct {
	// Legacy is set for a bare array of frames.
	Legacy bool
	// Resolution holds the raw "resolution" value; nil when the key is absent.
	Resolution any
	// Data is the frame tree; leaves are Word values wherever the input had
	// strings or numbers.
	Data    any
	HasData bool
	// Layout, when set, is the layout the words were encoded with and
	// overrides the one the loader was given.
	Layout *Layout
	// root describes a top-level value that is neither an array nor an object.
	root string
}

// Parse decodes JSON text and applies the hex/number coercion exactly once.
func Parse(text []byte) (*ParsedDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &IngestionError{Kind: ErrInvalidJSON, Msg: err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &IngestionError{Kind: ErrInvalidJSON, Msg: "unexpected data after top-level value"}
	}
	doc := &ParsedDocument{}
	switch t := v.(type) {
	case []any:
		doc.Legacy = true
		doc.Data = coerce(t)
		doc.HasData = true
	case map[string]any:
		if r, ok := t["resolution"]; ok && r != nil {
			doc.Resolution = r
		}
		if d, ok := t["data"]; ok {
			doc.Data = coerce(d)
			doc.HasData = true
		}
	default:
		doc.root = jsonKind(v)
	}
	return doc, nil
}

func coerce(v any) any {
	switch t := v.(type) {
	case []any:
		for i := range t {
			t[i] = coerce(t[i])
		}
		return t
	case json.Number:
		return numberWord(t)
	case string:
		return stringWord(t)
	}
	return v
}

func stringWord(s string) Word {
	if !hexWord.MatchString(s) {
		return Word{Raw: s}
	}
	u, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return Word{Raw: s}
	}
	return Word{Value: int64(u), Valid: true}
}

func numberWord(n json.Number) Word {
	if i, err := n.Int64(); err == nil {
		return Word{Value: i, Valid: true}
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return Word{Raw: n.String()}
	}
	return Word{Value: int64(f), Valid: true}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, Word:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "value"
}

var (
	cGroup = regexp.MustCompile(`\{\s*([0-9A-Fa-fxX,\s]+?)\s*\}`)
	cToken = regexp.MustCompile(`0[xX][0-9A-Fa-f]+`)
)

// ParseCArray reads the firmware's C initializer format: every {...} group is
// one slice and every 0x.. token one word. The result is one legacy frame.
// Dumps saved as UTF-16 with a byte order mark are decoded first.
func ParseCArray(text []byte) (*ParsedDocument, error) {
	text, err := decodeText(text)
	if err != nil {
		return nil, &IngestionError{Kind: ErrMalformedDocument, Msg: "text encoding: " + err.Error()}
	}
	groups := cGroup.FindAllSubmatch(text, -1)
	frame := make([]any, 0, len(groups))
	for _, g := range groups {
		toks := cToken.FindAll(g[1], -1)
		if len(toks) == 0 {
			continue
		}
		slice := make([]any, 0, len(toks))
		for _, tok := range toks {
			slice = append(slice, stringWord(string(tok[2:])))
		}
		frame = append(frame, slice)
	}
	if len(frame) == 0 {
		return nil, &IngestionError{Kind: ErrMalformedDocument, Msg: "no {0x..} slice groups found"}
	}
	return &ParsedDocument{Legacy: true, Data: []any{frame}, HasData: true}, nil
}

// decodeText converts UTF-16 (either byte order, BOM required) to UTF-8 and
// strips a UTF-8 BOM. Text without a BOM is returned unchanged.
func decodeText(text []byte) ([]byte, error) {
	if !bytes.HasPrefix(text, []byte{0xFF, 0xFE}) && !bytes.HasPrefix(text, []byte{0xFE, 0xFF}) &&
		!bytes.HasPrefix(text, []byte{0xEF, 0xBB, 0xBF}) {
		return text, nil
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), text)
	return out, err
}

// ParseFile picks the parser by file extension: C sources go through
// ParseCArray, .txt files through ParseCArray when they hold {0x..} groups and
// through ParseSliceText otherwise, everything else is JSON.
func ParseFile(name string, data []byte) (*ParsedDocument, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".h", ".c":
		return ParseCArray(data)
	case ".txt":
		text, err := decodeText(data)
		if err == nil && !cGroup.Match(text) {
			return ParseSliceText(text)
		}
		return ParseCArray(data)
	}
	return Parse(data)
}
