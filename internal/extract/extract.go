// Package extract turns free-text generative model output into JSON values of
// an expected shape. It never panics on bad input: every failure is either a
// domain.UnparsableError or a domain.SchemaError carrying the raw text.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"tripplanner/internal/domain"
)

// Kind is the expected top-level JSON kind.
type Kind int

const (
	KindObject Kind = iota
	KindArray
)

func (k Kind) String() string {
	if k == KindArray {
		return "array"
	}
	return "object"
}

func (k Kind) open() byte {
	if k == KindArray {
		return '['
	}
	return '{'
}

func (k Kind) close() byte {
	if k == KindArray {
		return ']'
	}
	return '}'
}

// Stage reports which step of the pipeline produced the value.
type Stage string

const (
	StageDirect   Stage = "direct"
	StageBoundary Stage = "boundary"
	StageRepaired Stage = "repaired"
)

type Result struct {
	Value json.RawMessage
	Stage Stage
}

var (
	jsonFencePattern = regexp.MustCompile("(?is)```json[ \\t]*\\r?\\n?(.*?)```")
	anyFencePattern  = regexp.MustCompile("(?s)```[A-Za-z0-9_-]*[ \\t]*\\r?\\n?(.*?)```")

	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
	unquotedKeyPattern   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	singleQuotedPattern  = regexp.MustCompile(`:\s*'([^'\\"]*)'\s*([,}\]])`)
)

var errKindMismatch = errors.New("top-level value has the wrong kind")

// Extract locates a JSON value of the given kind inside raw.
//
// Steps, stopping at the first success: fenced block interior (json-tagged
// first, then any fence, else the whole text), direct parse, boundary slice
// over the whole text, fixed textual repairs on that slice.
func Extract(raw string, kind Kind) (Result, error) {
	candidate := fencedCandidate(raw)
	if v, err := parseKind(candidate, kind); err == nil {
		return Result{Value: v, Stage: StageDirect}, nil
	}

	sliced, ok, noJSON := boundarySlice(raw, kind)
	if noJSON {
		return Result{}, domain.UnparsableError{Raw: raw, NoJSON: true}
	}
	if !ok {
		return Result{}, domain.UnparsableError{
			Raw: raw,
			Err: errors.New("no closing " + string(kind.close()) + " after opening bracket"),
		}
	}
	if v, err := parseKind(sliced, kind); err == nil {
		return Result{Value: v, Stage: StageBoundary}, nil
	}

	repaired := Repair(sliced)
	v, err := parseKind(repaired, kind)
	if err != nil {
		return Result{}, domain.UnparsableError{Raw: raw, Err: err}
	}
	return Result{Value: v, Stage: StageRepaired}, nil
}

// Repair applies the textual repairs in their fixed order: trailing commas,
// unquoted keys, then simple single-quoted values. It never adds brackets.
func Repair(s string) string {
	s = trailingCommaPattern.ReplaceAllString(s, "${1}")
	s = unquotedKeyPattern.ReplaceAllString(s, `${1}"${2}":`)
	s = singleQuotedPattern.ReplaceAllString(s, `:"${1}"${2}`)
	return s
}

func fencedCandidate(raw string) string {
	if m := jsonFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// boundarySlice cuts raw from the first opening bracket of kind to the last
// closing bracket of the same kind.
func boundarySlice(raw string, kind Kind) (slice string, ok bool, noJSON bool) {
	start := strings.IndexByte(raw, kind.open())
	if start < 0 {
		return "", false, true
	}
	end := strings.LastIndexByte(raw, kind.close())
	if end <= start {
		return "", false, false
	}
	return raw[start : end+1], true, false
}

func parseKind(s string, kind Kind) (json.RawMessage, error) {
	b := bytes.TrimSpace([]byte(s))
	if len(b) == 0 {
		return nil, errors.New("empty candidate")
	}
	var probe any
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	if b[0] != kind.open() {
		return nil, errKindMismatch
	}
	return json.RawMessage(b), nil
}
