// Package jsonpath parses a restricted JSONPath expression syntax into the
// key paths accepted by the ljson resolver.
package jsonpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" INDEX "]"
  step = "[" "'" QTEXT "'" "]"
  name = WORD

  WORD = RE `\w+`
 QTEXT = RE `([^']|\\')*`
 INDEX = RE `\d+`

Indices are 1-based, matching the resolver. The recursive-descent,
wildcard, slice, filter, and script operators of full JSONPath fall
outside simple path lookup and are rejected.
*/

// Parse parses s as a path expression and returns the key path it
// denotes: a string for each member step and a 1-based int for each index
// step. The result is accepted directly by ljson.ValueAt and
// ljson.Splice.
func Parse(s string) ([]any, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps []any
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// Format renders a key path in the expression syntax accepted by Parse.
func Format(path []any) string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, step := range path {
		switch s := step.(type) {
		case string:
			if wordRE.MatchString(s) && len(wordRE.FindString(s)) == len(s) {
				fmt.Fprintf(&buf, ".%s", s)
			} else {
				fmt.Fprintf(&buf, "['%s']", strings.ReplaceAll(s, "'", `\'`))
			}
		case int:
			fmt.Fprintf(&buf, "[%d]", s)
		default:
			fmt.Fprintf(&buf, "[?%v]", s)
		}
	}
	return buf.String()
}

func parseStep(s string) (step any, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		return nil, t, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		m := wordRE.FindString(t)
		if m == "" {
			return nil, t, errors.New("invalid .name")
		}
		return m, t[len(m):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseBracket(t)
		if err != nil {
			return nil, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return nil, u, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return nil, s, errors.New("invalid path step")
}

func parseBracket(s string) (step any, rest string, _ error) {
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		name := strings.ReplaceAll(m[1], `\'`, "'")
		return name, s[len(m[0]):], nil
	}
	if m := indexRE.FindString(s); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return nil, s, fmt.Errorf("invalid index: %w", err)
		}
		if v < 1 {
			return nil, s, fmt.Errorf("index %d out of range (indices are 1-based)", v)
		}
		return v, s[len(m):], nil
	}
	if strings.HasPrefix(s, "*") || strings.HasPrefix(s, "?") || strings.HasPrefix(s, "(") {
		return nil, s, errors.New("wildcard, filter, and script steps are not supported")
	}
	return nil, s, fmt.Errorf("invalid bracket step: %q", s)
}

var (
	wordRE  = regexp.MustCompile(`^\w+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)
)
