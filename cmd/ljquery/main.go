// Program ljquery evaluates path expressions against a JSON document and
// prints the verbatim text of each value it finds. The document is read
// lazily: only the bytes needed to locate the requested values are ever
// scanned.
//
// Usage:
//
//	ljquery -p '$.owner.login' -p '$.ids[2]' document.json
//
// With no file argument the document is streamed from stdin.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/creachadair/mds/mapset"
	"github.com/golazy/ljson"
	"github.com/golazy/ljson/jsonpath"
	"github.com/golazy/ljson/lstream"
)

type pathList []string

func (p *pathList) String() string { return fmt.Sprint(*p) }

func (p *pathList) Set(s string) error { *p = append(*p, s); return nil }

var paths pathList

func init() {
	flag.Var(&paths, "p", "Path expression to evaluate (repeatable)")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "ljquery: at least one -p expression is required")
		return 2
	}

	lookup, err := openDocument(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ljquery: %v\n", err)
		return 1
	}

	seen := mapset.New[string]()
	for _, expr := range paths {
		if seen.Has(expr) {
			continue
		}
		seen.Add(expr)

		path, err := jsonpath.Parse(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ljquery: path %q: %v\n", expr, err)
			return 2
		}
		v, err := lookup(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ljquery: %q: %v\n", expr, err)
			return 1
		}
		if err := print(v); err != nil {
			fmt.Fprintf(os.Stderr, "ljquery: %q: %v\n", expr, err)
			return 1
		}
	}
	return 0
}

// openDocument returns a lookup function over the document named by args,
// or over stdin when args is empty. A file is loaded as a static source; stdin
// is streamed, reading only as far as each lookup requires.
func openDocument(args []string) (func(path []any) (any, error), error) {
	if len(args) == 0 {
		b := lstream.New(os.Stdin)
		return func(path []any) (any, error) { return b.ValueAt(path...) }, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	src := ljson.NewStaticSource(data)
	return func(path []any) (any, error) { return ljson.ValueAt(src, path...) }, nil
}

func print(v any) error {
	h, ok := v.(ljson.Handle)
	if !ok {
		_, err := fmt.Println(v)
		return err
	}
	text, err := h.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Printf("%s\n", text)
	return err
}
