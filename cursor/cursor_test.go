package cursor_test

import (
	"testing"

	"github.com/golazy/ljson"
	"github.com/golazy/ljson/cursor"
)

const testDoc = `{
  "plan": {
    "name": "base",
    "steps": [
      {"op": "fetch", "args": [1, 2]},
      {"op": "store"}
    ]
  }
}`

func source() ljson.Source { return ljson.NewStaticSource([]byte(testDoc)) }

func TestCursorDown(t *testing.T) {
	root, err := ljson.Value(source())
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	c := cursor.New(root)

	v := c.Down("plan", "steps", 1, "op").Value()
	if err := c.Err(); err != nil {
		t.Fatalf("Down: %v", err)
	}
	got, err := v.(ljson.String).Text()
	if err != nil || got != "fetch" {
		t.Errorf("op: got %q, %v; want fetch", got, err)
	}

	// Up backs out one level without rescanning; Down continues from there.
	c.Up()
	v = c.Down("args", -1).Value()
	if err := c.Err(); err != nil {
		t.Fatalf("Down after Up: %v", err)
	}
	n, err := v.(ljson.Number).Int64()
	if err != nil || n != 2 {
		t.Errorf("last arg: got %d, %v; want 2", n, err)
	}

	if c.AtOrigin() {
		t.Error("cursor reports origin while deep in the document")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Error("Reset did not restore the origin")
	}
}

func TestCursorErrors(t *testing.T) {
	root, err := ljson.Value(source())
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	c := cursor.New(root)
	if c.Down("plan", "missing").Err() == nil {
		t.Error("missing key: no error")
	}
	c.Reset()
	if c.Down("plan", 1).Err() == nil {
		t.Error("index into object: no error")
	}
	c.Reset()
	if c.Down("plan", "name", "deeper").Err() == nil {
		t.Error("descent below a leaf: no error")
	}
}

func TestCursorFunc(t *testing.T) {
	root, err := ljson.Value(source())
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	second := func(v any) (any, error) {
		return v.(ljson.Array).At(2)
	}
	v := cursor.New(root).Down("plan", "steps", second, "op").Value()
	got, err := v.(ljson.String).Text()
	if err != nil || got != "store" {
		t.Errorf("op: got %q, %v; want store", got, err)
	}
}

func TestPath(t *testing.T) {
	root, err := ljson.Value(source())
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	s, err := cursor.Path[ljson.String](root, "plan", "name")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, err := s.Text()
	if err != nil || got != "base" {
		t.Errorf("name: got %q, %v; want base", got, err)
	}

	if _, err := cursor.Path[ljson.Array](root, "plan", "name"); err == nil {
		t.Error("Path with wrong type: no error")
	}
}
