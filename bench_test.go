package ljson_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/golazy/ljson"
)

// benchInput synthesizes a record-shaped document with n entries.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"meta": {"version": 3, "tag": "bench"}, "records": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "record-%d", "score": %d.%02d}`, i, i, i%97, i%100)
	}
	sb.WriteString(`]}`)
	return []byte(sb.String())
}

func BenchmarkPathAccess(b *testing.B) {
	input := benchInput(1000)
	b.Logf("Benchmark input: %d bytes", len(input))

	// The standard library must materialise the whole document to reach
	// one field; the lazy reader scans only up to the value's last byte.
	b.Run("Unmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var doc struct {
				Meta struct {
					Version int    `json:"version"`
					Tag     string `json:"tag"`
				} `json:"meta"`
			}
			if err := json.Unmarshal(input, &doc); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			if doc.Meta.Tag != "bench" {
				b.Fatal("wrong tag")
			}
		}
	})

	b.Run("Lazy", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			src := ljson.NewStaticSource(input)
			v, err := ljson.ValueAt(src, "meta", "tag")
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			tag, err := v.(ljson.String).Text()
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			if tag != "bench" {
				b.Fatal("wrong tag")
			}
		}
	})
}

func BenchmarkIterate(b *testing.B) {
	input := benchInput(1000)

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var doc struct {
				Records []struct {
					ID int64 `json:"id"`
				} `json:"records"`
			}
			if err := json.Unmarshal(input, &doc); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			var sum int64
			for _, r := range doc.Records {
				sum += r.ID
			}
		}
	})

	b.Run("Lazy", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			src := ljson.NewStaticSource(input)
			v, err := ljson.ValueAt(src, "records")
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			var sum int64
			it := v.(ljson.Array).Iter()
			for it.Next() {
				rec := it.Value().(ljson.Object)
				idv, err := rec.Find("id")
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
				id, err := idv.(ljson.Number).Int64()
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
				sum += id
			}
			if err := it.Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
