package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/pepfix/pkg/lint"
	"github.com/yaklabco/pepfix/pkg/pysrc"
)

// benchmarkSource is a module with a violation from most categories,
// repeated to a realistic file size.
func benchmarkSource() []byte {
	block := `import os, sys
def handler( request ):
	values = [1, 2 ,3]
	total  = sum (values)   
	return {'total':total}
class Service:
    name = "svc"
    def run(self):
        return handler(None)
`
	return []byte(strings.Repeat(block, 50))
}

// Benchmark detection across the whole catalogue.
func BenchmarkCatalogueDetect(b *testing.B) {
	content := benchmarkSource()
	catalogue := NewCatalogue(lint.DefaultOptions())
	engine := lint.NewEngine(nil)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		rc := engine.Context(ctx, pysrc.NewDocument("bench.py", content))
		for _, rule := range catalogue.Rules() {
			if _, err := engine.Detect(rc, rule); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// Benchmark the full fix pipeline including convergence.
func BenchmarkPipelineFix(b *testing.B) {
	content := benchmarkSource()
	catalogue := NewCatalogue(lint.DefaultOptions())
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		store := lint.NewMemoryStore()
		store.Seed("bench.py", content)
		pipeline := lint.NewPipeline(lint.NewEngine(nil), catalogue, store)

		result, err := pipeline.ProcessFile(ctx, "bench.py", lint.PipelineOptions{Fix: true})
		if err != nil || result == nil {
			b.Fatal(err)
		}
	}
}
