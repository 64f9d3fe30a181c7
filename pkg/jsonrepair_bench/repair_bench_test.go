package jsonrepair_bench

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/deepankarm/jsonrepair/pkg/jsonrepair"
)

// ============================================================================
// Benchmark Fixtures
// ============================================================================

const validProduct = `{"id":1,"name":"Widget","price":19.99,"in_stock":true,"description":"A useful widget"}`

const brokenProduct = `{id: 1, 'name': 'Widget', "price": 19.99, "in_stock": True, "description": "A "useful" widget",`

func largeArray(n int, item string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(item)
	}
	return sb.String()
}

// ============================================================================
// Benchmarks: valid input (fast path vs engine)
// ============================================================================

func BenchmarkRepair_Valid(b *testing.B) {
	r := jsonrepair.New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = r.Repair(validProduct)
	}
}

func BenchmarkRepair_ValidSkipFastPath(b *testing.B) {
	r := jsonrepair.New(jsonrepair.WithSkipFastPath())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = r.Repair(validProduct)
	}
}

// BenchmarkStdlib_Valid is the baseline for decoding the same document.
func BenchmarkStdlib_Valid(b *testing.B) {
	data := []byte(validProduct)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var v map[string]any
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Benchmarks: broken input
// ============================================================================

func BenchmarkRepair_Broken(b *testing.B) {
	r := jsonrepair.New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = r.Repair(brokenProduct)
	}
}

func BenchmarkRepair_BrokenWithLog(b *testing.B) {
	r := jsonrepair.New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = r.RepairWithLog(brokenProduct)
	}
}

func BenchmarkRepair_LargeTruncatedArray(b *testing.B) {
	input := largeArray(1000, validProduct)
	r := jsonrepair.New()
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Repair(input)
	}
}

// ============================================================================
// Benchmarks: streaming
// ============================================================================

func BenchmarkStreamRepairer_Feed(b *testing.B) {
	chunks := make([][]byte, 0, len(validProduct)/8+1)
	for i := 0; i < len(validProduct); i += 8 {
		chunks = append(chunks, []byte(validProduct[i:min(i+8, len(validProduct))]))
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sr := jsonrepair.NewStreamRepairer()
		for _, chunk := range chunks {
			_ = sr.Feed(chunk)
		}
	}
}
