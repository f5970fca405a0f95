package raster

import "testing"

func BenchmarkRaster(b *testing.B) {
	r, err := New(DefaultCoverage())
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	q := Query{
		ULLon: -122.2412, ULLat: 37.8758,
		LRLon: -122.2262, LRLat: 37.8656,
		Width: 892,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := r.Raster(q)
		if !res.Success {
			b.Fatal("query failed")
		}
	}
}

func BenchmarkRasterDeep(b *testing.B) {
	r, err := New(DefaultCoverage())
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	cov := r.Coverage()

	// Full coverage at a huge viewport forces the deepest grid.
	q := Query{
		ULLon: cov.ULLon, ULLat: cov.ULLat,
		LRLon: cov.LRLon, LRLat: cov.LRLat,
		Width: 1 << 16,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := r.Raster(q)
		if res.Depth != cov.MaxDepth {
			b.Fatalf("depth = %d", res.Depth)
		}
	}
}
