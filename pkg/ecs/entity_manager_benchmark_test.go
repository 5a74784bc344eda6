package ecs

import "testing"

type benchmarkComp struct {
	X, Y, Z float64
	Age     float64
}

// BenchmarkCreateDestroyChurn 模拟每帧子弹的生成与回收
func BenchmarkCreateDestroyChurn(b *testing.B) {
	p := NewPool[benchmarkComp](64)
	ids := make([]EntityID, 0, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 32; j++ {
			ids = append(ids, p.Create(benchmarkComp{X: float64(j)}))
		}
		for _, id := range ids {
			p.Destroy(id)
		}
		ids = ids[:0]
	}
}

// BenchmarkEach 遍历半满的实体池
func BenchmarkEach(b *testing.B) {
	p := NewPool[benchmarkComp](1000)
	for i := 0; i < 1000; i++ {
		id := p.Create(benchmarkComp{})
		if i%2 == 0 {
			p.Destroy(id)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Each(func(_ EntityID, c *benchmarkComp) bool {
			c.Age += 1.0 / 60.0
			return true
		})
	}
}
