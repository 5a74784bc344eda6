package utils

import (
	"math/rand"
	"time"
)

// PRNGService 封装可设定种子的随机数生成器
//
// 模拟核心里所有随机数（敌人出生位置、粒子速度）都从这里取，
// 测试中固定种子即可得到可复现的结果
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService 创建指定种子的随机数服务
// 种子为 0 时使用当前时间
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed 返回实际使用的种子（便于日志中复现问题）
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Float64 返回 [0.0, 1.0) 的随机数
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range 返回 [lo, hi) 的随机数
func (s *PRNGService) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// IntRange 返回 [lo, hi] 的随机整数
func (s *PRNGService) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}
