package systems

import (
	"github.com/decker502/arenablaster/pkg/components"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/ecs"
	"github.com/decker502/arenablaster/pkg/types"
	"github.com/decker502/arenablaster/pkg/utils"
)

// ParticleSystem 击杀粒子效果管理
//
// 纯装饰：粒子不参与碰撞，也不影响游戏状态
type ParticleSystem struct {
	bursts *ecs.Pool[components.ParticleBurstComponent]
	cfg    config.ParticleConfig
	rng    *utils.PRNGService
	out    *types.Frame
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(cfg config.ParticleConfig, rng *utils.PRNGService, out *types.Frame) *ParticleSystem {
	return &ParticleSystem{
		bursts: ecs.NewPool[components.ParticleBurstComponent](8),
		cfg:    cfg,
		rng:    rng,
		out:    out,
	}
}

// SpawnBurst 在 pos 处生成一簇粒子
//
// 粒子数在 [CountMin, CountMax] 内随机；每个粒子独立随机速度：
// X/Z ∈ [-SpreadXZ, SpreadXZ]，Y ∈ [0, RiseY]（单位/秒）
func (s *ParticleSystem) SpawnBurst(pos types.Vec3) ecs.EntityID {
	count := s.rng.IntRange(s.cfg.CountMin, s.cfg.CountMax)

	burst := components.ParticleBurstComponent{
		Positions:     make([]types.Vec3, count),
		Velocities:    make([]types.Vec3, count),
		RemainingLife: s.cfg.Lifetime,
	}
	for i := 0; i < count; i++ {
		burst.Positions[i] = pos
		burst.Velocities[i] = types.Vec3{
			X: s.rng.Range(-s.cfg.SpreadXZ, s.cfg.SpreadXZ),
			Y: s.rng.Range(0, s.cfg.RiseY),
			Z: s.rng.Range(-s.cfg.SpreadXZ, s.cfg.SpreadXZ),
		}
	}

	id := s.bursts.Create(burst)
	s.out.SpawnParticles(id, pos, burst.Positions)
	return id
}

// Update 推进所有粒子簇
//
// 位置按 velocity*deltaTime 前进，剩余寿命递减，寿命 <= 0 时整簇回收
func (s *ParticleSystem) Update(deltaTime float64) {
	s.bursts.Each(func(id ecs.EntityID, burst *components.ParticleBurstComponent) bool {
		for i := range burst.Positions {
			burst.Positions[i] = burst.Positions[i].Add(burst.Velocities[i].Scale(deltaTime))
		}
		burst.RemainingLife -= deltaTime

		if burst.RemainingLife <= 0 {
			s.bursts.Destroy(id)
			s.out.Remove(types.MeshParticles, id)
			return true
		}

		s.out.UpdateParticles(id, burst.Positions)
		return true
	})
}

// Burst 获取粒子簇数据
func (s *ParticleSystem) Burst(id ecs.EntityID) (*components.ParticleBurstComponent, bool) {
	return s.bursts.Get(id)
}

// Count 当前存活的粒子簇数量
func (s *ParticleSystem) Count() int {
	return s.bursts.Len()
}

// Clear 回收所有粒子簇并发出移除指令
func (s *ParticleSystem) Clear() {
	s.bursts.Each(func(id ecs.EntityID, _ *components.ParticleBurstComponent) bool {
		s.out.Remove(types.MeshParticles, id)
		return true
	})
	s.bursts.Clear()
}
