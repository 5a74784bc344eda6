package systems

import (
	"math"

	"github.com/decker502/arenablaster/pkg/components"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/ecs"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/types"
)

// ProjectileSystem 子弹生成、移动、碰撞与回收
type ProjectileSystem struct {
	bullets    *ecs.Pool[components.BulletComponent]
	gameState  *game.GameState
	waves      *WaveSystem
	particles  *ParticleSystem
	cfg        config.BulletConfig
	halfExtent float64
	out        *types.Frame
}

// NewProjectileSystem 创建子弹系统
//
// 参数：
//   - gs: 游戏状态（弹药）
//   - waves: 波次系统，命中时由它移除敌人并计分
//   - particles: 粒子系统，命中点生成粒子
//   - cfg: 竞技场配置
//   - out: 输出缓冲
func NewProjectileSystem(gs *game.GameState, waves *WaveSystem, particles *ParticleSystem, cfg *config.ArenaConfig, out *types.Frame) *ProjectileSystem {
	return &ProjectileSystem{
		bullets:    ecs.NewPool[components.BulletComponent](cfg.State.StartAmmo),
		gameState:  gs,
		waves:      waves,
		particles:  particles,
		cfg:        cfg.Bullet,
		halfExtent: cfg.Arena.HalfExtent,
		out:        out,
	}
}

// Fire 从 origin 沿 aim 方向发射一颗子弹
//
// 弹药为 0 或方向为零向量时什么都不做（不是错误）。
//
// 返回：
//   - ecs.EntityID: 新子弹 ID
//   - bool: 是否真的发射了
func (s *ProjectileSystem) Fire(origin, aim types.Vec3) (ecs.EntityID, bool) {
	if aim.IsZero() {
		return ecs.InvalidID, false
	}
	if !s.gameState.SpendAmmo() {
		return ecs.InvalidID, false
	}

	id := s.bullets.Create(components.BulletComponent{
		Position: origin,
		Velocity: aim.Normalize().Scale(s.cfg.Speed),
		Age:      0,
	})
	s.out.Spawn(types.MeshBullet, id, origin)
	return id, true
}

// Update 推进所有子弹
//
// 每帧固定前进一个 velocity（不按 deltaTime 缩放），Age 累加 deltaTime。
// 回收条件（按顺序检查）：
//  1. 命中敌人（距离 < HitRadius）：击杀该敌人并在命中点生成粒子，每颗子弹最多击杀一个
//  2. Age > MaxAge
//  3. |x| 或 |z| 超出竞技场
func (s *ProjectileSystem) Update(deltaTime float64) {
	s.bullets.Each(func(id ecs.EntityID, bullet *components.BulletComponent) bool {
		bullet.Position = bullet.Position.Add(bullet.Velocity)
		bullet.Age += deltaTime

		if enemyID, hit := s.waves.FindEnemyWithin(bullet.Position, s.cfg.HitRadius); hit {
			impact := bullet.Position
			s.retire(id)
			s.waves.Kill(enemyID)
			s.particles.SpawnBurst(impact)
			return true
		}

		if bullet.Age > s.cfg.MaxAge || s.outOfBounds(bullet.Position) {
			s.retire(id)
			return true
		}

		s.out.Move(types.MeshBullet, id, bullet.Position)
		return true
	})
}

func (s *ProjectileSystem) outOfBounds(pos types.Vec3) bool {
	return math.Abs(pos.X) > s.halfExtent || math.Abs(pos.Z) > s.halfExtent
}

func (s *ProjectileSystem) retire(id ecs.EntityID) {
	if s.bullets.Destroy(id) {
		s.out.Remove(types.MeshBullet, id)
	}
}

// Bullet 获取子弹数据
func (s *ProjectileSystem) Bullet(id ecs.EntityID) (*components.BulletComponent, bool) {
	return s.bullets.Get(id)
}

// Count 存活子弹数量
func (s *ProjectileSystem) Count() int {
	return s.bullets.Len()
}

// Clear 回收所有子弹并发出移除指令
func (s *ProjectileSystem) Clear() {
	s.bullets.Each(func(id ecs.EntityID, _ *components.BulletComponent) bool {
		s.out.Remove(types.MeshBullet, id)
		return true
	})
	s.bullets.Clear()
}
