package systems

import (
	"log"
	"math"

	"github.com/decker502/arenablaster/pkg/components"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/ecs"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/types"
	"github.com/decker502/arenablaster/pkg/utils"
)

// WaveSystem 敌人波次控制
//
// 职责：
//   - 按波次公式在竞技场中心周围的圆环上生成敌人
//   - 每帧让敌人径直走向玩家，并结算近身接触伤害
//   - 敌人被击杀或外部移除时恰好移除一次，并通知 GameState
//
// 下一波的定时由 GameState 持有，帧驱动器到期后调用 StartNextWave
type WaveSystem struct {
	enemies   *ecs.Pool[components.EnemyComponent]
	gameState *game.GameState
	cfg       *config.ArenaConfig
	rng       *utils.PRNGService
	out       *types.Frame
}

// NewWaveSystem 创建波次系统
func NewWaveSystem(gs *game.GameState, cfg *config.ArenaConfig, rng *utils.PRNGService, out *types.Frame) *WaveSystem {
	return &WaveSystem{
		enemies:   ecs.NewPool[components.EnemyComponent](cfg.Waves.MaxCount),
		gameState: gs,
		cfg:       cfg,
		rng:       rng,
		out:       out,
	}
}

// StartNextWave 波次 +1 并生成 min(BaseCount + wave*PerWave, MaxCount) 个敌人
//
// 返回：
//   - int: 本波生成的敌人数
func (s *WaveSystem) StartNextWave() int {
	wave := s.gameState.BeginWave()
	count := s.cfg.WaveEnemyCount(wave)

	for i := 0; i < count; i++ {
		s.spawnEnemy()
	}

	log.Printf("[WaveSystem] Wave %d started: %d enemies", wave, count)
	return count
}

// spawnEnemy 在内径 SpawnInnerRadius、外径 SpawnOuterRadius 的圆环上随机生成一个敌人
func (s *WaveSystem) spawnEnemy() ecs.EntityID {
	angle := s.rng.Float64() * 2 * math.Pi
	radius := s.rng.Range(s.cfg.Waves.SpawnInnerRadius, s.cfg.Waves.SpawnOuterRadius)
	sin, cos := math.Sincos(angle)
	pos := types.Vec3{
		X: cos * radius,
		Y: s.cfg.Waves.SpawnHeight,
		Z: sin * radius,
	}

	id := s.enemies.Create(components.EnemyComponent{
		Position: pos,
		Speed:    s.cfg.Enemy.Speed,
	})
	s.out.Spawn(types.MeshEnemy, id, pos)
	return id
}

// Update 移动敌人并结算接触伤害
//
// 每个敌人朝玩家方向移动固定距离（DeltaNormalized 时按 Speed*dt*ReferenceFPS）；
// 与玩家距离小于 ContactDistance 时造成 ContactDamagePerSecond*dt 伤害，
// 多个敌人的伤害独立叠加。游戏结束后立即停止本帧剩余处理。
func (s *WaveSystem) Update(deltaTime float64, playerPos types.Vec3) {
	if !s.gameState.IsPlaying {
		return
	}

	scale := 1.0
	if s.cfg.Enemy.DeltaNormalized {
		scale = deltaTime * s.cfg.Enemy.ReferenceFPS
	}
	contactDamage := s.cfg.Enemy.ContactDamagePerSecond * deltaTime

	s.enemies.Each(func(id ecs.EntityID, enemy *components.EnemyComponent) bool {
		dir := playerPos.Sub(enemy.Position).Normalize()
		enemy.Position = enemy.Position.Add(dir.Scale(enemy.Speed * scale))
		s.out.Move(types.MeshEnemy, id, enemy.Position)

		if enemy.Position.DistanceTo(playerPos) < s.cfg.Enemy.ContactDistance {
			if s.gameState.ApplyDamage(contactDamage) {
				return false
			}
		}
		return true
	})
}

// Kill 击杀敌人（子弹命中）
//
// 同一敌人只会被移除一次；过期 ID 返回 false 且不计分
func (s *WaveSystem) Kill(id ecs.EntityID) bool {
	if !s.enemies.Destroy(id) {
		return false
	}
	s.out.Remove(types.MeshEnemy, id)
	s.gameState.OnEnemyKilled(s.enemies.Len())
	return true
}

// Despawn 外部移除敌人，与击杀一样计入 OnEnemyKilled
func (s *WaveSystem) Despawn(id ecs.EntityID) bool {
	if !s.Kill(id) {
		return false
	}
	log.Printf("[WaveSystem] Enemy %d despawned externally", id)
	return true
}

// FindEnemyWithin 查找与 pos 距离小于 radius 的任意一个敌人
//
// 多个敌人同时满足时返回哪一个不做保证
func (s *WaveSystem) FindEnemyWithin(pos types.Vec3, radius float64) (ecs.EntityID, bool) {
	found := ecs.InvalidID
	s.enemies.Each(func(id ecs.EntityID, enemy *components.EnemyComponent) bool {
		if enemy.Position.DistanceTo(pos) < radius {
			found = id
			return false
		}
		return true
	})
	return found, found != ecs.InvalidID
}

// Enemy 获取敌人数据
func (s *WaveSystem) Enemy(id ecs.EntityID) (*components.EnemyComponent, bool) {
	return s.enemies.Get(id)
}

// EnemyIDs 返回所有存活敌人的 ID
func (s *WaveSystem) EnemyIDs() []ecs.EntityID {
	return s.enemies.AppendIDs(nil)
}

// Count 场上敌人数量
func (s *WaveSystem) Count() int {
	return s.enemies.Len()
}

// Clear 移除所有敌人（不计分）并发出移除指令
func (s *WaveSystem) Clear() {
	s.enemies.Each(func(id ecs.EntityID, _ *components.EnemyComponent) bool {
		s.out.Remove(types.MeshEnemy, id)
		return true
	})
	s.enemies.Clear()
}
