package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/arenablaster/pkg/components"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/ecs"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/systems"
	"github.com/decker502/arenablaster/pkg/types"
	"github.com/decker502/arenablaster/pkg/utils"
)

// ArenaScene 竞技场帧驱动器
//
// 持有一局游戏的全部状态（游戏状态、玩家、各系统），
// 每帧由外壳调用一次 Step，返回本帧的场景指令与 UI 事件。
//
// 系统更新顺序（仅游戏阶段）：
//  1. 计时
//  2. 输入 → 玩家移动 → 开火
//  3. 子弹（命中时击杀敌人、生成粒子）
//  4. 敌人（移动、接触伤害）
//  5. 粒子
//  6. 下一波计时
//
// 两次 Step 之间调用的 StartGame/ReturnToTitle/Share 产生的输出
// 会合并进下一次 Step 的结果
type ArenaScene struct {
	cfg *config.ArenaConfig
	rng *utils.PRNGService

	// frame 各系统写入的输出缓冲；published 为上一次 Step 交出的结果
	frame     types.Frame
	published types.Frame

	gameState *game.GameState
	player    components.PlayerComponent

	input       *systems.InputSystem
	waves       *systems.WaveSystem
	projectiles *systems.ProjectileSystem
	particles   *systems.ParticleSystem
	share       *game.ShareService

	obstacles []ecs.EntityID
}

// NewArenaScene 创建处于标题界面的竞技场
//
// 参数：
//   - cfg: 竞技场配置，创建前会校验
//   - store: 最高分存储，可为 nil
//   - rng: 随机数服务
//   - sharer: 原生分享实现，可为 nil（分享时降级为提示）
//
// 返回：
//   - *ArenaScene: 场景实例；障碍物生成指令与标题面板事件在第一次 Step 中交出
//   - error: 配置无效时返回错误
func NewArenaScene(cfg *config.ArenaConfig, store game.HighScoreStore, rng *utils.PRNGService, sharer game.Sharer) (*ArenaScene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("arena config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	if rng == nil {
		rng = utils.NewPRNGService(0)
	}

	s := &ArenaScene{
		cfg: cfg,
		rng: rng,
	}
	s.resetPlayer()

	s.gameState = game.NewGameState(cfg, store, &s.frame)
	s.input = systems.NewInputSystem(cfg.Player, &s.player)
	s.waves = systems.NewWaveSystem(s.gameState, cfg, rng, &s.frame)
	s.particles = systems.NewParticleSystem(cfg.Particles, rng, &s.frame)
	s.projectiles = systems.NewProjectileSystem(s.gameState, s.waves, s.particles, cfg, &s.frame)
	s.share = game.NewShareService(sharer, s, cfg.Share)

	s.spawnObstacles()
	s.frame.Emit(types.UIEvent{Kind: types.UIShowTitle})
	s.frame.Emit(types.HealthEvent(s.gameState.Health))
	s.frame.Emit(types.AmmoEvent(s.gameState.Ammo))
	s.frame.Emit(types.ScoreTimerEvent(0, 0))
	s.frame.MoveCamera(s.player.Position, s.player.Yaw, s.player.Pitch)

	log.Printf("[ArenaScene] Arena created: halfExtent=%.0f obstacles=%d seed=%d",
		cfg.Arena.HalfExtent, len(s.obstacles), rng.Seed())
	return s, nil
}

// spawnObstacles 障碍物只是装饰，不参与碰撞，ID 由独立计数生成
func (s *ArenaScene) spawnObstacles() {
	pool := ecs.NewPool[types.Vec3](len(s.cfg.Obstacles))
	for _, p := range s.cfg.Obstacles {
		pos := types.Vec3{X: p.X, Y: p.Y, Z: p.Z}
		id := pool.Create(pos)
		s.obstacles = append(s.obstacles, id)
		s.frame.Spawn(types.MeshObstacle, id, pos)
	}
}

func (s *ArenaScene) resetPlayer() {
	start := s.cfg.Player.Start
	s.player = components.PlayerComponent{
		Position: types.Vec3{X: start.X, Y: start.Y, Z: start.Z},
	}
}

// StartGame 开始（或重新开始）一局
//
// 清空场上所有敌人、子弹、粒子，玩家回到出生点，然后生成第一波
func (s *ArenaScene) StartGame() {
	s.waves.Clear()
	s.projectiles.Clear()
	s.particles.Clear()

	s.resetPlayer()
	s.input.Reset()

	s.gameState.StartGame()
	s.waves.StartNextWave()
}

// ReturnToTitle 从结算界面回到标题界面
func (s *ArenaScene) ReturnToTitle() {
	s.gameState.ReturnToTitle()
}

// Share 分享当前分数
//
// 返回：
//   - bool: 原生分享是否成功；失败时已降级为提示
func (s *ArenaScene) Share() bool {
	return s.share.ShareScore(s.gameState.Score)
}

// Notify 实现 game.Notifier：提示文本以 UI 事件的形式交给外壳
func (s *ArenaScene) Notify(text string) {
	s.frame.Emit(types.UIEvent{Kind: types.UINotification, Text: text})
}

// Step 推进一帧
//
// deltaTime 被限制在 [0, MaxDeltaTime]。非游戏阶段只更新摄像机朝向。
//
// 返回：
//   - types.Frame: 本帧输出，底层切片在下一次 Step 前有效
func (s *ArenaScene) Step(deltaTime float64) types.Frame {
	dt := math.Max(0, math.Min(deltaTime, s.cfg.Frame.MaxDeltaTime))

	if s.gameState.IsPlaying {
		s.gameState.AdvanceTime(dt)

		// 下一波计时先于实体更新推进：本帧内清场安排的计时从下一帧开始计
		if s.gameState.AdvanceSchedule(dt) {
			s.waves.StartNextWave()
		}

		intent := s.input.Intent()
		s.movePlayer(intent.MoveVector)
		if intent.FireRequested {
			aim := systems.AimDirection(s.player.Yaw, s.player.Pitch)
			s.projectiles.Fire(s.player.Position, aim)
		}

		s.projectiles.Update(dt)
		s.waves.Update(dt, s.player.Position)
		s.particles.Update(dt)
	} else {
		// 丢弃非游戏阶段的开火请求
		s.input.Intent()
	}

	s.frame.MoveCamera(s.player.Position, s.player.Yaw, s.player.Pitch)
	return s.publish()
}

// publish 把输出缓冲交出并清空，两块缓冲交替复用底层数组
func (s *ArenaScene) publish() types.Frame {
	s.published.Commands = append(s.published.Commands[:0], s.frame.Commands...)
	s.published.UIEvents = append(s.published.UIEvents[:0], s.frame.UIEvents...)
	s.frame.Reset()
	return s.published
}

// movePlayer 按输入位移移动玩家（竞技场平面 X/Z）
func (s *ArenaScene) movePlayer(move types.Vec2) {
	s.player.Velocity = types.Vec3{X: move.X, Z: move.Y}
	if move.IsZero() {
		return
	}

	pos := s.player.Position.Add(s.player.Velocity)
	if s.cfg.Player.ClampToArena {
		h := s.cfg.Arena.HalfExtent
		pos.X = math.Max(-h, math.Min(h, pos.X))
		pos.Z = math.Max(-h, math.Min(h, pos.Z))
	}
	s.player.Position = pos
}

// Input 输入系统，外壳把原始设备事件转发给它
func (s *ArenaScene) Input() *systems.InputSystem {
	return s.input
}

// GameState 当前游戏状态（只读使用）
func (s *ArenaScene) GameState() *game.GameState {
	return s.gameState
}

// Player 玩家状态快照
func (s *ArenaScene) Player() components.PlayerComponent {
	return s.player
}

// Waves 敌人波次系统
func (s *ArenaScene) Waves() *systems.WaveSystem {
	return s.waves
}

// Projectiles 子弹系统
func (s *ArenaScene) Projectiles() *systems.ProjectileSystem {
	return s.projectiles
}

// Particles 粒子系统
func (s *ArenaScene) Particles() *systems.ParticleSystem {
	return s.particles
}

// Config 竞技场配置
func (s *ArenaScene) Config() *config.ArenaConfig {
	return s.cfg
}
