package game

import (
	"log"

	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/types"
)

// Phase 游戏阶段
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String 返回阶段名（日志用）
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// HighScoreStore 最高分持久化存储
//
// 读取在结算时同步进行；写入不得阻塞帧循环
type HighScoreStore interface {
	ReadHighScore() int
	WriteHighScore(score int)
}

// GameState 存储一局游戏的计数器并负责阶段切换
//
// 状态只能通过本类型的方法修改。实体（敌人、子弹、粒子）的清理与生成
// 由帧驱动器在调用 StartGame 后完成，本类型不持有实体。
type GameState struct {
	IsPlaying   bool
	Score       int
	ElapsedTime float64 // 秒
	Wave        int
	Health      float64 // [0, MaxHealth]
	Ammo        int     // 永不为负

	Phase     Phase
	HighScore int // 最近一次结算显示的最高分

	cfg      config.StateConfig
	store    HighScoreStore
	schedule WaveSchedule
	out      *types.Frame
}

// NewGameState 创建处于标题界面的游戏状态
//
// 参数：
//   - cfg: 竞技场配置（使用其中的 State 部分）
//   - store: 最高分存储，可为 nil（仅内存，结算最高分即本局分数）
//   - out: UI 事件输出缓冲
func NewGameState(cfg *config.ArenaConfig, store HighScoreStore, out *types.Frame) *GameState {
	return &GameState{
		Phase:  PhaseTitle,
		Health: cfg.State.StartHealth,
		Ammo:   cfg.State.StartAmmo,
		cfg:    cfg.State,
		store:  store,
		out:    out,
	}
}

// StartGame 重置计数器并进入游戏阶段
//
// 可以从任意阶段调用（标题界面开始、结算界面重新开始）
func (gs *GameState) StartGame() {
	gs.IsPlaying = true
	gs.Score = 0
	gs.ElapsedTime = 0
	gs.Wave = 0
	gs.Health = gs.cfg.StartHealth
	gs.Ammo = gs.cfg.StartAmmo
	gs.Phase = PhasePlaying
	gs.schedule.Cancel()

	gs.out.Emit(types.UIEvent{Kind: types.UIHideTitle})
	gs.out.Emit(types.UIEvent{Kind: types.UIHideGameOver})
	gs.out.Emit(types.HealthEvent(gs.Health))
	gs.out.Emit(types.AmmoEvent(gs.Ammo))
	gs.out.Emit(types.ScoreTimerEvent(gs.Score, gs.ElapsedTime))

	log.Printf("[GameState] Game started: health=%.0f ammo=%d", gs.Health, gs.Ammo)
}

// AdvanceTime 累加游戏时间，显示的整秒数变化时更新 UI
func (gs *GameState) AdvanceTime(deltaTime float64) {
	if !gs.IsPlaying || deltaTime <= 0 {
		return
	}
	before := int(gs.ElapsedTime)
	gs.ElapsedTime += deltaTime
	if int(gs.ElapsedTime) != before {
		gs.out.Emit(types.ScoreTimerEvent(gs.Score, gs.ElapsedTime))
	}
}

// ApplyDamage 扣除生命值
//
// 生命值被限制在 [0, MaxHealth]；降到 0 时切换到结算阶段。
// 非游戏阶段调用无效，因此结算只会触发一次。
//
// 返回：
//   - bool: 本次调用是否触发了结算
func (gs *GameState) ApplyDamage(amount float64) bool {
	if !gs.IsPlaying {
		return false
	}

	gs.Health -= amount
	if gs.Health < 0 {
		gs.Health = 0
	}
	if gs.Health > gs.cfg.MaxHealth {
		gs.Health = gs.cfg.MaxHealth
	}
	gs.out.Emit(types.HealthEvent(gs.Health))

	if gs.Health <= 0 {
		gs.GameOver()
		return true
	}
	return false
}

// SpendAmmo 消耗一发弹药，弹药为 0 时返回 false 且不做任何修改
func (gs *GameState) SpendAmmo() bool {
	if gs.Ammo <= 0 {
		return false
	}
	gs.Ammo--
	gs.out.Emit(types.AmmoEvent(gs.Ammo))
	return true
}

// BeginWave 波次 +1 并返回新的波次号
func (gs *GameState) BeginWave() int {
	gs.Wave++
	gs.out.Emit(types.WaveEvent(gs.Wave))
	return gs.Wave
}

// OnEnemyKilled 记录一次击杀
//
// 加分；remaining 为 0（本波清场）时安排下一波。
// 已有待触发的下一波时重复调用不会再次安排。
//
// 参数：
//   - remaining: 击杀后场上剩余的敌人数
func (gs *GameState) OnEnemyKilled(remaining int) {
	if !gs.IsPlaying {
		return
	}

	gs.Score += gs.cfg.KillScore
	gs.out.Emit(types.ScoreTimerEvent(gs.Score, gs.ElapsedTime))

	if remaining == 0 {
		if gs.schedule.Schedule(gs.cfg.NextWaveDelay) {
			log.Printf("[GameState] Wave %d cleared, next wave in %.1fs", gs.Wave, gs.cfg.NextWaveDelay)
		}
	}
}

// AdvanceSchedule 推进下一波计时
//
// 返回：
//   - bool: 下一波是否应在本帧开始（只返回一次 true）；
//     计时到期时若已不在游戏阶段则直接丢弃
func (gs *GameState) AdvanceSchedule(deltaTime float64) bool {
	if !gs.schedule.Advance(deltaTime) {
		return false
	}
	if !gs.IsPlaying {
		log.Printf("[GameState] Dropping stale wave timer (phase=%s)", gs.Phase)
		return false
	}
	return true
}

// NextWavePending 是否有待触发的下一波
func (gs *GameState) NextWavePending() bool {
	return gs.schedule.Pending()
}

// GameOver 结束本局
//
// 读取历史最高分，写回 max(历史, 本局)，并发出结算面板事件。
// 只在游戏阶段生效。
func (gs *GameState) GameOver() {
	if gs.Phase != PhasePlaying {
		return
	}

	gs.IsPlaying = false
	gs.Phase = PhaseGameOver
	gs.schedule.Cancel()

	best := gs.Score
	if gs.store != nil {
		prev := gs.store.ReadHighScore()
		if prev > best {
			best = prev
		}
		if best > prev {
			gs.store.WriteHighScore(best)
		}
	}
	gs.HighScore = best

	gs.out.Emit(types.GameOverEvent(gs.Score, best))
	log.Printf("[GameState] Game over: score=%d highScore=%d wave=%d time=%.1fs",
		gs.Score, best, gs.Wave, gs.ElapsedTime)
}

// ReturnToTitle 从结算界面回到标题界面
func (gs *GameState) ReturnToTitle() {
	if gs.Phase == PhasePlaying {
		return
	}
	gs.Phase = PhaseTitle
	gs.out.Emit(types.UIEvent{Kind: types.UIHideGameOver})
	gs.out.Emit(types.UIEvent{Kind: types.UIShowTitle})
}
