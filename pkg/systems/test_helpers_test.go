package systems

import (
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/types"
	"github.com/decker502/arenablaster/pkg/utils"
)

// testWorld 测试用的完整系统组合（固定随机种子）
type testWorld struct {
	cfg         *config.ArenaConfig
	frame       *types.Frame
	gs          *game.GameState
	rng         *utils.PRNGService
	waves       *WaveSystem
	particles   *ParticleSystem
	projectiles *ProjectileSystem
}

func newTestWorld() *testWorld {
	return newTestWorldWithConfig(config.DefaultArenaConfig())
}

func newTestWorldWithConfig(cfg *config.ArenaConfig) *testWorld {
	w := &testWorld{
		cfg:   cfg,
		frame: &types.Frame{},
		rng:   utils.NewPRNGService(42),
	}
	w.gs = game.NewGameState(cfg, nil, w.frame)
	w.waves = NewWaveSystem(w.gs, cfg, w.rng, w.frame)
	w.particles = NewParticleSystem(cfg.Particles, w.rng, w.frame)
	w.projectiles = NewProjectileSystem(w.gs, w.waves, w.particles, cfg, w.frame)
	return w
}

// countCommands 统计指定类型与操作的场景指令数
func countCommands(frame *types.Frame, op types.CommandOp, kind types.MeshKind) int {
	n := 0
	for _, cmd := range frame.Commands {
		if cmd.Op == op && cmd.Kind == kind {
			n++
		}
	}
	return n
}

func countUIEvents(frame *types.Frame, kind types.UIEventKind) int {
	n := 0
	for _, ev := range frame.UIEvents {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
