// verify_waves 无窗口地驱动竞技场核心，验证波次推进与结算流程
//
// 用法：
//
//	go run ./cmd/verify_waves -waves 10 -seed 42
//	go run ./cmd/verify_waves -survive -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/scenes"
	"github.com/decker502/arenablaster/pkg/types"
	"github.com/decker502/arenablaster/pkg/utils"
)

var (
	configPath = flag.String("config", config.DefaultArenaConfigPath, "竞技场配置文件路径")
	waves      = flag.Int("waves", 10, "要清场验证的波次数")
	seed       = flag.Int64("seed", 42, "随机种子")
	survive    = flag.Bool("survive", false, "不清场，站桩直到结算")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

// memoryStore 仅内存的最高分存储
type memoryStore struct{ best int }

func (m *memoryStore) ReadHighScore() int       { return m.best }
func (m *memoryStore) WriteHighScore(score int) { m.best = score }

const stepDelta = 1.0 / 60

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadArenaConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	store := &memoryStore{}
	scene, err := scenes.NewArenaScene(cfg, store, utils.NewPRNGService(*seed), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "竞技场创建失败: %v\n", err)
		os.Exit(1)
	}
	scene.Step(0)
	scene.StartGame()

	if *survive {
		runSurvival(scene, store)
		return
	}
	if !runWaves(scene, cfg, *waves) {
		os.Exit(1)
	}
}

// runWaves 逐波清场，检查每波敌人数与下一波延迟
func runWaves(scene *scenes.ArenaScene, cfg *config.ArenaConfig, count int) bool {
	ok := true
	fmt.Printf("%-6s %-8s %-8s %-10s %s\n", "wave", "enemies", "expected", "delay(s)", "result")

	for i := 1; i <= count; i++ {
		gs := scene.GameState()
		enemies := scene.Waves().Count()
		expected := cfg.WaveEnemyCount(gs.Wave)

		for _, id := range scene.Waves().EnemyIDs() {
			scene.Waves().Kill(id)
		}

		steps := 0
		spawned := 0
		for gs.Wave == i && gs.IsPlaying && steps < 10*60 {
			f := scene.Step(stepDelta)
			spawned += countSpawns(f)
			steps++
		}
		delay := float64(steps) * stepDelta

		result := "OK"
		if enemies != expected {
			result = "FAIL (count)"
			ok = false
		}
		if gs.Wave != i+1 || spawned != cfg.WaveEnemyCount(i+1) {
			result = "FAIL (next wave)"
			ok = false
		}
		fmt.Printf("%-6d %-8d %-8d %-10.2f %s\n", i, enemies, expected, delay, result)
	}

	fmt.Printf("score: %d\n", scene.GameState().Score)
	return ok
}

// runSurvival 玩家原地不动直到被击倒
func runSurvival(scene *scenes.ArenaScene, store *memoryStore) {
	gs := scene.GameState()
	for steps := 0; gs.IsPlaying && steps < 60*60*10; steps++ {
		scene.Step(stepDelta)
	}
	fmt.Printf("phase: %s  time: %.2fs  wave: %d  health: %.1f  high score: %d\n",
		gs.Phase, gs.ElapsedTime, gs.Wave, gs.Health, store.best)
}

func countSpawns(f types.Frame) int {
	n := 0
	for _, cmd := range f.Commands {
		if cmd.Op == types.CmdSpawnMesh && cmd.Kind == types.MeshEnemy {
			n++
		}
	}
	return n
}
