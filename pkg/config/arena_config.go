package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultArenaConfigPath 默认竞技场配置文件路径
const DefaultArenaConfigPath = "data/arena.yaml"

// ArenaConfig 竞技场玩法配置
//
// 包含模拟核心用到的全部调参常量。文件中未出现的字段保留默认值，
// 因此配置文件只需写出想要覆盖的部分。
//
// 配置文件位置: data/arena.yaml
type ArenaConfig struct {
	Arena     ArenaBounds     `yaml:"arena"`
	Frame     FrameConfig     `yaml:"frame"`
	Player    PlayerConfig    `yaml:"player"`
	State     StateConfig     `yaml:"state"`
	Waves     WaveConfig      `yaml:"waves"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Particles ParticleConfig  `yaml:"particles"`
	Obstacles []PointConfig   `yaml:"obstacles"`
	Share     ShareTextConfig `yaml:"share"`
}

// ArenaBounds 竞技场边界（XZ 平面上的半边长）
type ArenaBounds struct {
	HalfExtent float64 `yaml:"halfExtent"`
}

// FrameConfig 帧驱动配置
type FrameConfig struct {
	// MaxDeltaTime 单帧最大时间步长（秒），防止窗口卡顿后的大步长穿透
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
}

// PointConfig 三维坐标
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// PlayerConfig 玩家移动与视角配置
type PlayerConfig struct {
	Start PointConfig `yaml:"start"`

	// KeyboardSpeed 键盘每个方向轴的速度（单位/帧）
	KeyboardSpeed float64 `yaml:"keyboardSpeed"`

	// TouchMaxSpeed 摇杆推满时的速度（单位/帧）
	TouchMaxSpeed float64 `yaml:"touchMaxSpeed"`

	// JoystickRadius 摇杆最大拖拽半径（像素）
	JoystickRadius float64 `yaml:"joystickRadius"`

	// LookSensitivity 鼠标视角灵敏度（弧度/像素）
	LookSensitivity float64 `yaml:"lookSensitivity"`

	// ClampToArena 是否把玩家限制在竞技场范围内
	ClampToArena bool `yaml:"clampToArena"`
}

// StateConfig 开局数值与计分配置
type StateConfig struct {
	StartHealth   float64 `yaml:"startHealth"`
	MaxHealth     float64 `yaml:"maxHealth"`
	StartAmmo     int     `yaml:"startAmmo"`
	KillScore     int     `yaml:"killScore"`
	NextWaveDelay float64 `yaml:"nextWaveDelay"` // 清场后下一波延迟（秒）
}

// WaveConfig 波次配置
//
// 第 N 波敌人数量 = min(BaseCount + N*PerWave, MaxCount)
type WaveConfig struct {
	BaseCount        int     `yaml:"baseCount"`
	PerWave          int     `yaml:"perWave"`
	MaxCount         int     `yaml:"maxCount"`
	SpawnInnerRadius float64 `yaml:"spawnInnerRadius"`
	SpawnOuterRadius float64 `yaml:"spawnOuterRadius"`
	SpawnHeight      float64 `yaml:"spawnHeight"`
}

// EnemyConfig 敌人移动与接触伤害配置
type EnemyConfig struct {
	// Speed 每帧移动距离
	Speed float64 `yaml:"speed"`

	// DeltaNormalized 为 true 时移动距离按 Speed*dt*ReferenceFPS 计算
	DeltaNormalized bool    `yaml:"deltaNormalized"`
	ReferenceFPS    float64 `yaml:"referenceFPS"`

	ContactDistance        float64 `yaml:"contactDistance"`
	ContactDamagePerSecond float64 `yaml:"contactDamagePerSecond"`
}

// BulletConfig 子弹配置
type BulletConfig struct {
	Speed     float64 `yaml:"speed"`     // 每帧移动距离
	MaxAge    float64 `yaml:"maxAge"`    // 存活上限（秒）
	HitRadius float64 `yaml:"hitRadius"` // 命中判定距离
}

// ParticleConfig 击杀粒子配置
type ParticleConfig struct {
	CountMin int     `yaml:"countMin"`
	CountMax int     `yaml:"countMax"`
	Lifetime float64 `yaml:"lifetime"` // 秒
	SpreadXZ float64 `yaml:"spreadXZ"` // X/Z 速度范围 [-SpreadXZ, SpreadXZ]
	RiseY    float64 `yaml:"riseY"`    // Y 速度范围 [0, RiseY]
}

// ShareTextConfig 分享文案
type ShareTextConfig struct {
	Title          string `yaml:"title"`
	Message        string `yaml:"message"`        // 含一个 %d 占位符
	FallbackNotice string `yaml:"fallbackNotice"` // 含一个 %d 占位符
}

// DefaultArenaConfig 返回默认配置（与原版网页游戏一致）
func DefaultArenaConfig() *ArenaConfig {
	return &ArenaConfig{
		Arena: ArenaBounds{HalfExtent: 25},
		Frame: FrameConfig{MaxDeltaTime: 0.1},
		Player: PlayerConfig{
			Start:           PointConfig{X: 0, Y: 1, Z: 0},
			KeyboardSpeed:   0.1,
			TouchMaxSpeed:   0.1,
			JoystickRadius:  30,
			LookSensitivity: 0.002,
			ClampToArena:    true,
		},
		State: StateConfig{
			StartHealth:   100,
			MaxHealth:     100,
			StartAmmo:     50,
			KillScore:     10,
			NextWaveDelay: 3.0,
		},
		Waves: WaveConfig{
			BaseCount:        3,
			PerWave:          2,
			MaxCount:         20,
			SpawnInnerRadius: 5,
			SpawnOuterRadius: 20,
			SpawnHeight:      0.5,
		},
		Enemy: EnemyConfig{
			Speed:                  0.05,
			DeltaNormalized:        false,
			ReferenceFPS:           60,
			ContactDistance:        2,
			ContactDamagePerSecond: 10,
		},
		Bullet: BulletConfig{
			Speed:     0.5,
			MaxAge:    2.0,
			HitRadius: 1.0,
		},
		Particles: ParticleConfig{
			CountMin: 20,
			CountMax: 30,
			Lifetime: 0.5,
			SpreadXZ: 1,
			RiseY:    2,
		},
		Obstacles: []PointConfig{
			{X: -10, Y: 1, Z: -10},
			{X: 10, Y: 1, Z: -10},
			{X: -10, Y: 1, Z: 10},
			{X: 10, Y: 1, Z: 10},
		},
		Share: ShareTextConfig{
			Title:          "Arena Blaster 3D",
			Message:        "I scored %d points in Arena Blaster 3D! Can you beat my score?",
			FallbackNotice: "Share your score: %d points!",
		},
	}
}

// LoadArenaConfig 加载竞技场配置
//
// 从指定路径加载 YAML 格式的配置文件，覆盖默认值后校验。
//
// 参数:
//   - path: 配置文件路径（如 "data/arena.yaml"）
//
// 返回:
//   - *ArenaConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadArenaConfig(path string) (*ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena config: %w", err)
	}
	return ParseArenaConfig(data)
}

// ParseArenaConfig 从 YAML 数据解析配置
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse arena config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *ArenaConfig) Validate() error {
	if c.Arena.HalfExtent <= 0 {
		return fmt.Errorf("arena halfExtent must be > 0, got %.2f", c.Arena.HalfExtent)
	}
	if c.Frame.MaxDeltaTime <= 0 {
		return fmt.Errorf("frame maxDeltaTime must be > 0, got %.3f", c.Frame.MaxDeltaTime)
	}
	if c.Player.JoystickRadius <= 0 {
		return fmt.Errorf("player joystickRadius must be > 0, got %.1f", c.Player.JoystickRadius)
	}

	// 开局数值
	if c.State.MaxHealth <= 0 {
		return fmt.Errorf("state maxHealth must be > 0, got %.1f", c.State.MaxHealth)
	}
	if c.State.StartHealth <= 0 || c.State.StartHealth > c.State.MaxHealth {
		return fmt.Errorf("state startHealth must be in (0, %.1f], got %.1f",
			c.State.MaxHealth, c.State.StartHealth)
	}
	if c.State.StartAmmo < 0 {
		return fmt.Errorf("state startAmmo must be >= 0, got %d", c.State.StartAmmo)
	}
	if c.State.NextWaveDelay < 0 {
		return fmt.Errorf("state nextWaveDelay must be >= 0, got %.2f", c.State.NextWaveDelay)
	}

	// 波次
	if c.Waves.MaxCount <= 0 {
		return fmt.Errorf("waves maxCount must be > 0, got %d", c.Waves.MaxCount)
	}
	if c.Waves.BaseCount < 0 || c.Waves.PerWave < 0 {
		return fmt.Errorf("waves baseCount/perWave must be >= 0, got %d/%d",
			c.Waves.BaseCount, c.Waves.PerWave)
	}
	if c.Waves.BaseCount+c.Waves.PerWave <= 0 {
		return fmt.Errorf("first wave would spawn no enemies")
	}
	if c.Waves.SpawnInnerRadius < 0 || c.Waves.SpawnInnerRadius > c.Waves.SpawnOuterRadius {
		return fmt.Errorf("waves spawn annulus invalid: inner(%.1f) outer(%.1f)",
			c.Waves.SpawnInnerRadius, c.Waves.SpawnOuterRadius)
	}

	// 敌人与子弹
	if c.Enemy.Speed < 0 {
		return fmt.Errorf("enemy speed must be >= 0, got %.3f", c.Enemy.Speed)
	}
	if c.Enemy.DeltaNormalized && c.Enemy.ReferenceFPS <= 0 {
		return fmt.Errorf("enemy referenceFPS must be > 0 when deltaNormalized, got %.1f", c.Enemy.ReferenceFPS)
	}
	if c.Bullet.Speed <= 0 {
		return fmt.Errorf("bullet speed must be > 0, got %.3f", c.Bullet.Speed)
	}
	if c.Bullet.MaxAge <= 0 || c.Bullet.HitRadius <= 0 {
		return fmt.Errorf("bullet maxAge/hitRadius must be > 0, got %.2f/%.2f",
			c.Bullet.MaxAge, c.Bullet.HitRadius)
	}

	// 粒子
	if c.Particles.CountMin <= 0 || c.Particles.CountMin > c.Particles.CountMax {
		return fmt.Errorf("particles count range invalid: min(%d) max(%d)",
			c.Particles.CountMin, c.Particles.CountMax)
	}
	if c.Particles.Lifetime <= 0 {
		return fmt.Errorf("particles lifetime must be > 0, got %.2f", c.Particles.Lifetime)
	}

	// 分享文案作为 fmt 格式串使用
	if err := checkScoreFormat("share message", c.Share.Message); err != nil {
		return err
	}
	if err := checkScoreFormat("share fallbackNotice", c.Share.FallbackNotice); err != nil {
		return err
	}

	return nil
}

// checkScoreFormat 要求格式串恰好含一个 %d，且没有其他格式动词（%% 除外）
func checkScoreFormat(name, format string) error {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 >= len(format) {
			return fmt.Errorf("%s has a dangling %%: %q", name, format)
		}
		i++
		switch format[i] {
		case '%':
		case 'd':
			verbs++
		default:
			return fmt.Errorf("%s may only use %%d, got %%%c in %q", name, format[i], format)
		}
	}
	if verbs != 1 {
		return fmt.Errorf("%s must contain exactly one %%d, got %d in %q", name, verbs, format)
	}
	return nil
}

// WaveEnemyCount 返回第 wave 波的敌人数量
func (c *ArenaConfig) WaveEnemyCount(wave int) int {
	return min(c.Waves.BaseCount+wave*c.Waves.PerWave, c.Waves.MaxCount)
}
