// Package app 提供游戏应用的核心包装器
//
// 该包把竞技场核心、渲染协作者和 ebiten 输入轮询组装成一个 ebiten.Game，
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/embedded"
	"github.com/decker502/arenablaster/pkg/game"
	"github.com/decker502/arenablaster/pkg/render"
	"github.com/decker502/arenablaster/pkg/scenes"
	"github.com/decker502/arenablaster/pkg/systems"
	"github.com/decker502/arenablaster/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 720
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 竞技场配置文件路径；文件不存在时回退到嵌入的默认配置
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Store 最高分存储，可为 nil
	Store game.HighScoreStore
	// Sharer 原生分享实现，可为 nil
	Sharer game.Sharer
	// TouchControls 显示触摸操作提示
	TouchControls bool
}

// action 与模拟无关的界面操作
type action int

const (
	actionNone action = iota
	actionStart
	actionRestart
	actionTitle
	actionShare
	actionRelease
	actionCapture
)

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    *scenes.ArenaScene
	input    *systems.InputSystem
	graph    *render.SceneGraph
	hud      *render.HUD
	renderer *render.Renderer

	joystick       render.JoystickView
	joystickTouch  ebiten.TouchID
	touchIDs       []ebiten.TouchID
	lastCursorX    int
	lastCursorY    int
	cursorCaptured bool
	heldKeys       keyState

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	arenaCfg, err := LoadArenaConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("竞技场配置加载失败: %w", err)
	}

	rng := utils.NewPRNGService(cfg.Seed)
	scene, err := scenes.NewArenaScene(arenaCfg, cfg.Store, rng, cfg.Sharer)
	if err != nil {
		return nil, fmt.Errorf("竞技场创建失败: %w", err)
	}

	a := &App{
		scene:    scene,
		input:    scene.Input(),
		graph:    render.NewSceneGraph(),
		hud:      render.NewHUD(),
		renderer: render.NewRenderer(arenaCfg.Arena.HalfExtent, cfg.TouchControls),
		heldKeys: make(keyState),
		verbose:  cfg.Verbose,
	}
	a.joystick.Radius = arenaCfg.Player.JoystickRadius

	log.Printf("[App] Arena ready (seed=%d)", rng.Seed())
	return a, nil
}

// LoadArenaConfig 加载竞技场配置
//
// 优先读取磁盘文件；文件不存在时读取嵌入的同名文件（移动端没有工作目录）
func LoadArenaConfig(path string) (*config.ArenaConfig, error) {
	if path == "" {
		path = config.DefaultArenaConfigPath
	}

	cfg, err := config.LoadArenaConfig(path)
	if err == nil {
		log.Printf("[Config] 加载竞技场配置: %s", path)
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || !embedded.IsInitialized() {
		return nil, err
	}

	data, embedErr := embedded.ReadFile(path)
	if embedErr != nil {
		return nil, fmt.Errorf("%w (embedded: %v)", err, embedErr)
	}
	log.Printf("[Config] 使用嵌入的竞技场配置: %s", path)
	return config.ParseArenaConfig(data)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()

	a.pollKeyboard()
	a.pollMouse()
	a.pollTouches()

	deltaTime := 1.0 / float64(ebiten.TPS())
	frame := a.scene.Step(deltaTime)
	a.graph.Apply(frame.Commands)
	a.hud.Apply(frame.UIEvents)
	a.hud.Update(deltaTime)

	a.joystick.Active = a.input.JoystickActive()
	a.joystick.KnobX, a.joystick.KnobY = a.input.KnobOffset()
	return nil
}

// updateWindow F11 切换全屏
func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

// pollKeyboard 把键盘状态转换为输入系统的按下/抬起事件
func (a *App) pollKeyboard() {
	syncKeys(a.heldKeys, ebiten.IsKeyPressed, a.input)

	for _, b := range actionBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			a.perform(a.resolve(b.action))
		}
	}
}

// pollMouse 鼠标点击与指针锁定下的视角
func (a *App) pollMouse() {
	x, y := ebiten.CursorPosition()
	if a.cursorCaptured && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		a.input.PointerMove(float64(x-a.lastCursorX), float64(y-a.lastCursorY))
	}
	a.lastCursorX, a.lastCursorY = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if act := a.clickAction(); act != actionNone {
			a.perform(act)
		} else {
			a.input.MouseDown(systems.MouseButtonLeft)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.input.MouseDown(systems.MouseButtonRight)
	}
}

// pollTouches 左半屏为移动摇杆，右半屏为开火按钮
func (a *App) pollTouches() {
	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		x, y := ebiten.TouchPosition(id)
		if !a.scene.GameState().IsPlaying {
			a.perform(a.resolve(actionStart))
			continue
		}
		if x < ScreenWidth/2 && !a.input.JoystickActive() {
			a.joystickTouch = id
			a.joystick.CenterX, a.joystick.CenterY = float64(x), float64(y)
			a.input.TouchStart(float64(x), float64(y))
			continue
		}
		a.input.FireButton()
	}

	if !a.input.JoystickActive() {
		return
	}
	if inpututil.IsTouchJustReleased(a.joystickTouch) {
		a.input.TouchEnd()
		return
	}
	x, y := ebiten.TouchPosition(a.joystickTouch)
	a.input.TouchMove(float64(x), float64(y))
}

// clickAction 左键点击在当前阶段对应的界面操作
//
// 标题界面开始、结算界面重新开始、游戏中未锁定时先锁定指针；
// 返回 actionNone 表示点击交给输入系统开火
func (a *App) clickAction() action {
	switch a.scene.GameState().Phase {
	case game.PhaseTitle:
		return actionStart
	case game.PhaseGameOver:
		return actionRestart
	}
	if !a.cursorCaptured {
		return actionCapture
	}
	return actionNone
}

// resolve 根据当前阶段决定按键对应的界面操作
func (a *App) resolve(act action) action {
	phase := a.scene.GameState().Phase
	switch act {
	case actionStart:
		switch phase {
		case game.PhaseTitle:
			return actionStart
		case game.PhaseGameOver:
			return actionRestart
		}
	case actionRestart, actionTitle, actionShare:
		if phase == game.PhaseGameOver {
			return act
		}
	case actionRelease:
		return actionRelease
	}
	return actionNone
}

// perform 执行界面操作
func (a *App) perform(act action) {
	switch act {
	case actionStart, actionRestart:
		a.scene.StartGame()
		a.setCursorCaptured(true)
	case actionTitle:
		a.scene.ReturnToTitle()
	case actionShare:
		a.scene.Share()
	case actionRelease:
		a.setCursorCaptured(false)
	case actionCapture:
		a.setCursorCaptured(true)
	}
}

func (a *App) setCursorCaptured(captured bool) {
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	a.cursorCaptured = captured
	a.lastCursorX, a.lastCursorY = ebiten.CursorPosition()
	a.input.SetPointerLock(captured)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.graph, a.hud, a.joystick)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Scene 返回竞技场场景
func (a *App) Scene() *scenes.ArenaScene {
	return a.scene
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
