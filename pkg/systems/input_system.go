package systems

import (
	"log"
	"math"

	"github.com/decker502/arenablaster/pkg/components"
	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/types"
)

// Key 归一化后的按键
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyFire
	keyCount
)

// MouseButton 鼠标按键
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// joystickState 虚拟摇杆状态（坐标相对摇杆中心，单位像素）
type joystickState struct {
	active         bool
	startX, startY float64
	moveX, moveY   float64
}

// InputSystem 输入状态聚合器
//
// 职责：
//   - 接收键盘、鼠标、触摸摇杆的原始事件
//   - 维护"当前生效设备"：最后一个产生事件的设备决定移动方式
//   - 在指针锁定时用鼠标位移调整玩家的 Yaw/Pitch
//   - 每帧输出一个 InputIntent（移动向量 + 一次性开火请求）
//
// 触摸与键盘使用不同的速度公式：
//   - 触摸：速度与拖拽距离成正比，拖满摇杆半径时达到上限；方向不随视角旋转
//   - 键盘：每个方向轴固定速度，向量按玩家 Yaw 旋转
type InputSystem struct {
	cfg    config.PlayerConfig
	player *components.PlayerComponent

	keys          [keyCount]bool
	active        components.InputDevice
	pointerLocked bool
	joystick      joystickState
	firePending   bool
}

// NewInputSystem 创建输入系统
//
// 参数：
//   - cfg: 玩家配置（速度、摇杆半径、灵敏度）
//   - player: 玩家组件，鼠标视角直接修改其 Yaw/Pitch
func NewInputSystem(cfg config.PlayerConfig, player *components.PlayerComponent) *InputSystem {
	return &InputSystem{
		cfg:    cfg,
		player: player,
	}
}

// Reset 清空所有按键、摇杆和开火状态（指针锁定状态保留）
func (s *InputSystem) Reset() {
	s.keys = [keyCount]bool{}
	s.joystick = joystickState{}
	s.firePending = false
	s.active = components.InputDeviceNone
}

// KeyDown 按键按下
//
// 开火键每个按下事件触发一次；按住不放不会连发，
// 除非外部输入层重复发送按下事件
func (s *InputSystem) KeyDown(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	s.keys[k] = true
	s.setActive(components.InputDeviceKeyboard)
	if k == KeyFire {
		s.firePending = true
	}
}

// KeyUp 按键抬起
func (s *InputSystem) KeyUp(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	s.keys[k] = false
	s.setActive(components.InputDeviceKeyboard)
}

// SetPointerLock 更新指针锁定状态
func (s *InputSystem) SetPointerLock(locked bool) {
	if s.pointerLocked != locked {
		log.Printf("[InputSystem] Pointer lock: %v", locked)
	}
	s.pointerLocked = locked
}

// PointerLocked 指针是否处于锁定状态
func (s *InputSystem) PointerLocked() bool {
	return s.pointerLocked
}

// PointerMove 鼠标相对位移（像素），仅在指针锁定时调整视角
func (s *InputSystem) PointerMove(dx, dy float64) {
	if !s.pointerLocked || s.player == nil {
		return
	}
	s.player.Yaw -= dx * s.cfg.LookSensitivity
	s.player.Pitch -= dy * s.cfg.LookSensitivity
	s.player.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, s.player.Pitch))
}

// MouseDown 鼠标按下，左键在指针锁定时开火
func (s *InputSystem) MouseDown(button MouseButton) {
	if button == MouseButtonLeft && s.pointerLocked {
		s.firePending = true
	}
}

// TouchStart 摇杆区域开始触摸
func (s *InputSystem) TouchStart(x, y float64) {
	s.joystick = joystickState{
		active: true,
		startX: x,
		startY: y,
		moveX:  x,
		moveY:  y,
	}
	s.setActive(components.InputDeviceTouch)
}

// TouchMove 摇杆拖动
func (s *InputSystem) TouchMove(x, y float64) {
	if !s.joystick.active {
		return
	}
	s.joystick.moveX = x
	s.joystick.moveY = y
	s.setActive(components.InputDeviceTouch)
}

// TouchEnd 摇杆松开
func (s *InputSystem) TouchEnd() {
	s.joystick.active = false
	s.setActive(components.InputDeviceTouch)
}

// FireButton 触摸开火按钮
func (s *InputSystem) FireButton() {
	s.firePending = true
}

// JoystickActive 摇杆是否正被按住
func (s *InputSystem) JoystickActive() bool {
	return s.joystick.active
}

// KnobOffset 摇杆手柄相对中心的显示偏移（拖拽距离限制在摇杆半径内）
func (s *InputSystem) KnobOffset() (float64, float64) {
	if !s.joystick.active {
		return 0, 0
	}
	dx := s.joystick.moveX - s.joystick.startX
	dy := s.joystick.moveY - s.joystick.startY
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0
	}
	dist := math.Min(d, s.cfg.JoystickRadius)
	return dx / d * dist, dy / d * dist
}

// Intent 计算本帧操作意图，并消费挂起的开火请求
func (s *InputSystem) Intent() components.InputIntent {
	intent := components.InputIntent{
		FireRequested: s.firePending,
		ActiveDevice:  s.active,
	}
	s.firePending = false

	switch s.active {
	case components.InputDeviceTouch:
		intent.MoveVector = s.touchVector()
	case components.InputDeviceKeyboard:
		intent.MoveVector = s.keyboardVector()
	}
	return intent
}

// touchVector 摇杆方向 × min(拖拽距离/半径, 1) × 最大速度
func (s *InputSystem) touchVector() types.Vec2 {
	if !s.joystick.active {
		return types.Vec2{}
	}
	dx := s.joystick.moveX - s.joystick.startX
	dy := s.joystick.moveY - s.joystick.startY
	d := math.Hypot(dx, dy)
	if d == 0 {
		return types.Vec2{}
	}
	speed := math.Min(d/s.cfg.JoystickRadius, 1) * s.cfg.TouchMaxSpeed
	return types.Vec2{X: dx / d * speed, Y: dy / d * speed}
}

// keyboardVector 四个方向键叠加成轴对齐向量，再按 Yaw 旋转到世界坐标
func (s *InputSystem) keyboardVector() types.Vec2 {
	var lx, lz float64
	if s.keys[KeyForward] {
		lz -= s.cfg.KeyboardSpeed
	}
	if s.keys[KeyBackward] {
		lz += s.cfg.KeyboardSpeed
	}
	if s.keys[KeyLeft] {
		lx -= s.cfg.KeyboardSpeed
	}
	if s.keys[KeyRight] {
		lx += s.cfg.KeyboardSpeed
	}
	if lx == 0 && lz == 0 {
		return types.Vec2{}
	}

	var yaw float64
	if s.player != nil {
		yaw = s.player.Yaw
	}
	sin, cos := math.Sincos(yaw)
	return types.Vec2{
		X: lx*cos + lz*sin,
		Y: -lx*sin + lz*cos,
	}
}

func (s *InputSystem) setActive(device components.InputDevice) {
	if s.active != device {
		log.Printf("[InputSystem] Active input device: %s -> %s", s.active, device)
		s.active = device
	}
}

// AimDirection 根据 Yaw/Pitch 计算视线方向（YXZ 欧拉角，默认朝 -Z）
func AimDirection(yaw, pitch float64) types.Vec3 {
	sinYaw, cosYaw := math.Sincos(yaw)
	sinPitch, cosPitch := math.Sincos(pitch)
	return types.Vec3{
		X: -sinYaw * cosPitch,
		Y: sinPitch,
		Z: -cosYaw * cosPitch,
	}
}
