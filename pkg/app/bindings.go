package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/arenablaster/pkg/systems"
)

type keyBinding struct {
	key    ebiten.Key
	target systems.Key
}

// keyBindings 移动与开火键（WASD 与方向键等价）
var keyBindings = []keyBinding{
	{ebiten.KeyW, systems.KeyForward},
	{ebiten.KeyArrowUp, systems.KeyForward},
	{ebiten.KeyS, systems.KeyBackward},
	{ebiten.KeyArrowDown, systems.KeyBackward},
	{ebiten.KeyA, systems.KeyLeft},
	{ebiten.KeyArrowLeft, systems.KeyLeft},
	{ebiten.KeyD, systems.KeyRight},
	{ebiten.KeyArrowRight, systems.KeyRight},
	{ebiten.KeySpace, systems.KeyFire},
}

// keyReceiver 接收归一化按键事件（*systems.InputSystem）
type keyReceiver interface {
	KeyDown(k systems.Key)
	KeyUp(k systems.Key)
}

// keyState 每个目标键当前是否按下
type keyState map[systems.Key]bool

// syncKeys 汇总物理键状态并只在目标键状态变化时发送事件
//
// 同一目标的多个绑定（W 与方向键上）任一按下即视为按下，
// 松开其中一个不会中断另一个仍按住的移动
func syncKeys(held keyState, pressed func(ebiten.Key) bool, input keyReceiver) {
	now := make(keyState, len(held))
	for _, b := range keyBindings {
		if pressed(b.key) {
			now[b.target] = true
		}
	}

	for _, b := range keyBindings {
		k := b.target
		switch {
		case now[k] && !held[k]:
			input.KeyDown(k)
		case !now[k] && held[k]:
			input.KeyUp(k)
		}
		held[k] = now[k]
	}
}

type actionBinding struct {
	key    ebiten.Key
	action action
}

// actionBindings 界面操作键；S 在游戏中是后退，只在结算界面触发分享
var actionBindings = []actionBinding{
	{ebiten.KeyEnter, actionStart},
	{ebiten.KeyR, actionRestart},
	{ebiten.KeyT, actionTitle},
	{ebiten.KeyS, actionShare},
	{ebiten.KeyEscape, actionRelease},
}
