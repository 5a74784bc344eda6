package components

import "github.com/decker502/arenablaster/pkg/types"

// InputDevice 当前生效的移动输入设备
type InputDevice int

const (
	InputDeviceNone InputDevice = iota
	InputDeviceKeyboard
	InputDeviceTouch
)

// String 返回设备名（日志用）
func (d InputDevice) String() string {
	switch d {
	case InputDeviceKeyboard:
		return "keyboard"
	case InputDeviceTouch:
		return "touch"
	default:
		return "none"
	}
}

// InputIntent 每帧从原始设备状态归一化得到的操作意图，不做持久化
type InputIntent struct {
	// MoveVector 竞技场平面上的位移（X→世界X，Y→世界Z），单位/帧
	MoveVector types.Vec2

	// FireRequested 本帧是否请求开火（一次按下只触发一次）
	FireRequested bool

	// ActiveDevice 产生 MoveVector 的设备
	ActiveDevice InputDevice
}
