package components

import "github.com/decker502/arenablaster/pkg/types"

// PlayerComponent 玩家（第一人称摄像机）状态
type PlayerComponent struct {
	Position types.Vec3
	Velocity types.Vec3 // 本帧位移

	// Yaw 绕 Y 轴旋转，Pitch 绕 X 轴旋转（YXZ 欧拉角顺序）
	Yaw   float64
	Pitch float64
}
