package components

import "github.com/decker502/arenablaster/pkg/types"

// BulletComponent 子弹数据
type BulletComponent struct {
	Position types.Vec3
	Velocity types.Vec3 // 每帧位移，不随 deltaTime 缩放
	Age      float64    // 已存在时间（秒）
}
