package components

import "github.com/decker502/arenablaster/pkg/types"

// EnemyComponent 敌人数据
// 敌人只会径直走向玩家，速度大小恒定
type EnemyComponent struct {
	Position types.Vec3
	Speed    float64 // 每帧移动距离
}
