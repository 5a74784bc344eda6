package components

import "github.com/decker502/arenablaster/pkg/types"

// ParticleBurstComponent 一次击杀产生的粒子簇
//
// Positions 与 Velocities 一一对应；整簇共享同一个剩余寿命，
// 寿命耗尽时整簇一起回收
type ParticleBurstComponent struct {
	Positions     []types.Vec3
	Velocities    []types.Vec3 // 单位/秒
	RemainingLife float64      // 秒
}
