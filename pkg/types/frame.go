package types

import (
	"fmt"

	"github.com/decker502/arenablaster/pkg/ecs"
)

// MeshKind 场景网格类型，渲染协作者据此选择几何体与材质
type MeshKind int

const (
	MeshUnknown MeshKind = iota
	MeshEnemy
	MeshBullet
	MeshParticles
	MeshObstacle
)

// String 返回网格类型名（日志用）
func (k MeshKind) String() string {
	switch k {
	case MeshEnemy:
		return "enemy"
	case MeshBullet:
		return "bullet"
	case MeshParticles:
		return "particles"
	case MeshObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// CommandOp 场景变更指令类型
type CommandOp int

const (
	CmdSpawnMesh CommandOp = iota + 1
	CmdRemoveMesh
	CmdMoveMesh
	CmdUpdateParticles
	CmdMoveCamera
)

// SceneCommand 核心发给渲染协作者的一条场景变更指令
//
// 核心只持有逻辑实体，渲染图元由协作者按 (Kind, ID) 自行维护
type SceneCommand struct {
	Op       CommandOp
	Kind     MeshKind
	ID       ecs.EntityID
	Position Vec3

	// Points 粒子簇中每个粒子的位置（仅 CmdSpawnMesh/CmdUpdateParticles + MeshParticles）
	Points []Vec3

	// Yaw/Pitch 摄像机朝向（仅 CmdMoveCamera）
	Yaw, Pitch float64
}

// UIEventKind UI 更新事件类型
type UIEventKind int

const (
	UIScoreTimer UIEventKind = iota + 1
	UIHealth
	UIAmmo
	UIWave
	UIShowTitle
	UIHideTitle
	UIShowGameOver
	UIHideGameOver
	UINotification
)

// UIEvent 核心发给 UI 协作者的一次显示更新
//
// Text 为已经格式化好的显示文本，Value 保留原始数值供进度条等控件使用
type UIEvent struct {
	Kind  UIEventKind
	Value float64
	Text  string

	// HighScore 仅 UIShowGameOver 使用
	HighScore int
}

// Frame 一帧内产生的全部输出
//
// 由帧驱动器在每帧开始时 Reset，各系统在 Update 中追加
type Frame struct {
	Commands []SceneCommand
	UIEvents []UIEvent
}

// Reset 清空输出，保留底层数组以避免每帧分配
func (f *Frame) Reset() {
	f.Commands = f.Commands[:0]
	f.UIEvents = f.UIEvents[:0]
}

// Spawn 追加"生成网格"指令
func (f *Frame) Spawn(kind MeshKind, id ecs.EntityID, pos Vec3) {
	f.Commands = append(f.Commands, SceneCommand{Op: CmdSpawnMesh, Kind: kind, ID: id, Position: pos})
}

// SpawnParticles 追加"生成粒子簇"指令
func (f *Frame) SpawnParticles(id ecs.EntityID, origin Vec3, points []Vec3) {
	f.Commands = append(f.Commands, SceneCommand{
		Op:       CmdSpawnMesh,
		Kind:     MeshParticles,
		ID:       id,
		Position: origin,
		Points:   append([]Vec3(nil), points...),
	})
}

// Remove 追加"移除网格"指令
func (f *Frame) Remove(kind MeshKind, id ecs.EntityID) {
	f.Commands = append(f.Commands, SceneCommand{Op: CmdRemoveMesh, Kind: kind, ID: id})
}

// Move 追加"移动网格"指令
func (f *Frame) Move(kind MeshKind, id ecs.EntityID, pos Vec3) {
	f.Commands = append(f.Commands, SceneCommand{Op: CmdMoveMesh, Kind: kind, ID: id, Position: pos})
}

// UpdateParticles 追加"更新粒子位置"指令
// points 会被复制，调用方可以继续修改原切片
func (f *Frame) UpdateParticles(id ecs.EntityID, points []Vec3) {
	f.Commands = append(f.Commands, SceneCommand{
		Op:     CmdUpdateParticles,
		Kind:   MeshParticles,
		ID:     id,
		Points: append([]Vec3(nil), points...),
	})
}

// MoveCamera 追加摄像机位姿指令
func (f *Frame) MoveCamera(pos Vec3, yaw, pitch float64) {
	f.Commands = append(f.Commands, SceneCommand{Op: CmdMoveCamera, Position: pos, Yaw: yaw, Pitch: pitch})
}

// Emit 追加一条 UI 事件
func (f *Frame) Emit(ev UIEvent) {
	f.UIEvents = append(f.UIEvents, ev)
}

// ScoreTimerEvent 构造分数/时间文本事件
func ScoreTimerEvent(score int, elapsed float64) UIEvent {
	return UIEvent{
		Kind:  UIScoreTimer,
		Value: float64(score),
		Text:  fmt.Sprintf("Score: %d | Time: %ds", score, int(elapsed)),
	}
}

// HealthEvent 构造生命值事件（Text 为血条宽度百分比）
func HealthEvent(health float64) UIEvent {
	return UIEvent{Kind: UIHealth, Value: health, Text: fmt.Sprintf("%g%%", health)}
}

// AmmoEvent 构造弹药事件
func AmmoEvent(ammo int) UIEvent {
	return UIEvent{Kind: UIAmmo, Value: float64(ammo), Text: fmt.Sprintf("Ammo: %d", ammo)}
}

// WaveEvent 构造波次事件
func WaveEvent(wave int) UIEvent {
	return UIEvent{Kind: UIWave, Value: float64(wave), Text: fmt.Sprintf("Wave: %d", wave)}
}

// GameOverEvent 构造结算面板事件
func GameOverEvent(score, highScore int) UIEvent {
	return UIEvent{
		Kind:      UIShowGameOver,
		Value:     float64(score),
		Text:      fmt.Sprintf("Score: %d", score),
		HighScore: highScore,
	}
}

// HighScoreText 结算面板上的最高分文本
func (e UIEvent) HighScoreText() string {
	return fmt.Sprintf("High Score: %d", e.HighScore)
}
