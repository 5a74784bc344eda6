// Package render 把核心输出的场景指令与 UI 事件落地为可绘制的状态，
// 并用 ebiten 以俯视角绘制竞技场
package render

import (
	"log"
	"sort"

	"github.com/decker502/arenablaster/pkg/ecs"
	"github.com/decker502/arenablaster/pkg/types"
)

// Mesh 场景中的一个逻辑图元
type Mesh struct {
	Kind     types.MeshKind
	ID       ecs.EntityID
	Position types.Vec3
	Points   []types.Vec3 // 仅粒子簇
}

// Camera 摄像机位姿
type Camera struct {
	Position   types.Vec3
	Yaw, Pitch float64
}

type meshKey struct {
	kind types.MeshKind
	id   ecs.EntityID
}

// SceneGraph 场景图协作者
//
// 以 (Kind, ID) 为键维护图元表。核心保证每个实体只生成、移除一次，
// 这里对未知 ID 的移动/移除只记录日志
type SceneGraph struct {
	meshes map[meshKey]*Mesh
	camera Camera
}

// NewSceneGraph 创建空场景图
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		meshes: make(map[meshKey]*Mesh),
	}
}

// Apply 依次执行一帧的场景指令
func (g *SceneGraph) Apply(commands []types.SceneCommand) {
	for i := range commands {
		g.apply(&commands[i])
	}
}

func (g *SceneGraph) apply(cmd *types.SceneCommand) {
	key := meshKey{kind: cmd.Kind, id: cmd.ID}

	switch cmd.Op {
	case types.CmdSpawnMesh:
		if _, exists := g.meshes[key]; exists {
			log.Printf("[SceneGraph] Warning: duplicate spawn %s/%d", cmd.Kind, cmd.ID)
		}
		g.meshes[key] = &Mesh{
			Kind:     cmd.Kind,
			ID:       cmd.ID,
			Position: cmd.Position,
			Points:   append([]types.Vec3(nil), cmd.Points...),
		}

	case types.CmdRemoveMesh:
		if _, exists := g.meshes[key]; !exists {
			log.Printf("[SceneGraph] Warning: remove of unknown mesh %s/%d", cmd.Kind, cmd.ID)
			return
		}
		delete(g.meshes, key)

	case types.CmdMoveMesh:
		if m, ok := g.meshes[key]; ok {
			m.Position = cmd.Position
		}

	case types.CmdUpdateParticles:
		if m, ok := g.meshes[key]; ok {
			m.Points = append(m.Points[:0], cmd.Points...)
		}

	case types.CmdMoveCamera:
		g.camera = Camera{Position: cmd.Position, Yaw: cmd.Yaw, Pitch: cmd.Pitch}
	}
}

// Mesh 按类型和 ID 查找图元
func (g *SceneGraph) Mesh(kind types.MeshKind, id ecs.EntityID) (*Mesh, bool) {
	m, ok := g.meshes[meshKey{kind: kind, id: id}]
	return m, ok
}

// Count 指定类型的图元数量
func (g *SceneGraph) Count(kind types.MeshKind) int {
	n := 0
	for k := range g.meshes {
		if k.kind == kind {
			n++
		}
	}
	return n
}

// Len 图元总数
func (g *SceneGraph) Len() int {
	return len(g.meshes)
}

// Camera 当前摄像机位姿
func (g *SceneGraph) Camera() Camera {
	return g.camera
}

// Meshes 返回按 (Kind, ID) 排序的图元列表，保证绘制顺序稳定
func (g *SceneGraph) Meshes() []*Mesh {
	out := make([]*Mesh, 0, len(g.meshes))
	for _, m := range g.meshes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind > out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}
