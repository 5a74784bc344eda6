package render

import (
	"testing"

	"github.com/decker502/arenablaster/pkg/config"
	"github.com/decker502/arenablaster/pkg/scenes"
	"github.com/decker502/arenablaster/pkg/types"
	"github.com/decker502/arenablaster/pkg/utils"
)

func TestSceneGraphSpawnMoveRemove(t *testing.T) {
	g := NewSceneGraph()
	f := &types.Frame{}
	f.Spawn(types.MeshEnemy, 1, types.Vec3{X: 5})
	f.Spawn(types.MeshBullet, 1, types.Vec3{Z: 1})
	g.Apply(f.Commands)

	if g.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", g.Len())
	}

	f.Reset()
	f.Move(types.MeshEnemy, 1, types.Vec3{X: 4})
	f.Remove(types.MeshBullet, 1)
	g.Apply(f.Commands)

	m, ok := g.Mesh(types.MeshEnemy, 1)
	if !ok {
		t.Fatal("enemy mesh missing")
	}
	if m.Position.X != 4 {
		t.Errorf("enemy X: got %.1f, want 4", m.Position.X)
	}
	if _, ok := g.Mesh(types.MeshBullet, 1); ok {
		t.Error("bullet mesh should be removed")
	}
}

func TestSceneGraphIgnoresUnknownIDs(t *testing.T) {
	g := NewSceneGraph()
	f := &types.Frame{}
	f.Move(types.MeshEnemy, 9, types.Vec3{X: 1})
	f.Remove(types.MeshEnemy, 9)
	f.UpdateParticles(9, []types.Vec3{{X: 1}})

	g.Apply(f.Commands)

	if g.Len() != 0 {
		t.Errorf("Len: got %d, want 0", g.Len())
	}
}

func TestSceneGraphParticlesAndCamera(t *testing.T) {
	g := NewSceneGraph()
	f := &types.Frame{}
	f.SpawnParticles(3, types.Vec3{}, []types.Vec3{{}, {}})
	f.UpdateParticles(3, []types.Vec3{{X: 1}, {X: 2}})
	f.MoveCamera(types.Vec3{Y: 1}, 0.5, -0.2)

	g.Apply(f.Commands)

	m, ok := g.Mesh(types.MeshParticles, 3)
	if !ok {
		t.Fatal("particle mesh missing")
	}
	if len(m.Points) != 2 || m.Points[1].X != 2 {
		t.Errorf("Points: got %+v", m.Points)
	}
	if cam := g.Camera(); cam.Yaw != 0.5 || cam.Pitch != -0.2 || cam.Position.Y != 1 {
		t.Errorf("Camera: got %+v", cam)
	}
}

func TestSceneGraphMirrorsArenaScene(t *testing.T) {
	s, err := scenes.NewArenaScene(config.DefaultArenaConfig(), nil, utils.NewPRNGService(3), nil)
	if err != nil {
		t.Fatalf("NewArenaScene failed: %v", err)
	}
	g := NewSceneGraph()

	g.Apply(s.Step(0).Commands)
	s.StartGame()
	s.Input().FireButton()
	g.Apply(s.Step(1.0 / 60).Commands)

	if got := g.Count(types.MeshObstacle); got != 4 {
		t.Errorf("obstacles: got %d, want 4", got)
	}
	if got := g.Count(types.MeshEnemy); got != s.Waves().Count() {
		t.Errorf("enemies: got %d, want %d", got, s.Waves().Count())
	}
	if got := g.Count(types.MeshBullet); got != s.Projectiles().Count() {
		t.Errorf("bullets: got %d, want %d", got, s.Projectiles().Count())
	}

	// 重新开始后场景图与核心保持一致
	s.StartGame()
	g.Apply(s.Step(1.0 / 60).Commands)
	if got := g.Count(types.MeshBullet); got != 0 {
		t.Errorf("bullets after restart: got %d, want 0", got)
	}
	if got := g.Count(types.MeshEnemy); got != 5 {
		t.Errorf("enemies after restart: got %d, want 5", got)
	}
}

func TestMeshesOrderIsStable(t *testing.T) {
	g := NewSceneGraph()
	f := &types.Frame{}
	f.Spawn(types.MeshEnemy, 2, types.Vec3{})
	f.Spawn(types.MeshObstacle, 1, types.Vec3{})
	f.Spawn(types.MeshEnemy, 1, types.Vec3{})
	g.Apply(f.Commands)

	meshes := g.Meshes()
	if len(meshes) != 3 {
		t.Fatalf("Meshes: got %d, want 3", len(meshes))
	}
	if meshes[0].Kind != types.MeshObstacle {
		t.Errorf("first mesh: got %s, want obstacle", meshes[0].Kind)
	}
	if meshes[1].ID != 1 || meshes[2].ID != 2 {
		t.Errorf("enemy order: got %d, %d", meshes[1].ID, meshes[2].ID)
	}
}
