package systems

import (
	"testing"

	"github.com/decker502/arenablaster/pkg/types"
)

func TestSpawnBurstRandomizesWithinConfig(t *testing.T) {
	w := newTestWorld()
	origin := types.Vec3{X: 3, Y: 1, Z: -2}

	for i := 0; i < 20; i++ {
		id := w.particles.SpawnBurst(origin)
		burst, ok := w.particles.Burst(id)
		if !ok {
			t.Fatal("burst not found after SpawnBurst")
		}

		n := len(burst.Positions)
		if n < 20 || n > 30 {
			t.Errorf("particle count %d outside [20, 30]", n)
		}
		if len(burst.Velocities) != n {
			t.Errorf("velocities: got %d, want %d", len(burst.Velocities), n)
		}
		if burst.RemainingLife != 0.5 {
			t.Errorf("RemainingLife: got %.2f, want 0.5", burst.RemainingLife)
		}
		for j, p := range burst.Positions {
			if p != origin {
				t.Errorf("particle %d starts at %+v, want %+v", j, p, origin)
			}
			v := burst.Velocities[j]
			if v.X < -1 || v.X > 1 || v.Z < -1 || v.Z > 1 {
				t.Errorf("particle %d XZ velocity out of range: %+v", j, v)
			}
			if v.Y < 0 || v.Y > 2 {
				t.Errorf("particle %d Y velocity out of range: %.3f", j, v.Y)
			}
		}
	}
}

func TestParticleBurstExpires(t *testing.T) {
	w := newTestWorld()
	id := w.particles.SpawnBurst(types.Vec3{Y: 1})
	w.frame.Reset()

	w.particles.Update(0.25)
	if _, ok := w.particles.Burst(id); !ok {
		t.Fatal("burst expired too early")
	}
	if got := countCommands(w.frame, types.CmdUpdateParticles, types.MeshParticles); got != 1 {
		t.Errorf("update commands: got %d, want 1", got)
	}

	w.frame.Reset()
	w.particles.Update(0.25)
	if _, ok := w.particles.Burst(id); ok {
		t.Error("burst should be removed when its life reaches 0")
	}
	if got := countCommands(w.frame, types.CmdRemoveMesh, types.MeshParticles); got != 1 {
		t.Errorf("remove commands: got %d, want 1", got)
	}
}

func TestParticlesMoveByVelocityTimesDelta(t *testing.T) {
	w := newTestWorld()
	id := w.particles.SpawnBurst(types.Vec3{})
	burst, _ := w.particles.Burst(id)
	v := burst.Velocities[0]

	w.particles.Update(0.1)

	p := burst.Positions[0]
	if !almostEqual(p.X, v.X*0.1) || !almostEqual(p.Y, v.Y*0.1) || !almostEqual(p.Z, v.Z*0.1) {
		t.Errorf("position: got %+v, want %+v", p, v.Scale(0.1))
	}
}

func TestParticleClear(t *testing.T) {
	w := newTestWorld()
	w.particles.SpawnBurst(types.Vec3{})
	w.particles.SpawnBurst(types.Vec3{})
	w.frame.Reset()

	w.particles.Clear()

	if w.particles.Count() != 0 {
		t.Errorf("Count: got %d, want 0", w.particles.Count())
	}
	if got := countCommands(w.frame, types.CmdRemoveMesh, types.MeshParticles); got != 2 {
		t.Errorf("remove commands: got %d, want 2", got)
	}
}
