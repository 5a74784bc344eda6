package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata Manager
func openTestGdata(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("arena_hs_test_%s_%d", testName, time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

func TestHighScoreManagerNilGdata(t *testing.T) {
	m, err := NewHighScoreManager(nil)
	if err != nil {
		t.Fatalf("NewHighScoreManager(nil) error: %v", err)
	}
	defer m.Close()

	if got := m.ReadHighScore(); got != 0 {
		t.Errorf("ReadHighScore without storage: got %d, want 0", got)
	}

	// 降级模式下仍在内存中记住最高分
	m.WriteHighScore(70)
	if got := m.ReadHighScore(); got != 70 {
		t.Errorf("ReadHighScore after write: got %d, want 70", got)
	}
}

func TestHighScoreManagerNoPriorValue(t *testing.T) {
	manager := openTestGdata(t, "empty")

	m, err := NewHighScoreManager(manager)
	if err != nil {
		t.Fatalf("NewHighScoreManager() error: %v", err)
	}
	defer m.Close()

	if got := m.ReadHighScore(); got != 0 {
		t.Errorf("ReadHighScore with no save: got %d, want 0", got)
	}
}

func TestHighScoreManagerPersistsAcrossInstances(t *testing.T) {
	manager := openTestGdata(t, "persist")

	m1, err := NewHighScoreManager(manager)
	if err != nil {
		t.Fatalf("NewHighScoreManager() error: %v", err)
	}
	m1.WriteHighScore(40)
	m1.WriteHighScore(90) // 只保证最后一次落盘
	if err := m1.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	m2, err := NewHighScoreManager(manager)
	if err != nil {
		t.Fatalf("NewHighScoreManager() error: %v", err)
	}
	defer m2.Close()

	if got := m2.ReadHighScore(); got != 90 {
		t.Errorf("ReadHighScore after reload: got %d, want 90", got)
	}
}

func TestHighScoreRoundTrip(t *testing.T) {
	manager := openTestGdata(t, "roundtrip")

	m, err := NewHighScoreManager(manager)
	if err != nil {
		t.Fatalf("NewHighScoreManager() error: %v", err)
	}
	m.WriteHighScore(55)

	// writeHighScore(readHighScore()) 之后读取到相同的值
	m.WriteHighScore(m.ReadHighScore())
	if got := m.ReadHighScore(); got != 55 {
		t.Errorf("ReadHighScore after round trip: got %d, want 55", got)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	if err := m.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := m.ReadHighScore(); got != 55 {
		t.Errorf("ReadHighScore after Load: got %d, want 55", got)
	}
}

func TestHighScoreNeverDecreasesThroughGameOver(t *testing.T) {
	manager := openTestGdata(t, "monotonic")

	m, err := NewHighScoreManager(manager)
	if err != nil {
		t.Fatalf("NewHighScoreManager() error: %v", err)
	}
	defer m.Close()

	gs, _ := newTestGameState(m)
	for _, score := range []int{30, 120, 60, 0, 110} {
		gs.StartGame()
		gs.Score = score
		gs.GameOver()
	}

	if got := m.ReadHighScore(); got != 120 {
		t.Errorf("ReadHighScore after several games: got %d, want 120", got)
	}
}

func TestHighScoreManagerCorruptSave(t *testing.T) {
	manager := openTestGdata(t, "corrupt")
	if err := manager.SaveObjectProp(highScoreObject, highScoreProperty, []byte("highScore: [oops")); err != nil {
		t.Fatalf("failed to write corrupt save: %v", err)
	}

	m, err := NewHighScoreManager(manager)
	if err != nil {
		t.Fatalf("NewHighScoreManager() should not fail on corrupt save: %v", err)
	}
	defer m.Close()

	if got := m.ReadHighScore(); got != 0 {
		t.Errorf("ReadHighScore with corrupt save: got %d, want 0", got)
	}
	if err := m.Load(); err == nil {
		t.Error("Load() should report corrupt save")
	}
}

func TestHighScoreManagerWriteAfterClose(t *testing.T) {
	m, _ := NewHighScoreManager(nil)
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// 不应 panic
	m.WriteHighScore(10)
	if got := m.ReadHighScore(); got != 10 {
		t.Errorf("ReadHighScore after closed write: got %d, want 10", got)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
