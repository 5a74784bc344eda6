package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HighScoreData 最高分存档
type HighScoreData struct {
	HighScore int       `yaml:"highScore"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// 存储路径常量
const (
	highScoreObject   = "scores"
	highScoreProperty = "best"
)

// HighScoreManager 最高分管理器
//
// 职责：
//   - 启动时从 gdata 读取最高分并缓存在内存
//   - ReadHighScore 读缓存，不触碰磁盘
//   - WriteHighScore 更新缓存并交给后台保存协程，帧循环不会被磁盘 IO 阻塞
//
// gdataManager 为 nil 时进入降级模式：只在内存中保存最高分
type HighScoreManager struct {
	gdataManager *gdata.Manager

	mu      sync.Mutex
	cached  int
	closed  bool
	lastErr error

	writes chan int
	done   chan struct{}
}

// NewHighScoreManager 创建最高分管理器并启动后台保存协程
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *HighScoreManager: 管理器实例，使用完毕需调用 Close
//   - error: 目前总是 nil；读取失败只记录警告并从 0 开始
func NewHighScoreManager(gdataManager *gdata.Manager) (*HighScoreManager, error) {
	m := &HighScoreManager{
		gdataManager: gdataManager,
		writes:       make(chan int, 1),
		done:         make(chan struct{}),
	}

	if err := m.Load(); err != nil {
		// 存档损坏不是致命错误，最高分从 0 开始
		log.Printf("[HighScoreManager] Warning: Failed to load high score: %v (starting from 0)", err)
	}

	go m.saveLoop()
	return m, nil
}

// Load 从 gdata 加载最高分到缓存
//
// 没有存档时缓存为 0
func (m *HighScoreManager) Load() error {
	if m.gdataManager == nil {
		return nil
	}

	if !m.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		m.setCached(0)
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		m.setCached(0)
		return fmt.Errorf("failed to load high score: %w", err)
	}

	var saved HighScoreData
	if err := yaml.Unmarshal(data, &saved); err != nil {
		m.setCached(0)
		return fmt.Errorf("failed to unmarshal high score: %w", err)
	}
	if saved.HighScore < 0 {
		saved.HighScore = 0
	}

	m.setCached(saved.HighScore)
	log.Printf("[HighScoreManager] High score loaded: %d", saved.HighScore)
	return nil
}

// ReadHighScore 返回当前最高分（无记录时为 0）
func (m *HighScoreManager) ReadHighScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cached
}

// WriteHighScore 更新最高分并异步持久化
//
// 连续多次写入时只保证最后一次落盘。Close 之后的写入只更新缓存。
func (m *HighScoreManager) WriteHighScore(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cached = score
	if m.closed {
		return
	}

	// 缓冲区只保留最新值
	select {
	case m.writes <- score:
	default:
		select {
		case <-m.writes:
		default:
		}
		m.writes <- score
	}
}

// Save 同步保存最高分到 gdata
//
// 降级模式下直接返回 nil
func (m *HighScoreManager) Save(score int) error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&HighScoreData{
		HighScore: score,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}

	if err := m.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}

	log.Printf("[HighScoreManager] High score saved: %d", score)
	return nil
}

// Close 停止接收写入，等待排队中的保存完成
//
// 返回最后一次保存失败的错误（如果有）
func (m *HighScoreManager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		<-m.done
		return m.err()
	}
	m.closed = true
	close(m.writes)
	m.mu.Unlock()

	<-m.done
	return m.err()
}

func (m *HighScoreManager) saveLoop() {
	defer close(m.done)
	for score := range m.writes {
		if err := m.Save(score); err != nil {
			log.Printf("[HighScoreManager] Warning: %v", err)
			m.mu.Lock()
			m.lastErr = err
			m.mu.Unlock()
		}
	}
}

func (m *HighScoreManager) setCached(score int) {
	m.mu.Lock()
	m.cached = score
	m.mu.Unlock()
}

func (m *HighScoreManager) err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}
