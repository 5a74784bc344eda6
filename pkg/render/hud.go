package render

import (
	"fmt"

	"github.com/decker502/arenablaster/pkg/types"
)

// DefaultNotificationDuration 提示文本显示时长（秒）
const DefaultNotificationDuration = 3.0

// HUD UI 协作者：把核心发出的 UI 事件转换为待显示的文本与面板状态
type HUD struct {
	ScoreText     string
	AmmoText      string
	WaveText      string
	HealthText    string
	HealthPercent float64 // [0, 100]

	TitleVisible    bool
	GameOverVisible bool
	FinalScoreText  string
	HighScoreText   string

	Notification string
	notifyLeft   float64
}

// NewHUD 创建初始 HUD（文本为开局默认值，面板全部隐藏）
func NewHUD() *HUD {
	return &HUD{
		ScoreText:     types.ScoreTimerEvent(0, 0).Text,
		AmmoText:      types.AmmoEvent(0).Text,
		HealthText:    types.HealthEvent(100).Text,
		HealthPercent: 100,
	}
}

// Apply 依次处理一帧的 UI 事件
func (h *HUD) Apply(events []types.UIEvent) {
	for _, ev := range events {
		h.apply(ev)
	}
}

func (h *HUD) apply(ev types.UIEvent) {
	switch ev.Kind {
	case types.UIScoreTimer:
		h.ScoreText = ev.Text
	case types.UIHealth:
		h.HealthText = ev.Text
		h.HealthPercent = ev.Value
	case types.UIAmmo:
		h.AmmoText = ev.Text
	case types.UIWave:
		h.WaveText = ev.Text
	case types.UIShowTitle:
		h.TitleVisible = true
	case types.UIHideTitle:
		h.TitleVisible = false
	case types.UIShowGameOver:
		h.GameOverVisible = true
		h.FinalScoreText = ev.Text
		h.HighScoreText = ev.HighScoreText()
	case types.UIHideGameOver:
		h.GameOverVisible = false
	case types.UINotification:
		h.Notification = ev.Text
		h.notifyLeft = DefaultNotificationDuration
	}
}

// Update 推进提示文本的显示计时
func (h *HUD) Update(deltaTime float64) {
	if h.notifyLeft <= 0 {
		return
	}
	h.notifyLeft -= deltaTime
	if h.notifyLeft <= 0 {
		h.Notification = ""
		h.notifyLeft = 0
	}
}

// StatusLine 顶部状态栏文本
func (h *HUD) StatusLine() string {
	if h.WaveText == "" {
		return fmt.Sprintf("%s   %s", h.ScoreText, h.AmmoText)
	}
	return fmt.Sprintf("%s   %s   %s", h.ScoreText, h.AmmoText, h.WaveText)
}
