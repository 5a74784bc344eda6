package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/arenablaster/pkg/config"
)

// ErrShareUnavailable 平台不支持原生分享
var ErrShareUnavailable = errors.New("native share unavailable")

// Sharer 平台原生分享接口
type Sharer interface {
	Share(title, text string) error
}

// Notifier 简单的文本提示（原生分享不可用时的降级方案）
type Notifier interface {
	Notify(text string)
}

// ShareService 分享本局分数
//
// 与模拟正确性无关：任何失败都只记录日志，不影响游戏
type ShareService struct {
	sharer   Sharer
	notifier Notifier
	text     config.ShareTextConfig
}

// NewShareService 创建分享服务
//
// 参数：
//   - sharer: 原生分享实现，可为 nil（始终降级为提示）
//   - notifier: 降级提示实现
//   - text: 分享文案配置
func NewShareService(sharer Sharer, notifier Notifier, text config.ShareTextConfig) *ShareService {
	return &ShareService{
		sharer:   sharer,
		notifier: notifier,
		text:     text,
	}
}

// ShareScore 尝试原生分享，不可用时降级为提示
//
// 返回：
//   - bool: 原生分享是否成功
func (s *ShareService) ShareScore(score int) bool {
	if s.sharer != nil {
		err := s.sharer.Share(s.text.Title, fmt.Sprintf(s.text.Message, score))
		if err == nil {
			return true
		}
		if !errors.Is(err, ErrShareUnavailable) {
			// 用户取消等情况：记录即可，不再弹提示
			log.Printf("[ShareService] Share failed: %v", err)
			return false
		}
	}

	if s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf(s.text.FallbackNotice, score))
	}
	return false
}
