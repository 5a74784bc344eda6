package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/decker502/arenablaster/pkg/config"
)

type fakeSharer struct {
	err   error
	title string
	text  string
	calls int
}

func (s *fakeSharer) Share(title, text string) error {
	s.calls++
	s.title = title
	s.text = text
	return s.err
}

type fakeNotifier struct {
	notices []string
}

func (n *fakeNotifier) Notify(text string) {
	n.notices = append(n.notices, text)
}

func TestShareScoreNative(t *testing.T) {
	sharer := &fakeSharer{}
	notifier := &fakeNotifier{}
	svc := NewShareService(sharer, notifier, config.DefaultArenaConfig().Share)

	if !svc.ShareScore(150) {
		t.Fatal("expected native share to succeed")
	}
	if sharer.title != "Arena Blaster 3D" {
		t.Errorf("title: got %q", sharer.title)
	}
	if !strings.Contains(sharer.text, "I scored 150 points") {
		t.Errorf("text: got %q", sharer.text)
	}
	if len(notifier.notices) != 0 {
		t.Errorf("fallback should not be used, got %v", notifier.notices)
	}
}

func TestShareScoreFallback(t *testing.T) {
	tests := []struct {
		name   string
		sharer Sharer
	}{
		{"no native sharer", nil},
		{"native share unavailable", &fakeSharer{err: ErrShareUnavailable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			svc := NewShareService(tt.sharer, notifier, config.DefaultArenaConfig().Share)

			if svc.ShareScore(70) {
				t.Error("expected ShareScore to report fallback")
			}
			if len(notifier.notices) != 1 || notifier.notices[0] != "Share your score: 70 points!" {
				t.Errorf("notices: got %v", notifier.notices)
			}
		})
	}
}

func TestShareScoreOtherErrorNoFallback(t *testing.T) {
	sharer := &fakeSharer{err: errors.New("user cancelled")}
	notifier := &fakeNotifier{}
	svc := NewShareService(sharer, notifier, config.DefaultArenaConfig().Share)

	if svc.ShareScore(10) {
		t.Error("expected ShareScore to fail")
	}
	if len(notifier.notices) != 0 {
		t.Errorf("cancelled share should not show fallback, got %v", notifier.notices)
	}
}
