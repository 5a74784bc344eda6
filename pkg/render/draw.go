package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/arenablaster/pkg/systems"
	"github.com/decker502/arenablaster/pkg/types"
)

// 调色板
var (
	colorGround    = color.RGBA{34, 34, 40, 255}
	colorBorder    = color.RGBA{90, 90, 110, 255}
	colorObstacle  = color.RGBA{120, 120, 130, 255}
	colorEnemy     = color.RGBA{220, 50, 50, 255}
	colorBullet    = color.RGBA{255, 230, 80, 255}
	colorParticle  = color.RGBA{255, 140, 40, 255}
	colorPlayer    = color.RGBA{80, 200, 120, 255}
	colorText      = color.RGBA{255, 255, 255, 255}
	colorShadow    = color.RGBA{0, 0, 0, 180}
	colorHealthBg  = color.RGBA{60, 20, 20, 255}
	colorHealthBar = color.RGBA{220, 40, 40, 255}
	colorPanel     = color.RGBA{0, 0, 0, 190}
	colorJoystick  = color.RGBA{255, 255, 255, 70}
)

// 图元在世界坐标中的尺寸
const (
	obstacleHalfSize = 1.0
	enemyRadius      = 0.5
	bulletRadius     = 0.2
	playerRadius     = 0.6
	aimLineLength    = 2.0
	lineHeight       = 16.0
)

// JoystickView 虚拟摇杆的屏幕显示状态
type JoystickView struct {
	Active           bool
	CenterX, CenterY float64
	KnobX, KnobY     float64 // 相对中心的偏移
	Radius           float64
}

// Renderer 俯视角绘制器
type Renderer struct {
	face       text.Face
	halfExtent float64
	touch      bool // 显示触摸操作提示
}

// NewRenderer 创建绘制器
//
// 参数：
//   - halfExtent: 竞技场半边长，用于世界坐标到屏幕坐标的缩放
//   - touch: 为 true 时标题面板显示触摸操作说明
func NewRenderer(halfExtent float64, touch bool) *Renderer {
	return &Renderer{
		face:       text.NewGoXFace(basicfont.Face7x13),
		halfExtent: halfExtent,
		touch:      touch,
	}
}

// worldToScreen 竞技场 XZ 平面映射到屏幕（-Z 朝上）
func (r *Renderer) worldToScreen(screen *ebiten.Image, p types.Vec3) (float32, float32, float32) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	scale := math.Min(w, h) / (2 * r.halfExtent) * 0.9
	cx, cy := w/2, h/2
	return float32(cx + p.X*scale), float32(cy + p.Z*scale), float32(scale)
}

// Draw 绘制一帧：竞技场、图元、HUD、面板与摇杆
func (r *Renderer) Draw(screen *ebiten.Image, graph *SceneGraph, hud *HUD, joystick JoystickView) {
	screen.Fill(colorGround)
	r.drawArena(screen)

	for _, m := range graph.Meshes() {
		r.drawMesh(screen, m)
	}
	r.drawPlayer(screen, graph.Camera())

	r.drawHUD(screen, hud)
	if joystick.Active {
		r.drawJoystick(screen, joystick)
	}
}

func (r *Renderer) drawArena(screen *ebiten.Image) {
	x0, y0, _ := r.worldToScreen(screen, types.Vec3{X: -r.halfExtent, Z: -r.halfExtent})
	x1, y1, _ := r.worldToScreen(screen, types.Vec3{X: r.halfExtent, Z: r.halfExtent})
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, colorBorder, true)
}

func (r *Renderer) drawMesh(screen *ebiten.Image, m *Mesh) {
	x, y, scale := r.worldToScreen(screen, m.Position)

	switch m.Kind {
	case types.MeshObstacle:
		size := float32(obstacleHalfSize) * scale
		vector.DrawFilledRect(screen, x-size, y-size, size*2, size*2, colorObstacle, true)
	case types.MeshEnemy:
		vector.DrawFilledCircle(screen, x, y, float32(enemyRadius)*scale, colorEnemy, true)
	case types.MeshBullet:
		vector.DrawFilledCircle(screen, x, y, float32(bulletRadius)*scale, colorBullet, true)
	case types.MeshParticles:
		for _, p := range m.Points {
			px, py, _ := r.worldToScreen(screen, p)
			vector.DrawFilledRect(screen, px-1, py-1, 2, 2, colorParticle, false)
		}
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, cam Camera) {
	x, y, scale := r.worldToScreen(screen, cam.Position)
	vector.DrawFilledCircle(screen, x, y, float32(playerRadius)*scale, colorPlayer, true)

	aim := systems.AimDirection(cam.Yaw, 0).Scale(aimLineLength)
	ax, ay, _ := r.worldToScreen(screen, cam.Position.Add(aim))
	vector.StrokeLine(screen, x, y, ax, ay, 2, colorPlayer, true)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, hud *HUD) {
	r.drawText(screen, hud.StatusLine(), 10, 10)

	// 血条
	const barW, barH = 200, 12
	vector.DrawFilledRect(screen, 10, 30, barW, barH, colorHealthBg, false)
	vector.DrawFilledRect(screen, 10, 30, float32(barW*hud.HealthPercent/100), barH, colorHealthBar, false)

	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2

	if hud.TitleVisible {
		r.drawPanel(screen, cx, cy, r.titleLines())
	}
	if hud.GameOverVisible {
		hint := "Click / R: restart   S: share   T: title"
		if r.touch {
			hint = "Tap to restart"
		}
		r.drawPanel(screen, cx, cy, []string{
			"GAME OVER",
			"",
			hud.FinalScoreText,
			hud.HighScoreText,
			"",
			hint,
		})
	}
	if hud.Notification != "" {
		w, _ := text.Measure(hud.Notification, r.face, lineHeight)
		r.drawText(screen, hud.Notification, cx-w/2, float64(b.Dy())-40)
	}
}

func (r *Renderer) titleLines() []string {
	if r.touch {
		return []string{
			"ARENA BLASTER 3D",
			"",
			"Left side: move   Right side: fire",
			"",
			"Tap to start",
		}
	}
	return []string{
		"ARENA BLASTER 3D",
		"",
		"WASD / arrows: move   mouse: look",
		"space / click: fire   Esc: release mouse",
		"",
		"Press Enter or click to start",
	}
}

func (r *Renderer) drawPanel(screen *ebiten.Image, cx, cy float64, lines []string) {
	const panelW = 360.0
	panelH := float64(len(lines))*lineHeight + 24
	vector.DrawFilledRect(screen, float32(cx-panelW/2), float32(cy-panelH/2),
		float32(panelW), float32(panelH), colorPanel, false)

	y := cy - panelH/2 + 12
	for _, line := range lines {
		w, _ := text.Measure(line, r.face, lineHeight)
		r.drawText(screen, line, cx-w/2, y)
		y += lineHeight
	}
}

// drawText 带阴影的文本
func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64) {
	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+1, y+1)
	shadowOp.ColorScale.ScaleWithColor(colorShadow)
	text.Draw(screen, s, r.face, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, s, r.face, op)
}

func (r *Renderer) drawJoystick(screen *ebiten.Image, js JoystickView) {
	cx, cy := float32(js.CenterX), float32(js.CenterY)
	vector.StrokeCircle(screen, cx, cy, float32(js.Radius), 2, colorJoystick, true)
	vector.DrawFilledCircle(screen, cx+float32(js.KnobX), cy+float32(js.KnobY), float32(js.Radius)/2, colorJoystick, true)
}
