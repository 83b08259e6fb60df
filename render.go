package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/vrlocomotion/common"
	"github.com/milk9111/vrlocomotion/ecs"
	"github.com/milk9111/vrlocomotion/ecs/component"
	"github.com/milk9111/vrlocomotion/ecs/system"
	"golang.org/x/image/colornames"
)

const mapMargin = 40.0

// Renderer draws the arena from above with the HUD on top. North (+Z) is up
// on screen.
type Renderer struct {
	scale   float64
	originX float64
	originY float64
	depth   float64
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	screen.Fill(colornames.Black)

	if fade, ok := firstFade(w); ok && !fade.CameraEnabled {
		ebitenutil.DebugPrintAt(screen, "...", common.BaseWidth/2-8, common.BaseHeight/2)
		return
	}

	r.fit(w)
	r.drawFloor(w, screen)
	r.drawBodies(w, screen)
	r.drawMarkers(w, screen)
	r.drawView(w, screen)
	r.drawSign(w, screen)
	r.drawHUD(w, screen)
}

func (r *Renderer) fit(w *ecs.World) {
	width, depth := 20.0, 20.0
	if e, ok := ecs.First(w, component.ArenaBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.ArenaBoundsComponent.Kind()); ok && b.Width > 0 && b.Depth > 0 {
			width, depth = b.Width, b.Depth
		}
	}
	sx := (common.BaseWidth - 2*mapMargin) / width
	sy := (common.BaseHeight - 2*mapMargin) / depth
	r.scale = math.Min(sx, sy)
	r.depth = depth
	r.originX = (common.BaseWidth - width*r.scale) / 2
	r.originY = (common.BaseHeight - depth*r.scale) / 2
}

// toScreen maps a floor point to screen pixels.
func (r *Renderer) toScreen(p mgl64.Vec3) (float32, float32) {
	return float32(r.originX + p.X()*r.scale), float32(r.originY + (r.depth-p.Z())*r.scale)
}

func (r *Renderer) drawFloor(w *ecs.World, screen *ebiten.Image) {
	e, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return
	}
	b, _ := ecs.Get(w, e, component.ArenaBoundsComponent.Kind())
	x, y := r.toScreen(mgl64.Vec3{0, 0, b.Depth})
	vector.FillRect(screen, x, y, float32(b.Width*r.scale), float32(b.Depth*r.scale), colornames.Darkslategray, false)
	vector.StrokeRect(screen, x, y, float32(b.Width*r.scale), float32(b.Depth*r.scale), 3, colornames.Lightgray, false)
}

func (r *Renderer) drawBodies(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		clr := color.Color(colornames.White)
		if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok {
			clr = tint.Color
		}

		if body.Kind == component.ShapeCircle {
			cx, cy := r.toScreen(transform.Position)
			vector.FillCircle(screen, cx, cy, float32(body.Radius*r.scale), clr, true)
			return
		}

		corners := boxCorners(transform, body.Width, body.Depth)
		if body.Sensor {
			r.strokePolygon(screen, corners, 2, clr)
			return
		}
		cx, cy := r.toScreen(transform.Position)
		half := float32(math.Min(body.Width, body.Depth) * r.scale / 2)
		vector.FillRect(screen, cx-half, cy-half, 2*half, 2*half, clr, false)
		r.strokePolygon(screen, corners, 1.5, clr)

		// Lifted boxes get a lighter rim so height reads from above.
		if body.Height > 0 && transform.Position.Y() > body.Height/2+0.05 {
			r.strokePolygon(screen, corners, 1, colornames.White)
		}
	})
}

func (r *Renderer) drawMarkers(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TeleportMarkerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, marker *component.TeleportMarker, transform *component.Transform) {
		clr := color.Color(colornames.Lime)
		if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok {
			clr = tint.Color
		}
		radius := marker.Radius
		if radius <= 0 {
			radius = 0.3
		}
		cx, cy := r.toScreen(transform.Position)
		vector.StrokeCircle(screen, cx, cy, float32(radius*r.scale), 3, clr, true)
	})
}

func (r *Renderer) drawView(w *ecs.World, screen *ebiten.Image) {
	view, ok := system.CameraView(w)
	if !ok {
		return
	}
	x0, y0 := r.toScreen(view.Position)
	flat := common.SafeNormalize(common.Flatten(view.Forward))
	x1, y1 := r.toScreen(view.Position.Add(flat.Mul(1.5)))
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Yellow, true)

	// Where the gaze meets the floor.
	if view.Forward.Y() < -1e-3 {
		t := (common.FloorY - view.Position.Y()) / view.Forward.Y()
		gx, gy := r.toScreen(view.Position.Add(view.Forward.Mul(t)))
		vector.StrokeCircle(screen, gx, gy, 4, 1, colornames.Yellow, true)
	}
}

func (r *Renderer) drawSign(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.BillboardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Billboard, transform *component.Transform) {
		facing := common.SafeNormalize(common.Flatten(transform.Rotation.Rotate(common.Forward)))
		across := mgl64.Vec3{facing.Z(), 0, -facing.X()}
		x0, y0 := r.toScreen(transform.Position.Add(across.Mul(0.75)))
		x1, y1 := r.toScreen(transform.Position.Sub(across.Mul(0.75)))
		vector.StrokeLine(screen, x0, y0, x1, y1, 4, colornames.White, true)

		if session, ok := firstSession(w); ok {
			cx, cy := r.toScreen(transform.Position)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", session.Score), int(cx)-4, int(cy)-20)
		}
	})
}

func (r *Renderer) drawHUD(w *ecs.World, screen *ebiten.Image) {
	lines := ""
	if session, ok := firstSession(w); ok {
		lines += fmt.Sprintf("Mode: %s\nTime: %.1f\nScore: %d\n", session.Mode.Label(), session.TimeLeft, session.Score)
	}
	if view, ok := system.CameraView(w); ok {
		lines += fmt.Sprintf("Yaw: %.0f  Pitch: %.0f\n", view.Rig.Yaw, common.SignedDegrees(view.Rig.Pitch))
	}
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if carrier, ok := ecs.Get(w, player, component.CarrierComponent.Kind()); ok && carrier.State == component.CarryCarrying {
			lines += "Carrying\n"
		}
		if tp, ok := ecs.Get(w, player, component.TeleporterComponent.Kind()); ok && tp.State == component.TeleportSelecting {
			if tp.Valid {
				lines += "Teleport: release to jump\n"
			} else {
				lines += "Teleport: out of range\n"
			}
		}
	}
	ebitenutil.DebugPrintAt(screen, lines, 10, 10)
}

func (r *Renderer) strokePolygon(screen *ebiten.Image, pts []mgl64.Vec3, width float32, clr color.Color) {
	for i := range pts {
		x0, y0 := r.toScreen(pts[i])
		x1, y1 := r.toScreen(pts[(i+1)%len(pts)])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func boxCorners(transform *component.Transform, width, depth float64) []mgl64.Vec3 {
	yaw := common.YawRotation(common.YawOf(transform.Rotation))
	hw, hd := width/2, depth/2
	local := []mgl64.Vec3{{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd}}
	out := make([]mgl64.Vec3, len(local))
	for i, p := range local {
		out[i] = transform.Position.Add(yaw.Rotate(p))
	}
	return out
}

func firstSession(w *ecs.World) (*component.Session, bool) {
	e, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.SessionComponent.Kind())
}

func firstFade(w *ecs.World) (*component.FadeOverlay, bool) {
	e, ok := ecs.First(w, component.FadeOverlayComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.FadeOverlayComponent.Kind())
}
