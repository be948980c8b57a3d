package reel

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Flash is a full-screen color overlay that fades out. Alpha starts at 1 and
// is tweened to FinalAlpha by the tweener passed to NewFlash; draw the flash
// after the rest of the frame.
type Flash struct {
	Color      Color
	Alpha      float64
	FinalAlpha float64
	BlendMode  BlendMode

	tween *Tween
	done  bool
}

// NewFlash starts a flash of c that fades out over duration seconds.
func NewFlash(tweener *Tweener, c Color, duration float32) *Flash {
	f := &Flash{Color: c, Alpha: 1}
	// A pointer to a float field with a registered lerper cannot fail.
	tw, err := tweener.CreateTween(f, Props{Field("alpha", &f.Alpha, f.FinalAlpha)}, duration, 0, true)
	if err != nil {
		panic(err)
	}
	f.tween = tw
	return f
}

// Ease sets the fade curve. The default is ease.Linear.
func (f *Flash) Ease(fn ease.TweenFunc) *Flash {
	f.tween.Ease(fn)
	return f
}

// Tween returns the tween driving Alpha.
func (f *Flash) Tween() *Tween { return f.tween }

// Update marks the flash done once its tween has finished. The tween itself
// advances with its tweener.
func (f *Flash) Update() {
	if f.tween.Finished() {
		f.done = true
	}
}

// Done reports whether the fade has finished.
func (f *Flash) Done() bool { return f.done }

// Cancel stops the fade and marks the flash done.
func (f *Flash) Cancel() {
	f.tween.Cancel()
	f.done = true
}

// Draw fills screen with the flash color at the current alpha.
func (f *Flash) Draw(screen *ebiten.Image) {
	if f.done || f.Alpha <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(w), float64(h))
	op.ColorScale.ScaleWithColor(f.drawColor())
	op.Blend = f.BlendMode.EbitenBlend()
	screen.DrawImage(ensureWhitePixel(), &op)
}

func (f *Flash) drawColor() color.RGBA {
	c := f.Color
	c.A *= clamp01(f.Alpha)
	return c.toRGBA()
}
