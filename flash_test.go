package reel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestFlash_Fades(t *testing.T) {
	tr := NewTweener()
	f := NewFlash(tr, ColorWhite, 1)
	assert.Equal(t, 1.0, f.Alpha)
	assert.Equal(t, 1, tr.Count())

	tr.Update(0.5)
	f.Update()
	assert.InDelta(t, 0.5, f.Alpha, 1e-6)
	assert.False(t, f.Done())

	tr.Update(0.5)
	f.Update()
	assert.Equal(t, 0.0, f.Alpha)
	assert.True(t, f.Done())
	assert.Equal(t, 0, tr.Count())
}

func TestFlash_Ease(t *testing.T) {
	tr := NewTweener()
	f := NewFlash(tr, ColorWhite, 1).Ease(ease.OutCubic)
	tr.Update(0.5)
	assert.InDelta(t, 0.125, f.Alpha, 1e-4)
}

func TestFlash_Cancel(t *testing.T) {
	tr := NewTweener()
	f := NewFlash(tr, ColorBlack, 1)
	f.Cancel()
	assert.True(t, f.Done())
	assert.True(t, f.Tween().Finished())
	assert.Equal(t, 0, tr.Count())
}

func TestFlash_TargetCancel(t *testing.T) {
	tr := NewTweener()
	f := NewFlash(tr, ColorWhite, 1)
	tr.TargetCancelAndComplete(f)
	f.Update()
	assert.True(t, f.Done())
	assert.Equal(t, 0.0, f.Alpha)
}

func TestFlash_DrawColor(t *testing.T) {
	tr := NewTweener()
	f := NewFlash(tr, Color{R: 1, G: 0, B: 0, A: 1}, 1)
	f.Alpha = 0.5
	assert.Equal(t, color.RGBA{R: 127, G: 0, B: 0, A: 127}, f.drawColor())
}

func TestBlendMode_EbitenBlend(t *testing.T) {
	assert.Equal(t, BlendNormal.EbitenBlend(), BlendMode(99).EbitenBlend())
	assert.NotEqual(t, BlendNormal.EbitenBlend(), BlendAdd.EbitenBlend())
	assert.NotEqual(t, BlendMultiply.EbitenBlend(), BlendScreen.EbitenBlend())
}
