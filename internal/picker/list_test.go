package picker

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
)

func filledList(selected ...bool) *List {
	l := NewList()
	for i, on := range selected {
		l.Append(views.Item{View: i + 1, Selected: on})
	}
	return l
}

func TestListAppendKeepsInitialSelection(t *testing.T) {
	l := filledList(true, false, true, false)

	assert.Equal(t, 4, l.Len())
	assert.True(t, l.Selected(0))
	assert.False(t, l.Selected(1))
	assert.Equal(t, []int{1, 3}, l.SelectedViews())
}

func TestListSelectedOutOfRange(t *testing.T) {
	l := filledList(true)

	assert.False(t, l.Selected(-1))
	assert.False(t, l.Selected(1))

	l.SetSelected(5, true)
	assert.Equal(t, []int{1}, l.SelectedViews())
}

func TestListToggle(t *testing.T) {
	l := filledList(false, false)

	l.Toggle(1)
	assert.Equal(t, []int{2}, l.SelectedViews())

	l.Toggle(1)
	assert.Empty(t, l.SelectedViews())
}

func TestListSelectViews(t *testing.T) {
	l := filledList(true, true, false, false)

	l.SelectViews(3, 4, 9)
	assert.Equal(t, []int{3, 4}, l.SelectedViews())
}

func TestMeanColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})

	assert.Equal(t, "#7F007F", MeanColor(img))
	assert.Equal(t, "#000000", MeanColor(nil))
	assert.Equal(t, "#000000", MeanColor(image.NewNRGBA(image.Rect(0, 0, 0, 0))))
}
