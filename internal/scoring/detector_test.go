package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_ParRelativeClassification(t *testing.T) {
	cases := []struct {
		name    string
		strokes int
		par     int
		want    string
	}{
		{"birdie on par 4", 3, 4, AchievementBirdie},
		{"eagle on par 4", 2, 4, AchievementEagle},
		{"eagle on par 5", 3, 5, AchievementEagle},
		{"albatross on par 5", 2, 5, AchievementAlbatross},
		{"birdie on par 3", 2, 3, AchievementBirdie},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(HoleScore{HoleNumber: 7, Strokes: tc.strokes, Par: tc.par}, nil)
			if assert.Len(t, got, 1) {
				assert.Equal(t, tc.want, got[0].Type)
				assert.Equal(t, 7, got[0].HoleNumber)
			}
		})
	}
}

func TestDetect_HoleInOneRegardlessOfPar(t *testing.T) {
	for _, par := range []int{3, 4, 5} {
		got := Detect(HoleScore{HoleNumber: 12, Strokes: 1, Par: par}, nil)
		if assert.Len(t, got, 1, "par %d", par) {
			assert.Equal(t, AchievementHoleInOne, got[0].Type)
		}
	}

	// An ace on a par 3 is reported once, as a hole-in-one, not also as
	// an eagle.
	got := Detect(HoleScore{HoleNumber: 3, Strokes: 1, Par: 3}, nil)
	assert.Len(t, got, 1)
}

func TestDetect_EagleProperty(t *testing.T) {
	// strokes = par-2 with par >= 4 is always an eagle
	for par := 4; par <= 6; par++ {
		got := Detect(HoleScore{HoleNumber: 1, Strokes: par - 2, Par: par}, nil)
		if assert.Len(t, got, 1, "par %d", par) {
			assert.Equal(t, AchievementEagle, got[0].Type)
		}
	}
}

func TestDetect_NoAchievement(t *testing.T) {
	assert.Empty(t, Detect(HoleScore{HoleNumber: 2, Strokes: 4, Par: 4}, nil))
	assert.Empty(t, Detect(HoleScore{HoleNumber: 2, Strokes: 6, Par: 4}, nil))
	assert.Empty(t, Detect(HoleScore{HoleNumber: 2, Strokes: 0, Par: 4}, nil))
}

func TestDetect_MissingParFallsBackToDefault(t *testing.T) {
	// Par 0 means the course has no definition for the hole; DefaultPar
	// applies, so 3 strokes reads as a birdie on a par 4.
	got := Detect(HoleScore{HoleNumber: 9, Strokes: 3, Par: 0}, nil)
	if assert.Len(t, got, 1) {
		assert.Equal(t, AchievementBirdie, got[0].Type)
		assert.Equal(t, DefaultPar, got[0].Par)
	}
}

func TestDetect_PreviousHolesAreContextOnly(t *testing.T) {
	previous := []HoleScore{
		{HoleNumber: 1, Strokes: 3, Par: 4},
		{HoleNumber: 2, Strokes: 3, Par: 4},
	}

	// A par on the newest hole yields nothing even after two birdies.
	assert.Empty(t, Detect(HoleScore{HoleNumber: 3, Strokes: 4, Par: 4}, previous))

	// The newest hole classifies the same with or without context.
	with := Detect(HoleScore{HoleNumber: 3, Strokes: 3, Par: 4}, previous)
	without := Detect(HoleScore{HoleNumber: 3, Strokes: 3, Par: 4}, nil)
	assert.Equal(t, without, with)
}

func TestToPar(t *testing.T) {
	holes := []HoleScore{
		{HoleNumber: 1, Strokes: 3, Par: 4},
		{HoleNumber: 2, Strokes: 5, Par: 4},
		{HoleNumber: 3, Strokes: 4, Par: 0}, // default par 4
	}
	assert.Equal(t, 0, ToPar(holes))
	assert.Equal(t, 0, ToPar(nil))
}

func TestAchievementHeadline(t *testing.T) {
	a := Achievement{Type: AchievementEagle, HoleNumber: 7, Strokes: 3, Par: 5}
	assert.Contains(t, a.Headline("Anna"), "Anna")
	assert.Contains(t, a.Headline("Anna"), "eagle")

	ace := Achievement{Type: AchievementHoleInOne, HoleNumber: 12, Strokes: 1, Par: 3}
	assert.Contains(t, ace.Headline("Bo"), "HOLE-IN-ONE")
}
