package scoring

import "fmt"

// Achievement classifications for a single hole result.
const (
	AchievementHoleInOne = "hole_in_one"
	AchievementAlbatross = "albatross"
	AchievementEagle     = "eagle"
	AchievementBirdie    = "birdie"
)

// DefaultPar is applied when the course definition carries no par for a
// scored hole. Defaulting (rather than skipping) matches the historical
// behavior of score ingestion; a par-4 guess keeps birdie/eagle detection
// usable on partially configured courses.
const DefaultPar = 4

// HoleScore is one scored hole, annotated with the course par when known.
type HoleScore struct {
	HoleNumber int
	Strokes    int
	Par        int // 0 when the course has no definition for this hole
}

// Achievement is a detected noteworthy outcome on a single hole.
type Achievement struct {
	Type       string
	HoleNumber int
	Strokes    int
	Par        int
}

// Headline renders the feed-post text for the achievement.
func (a Achievement) Headline(playerName string) string {
	switch a.Type {
	case AchievementHoleInOne:
		return fmt.Sprintf("%s made a HOLE-IN-ONE on hole %d!", playerName, a.HoleNumber)
	case AchievementAlbatross:
		return fmt.Sprintf("%s scored an albatross on hole %d (%d on a par %d)!", playerName, a.HoleNumber, a.Strokes, a.Par)
	case AchievementEagle:
		return fmt.Sprintf("%s scored an eagle on hole %d (%d on a par %d)!", playerName, a.HoleNumber, a.Strokes, a.Par)
	case AchievementBirdie:
		return fmt.Sprintf("%s scored a birdie on hole %d", playerName, a.HoleNumber)
	default:
		return fmt.Sprintf("%s did something noteworthy on hole %d", playerName, a.HoleNumber)
	}
}

// Detect classifies the newest hole result. Previously played holes are
// accepted as context for future streak rules but the par-relative
// classification does not consult them. Pure: no side effects, no clock.
//
// Rules, in order: strokes == 1 is always a hole-in-one regardless of par;
// otherwise strokes relative to par yields albatross (-3), eagle (-2) or
// birdie (-1). An unknown par falls back to DefaultPar.
func Detect(newest HoleScore, previous []HoleScore) []Achievement {
	_ = previous // context only; no streak-based achievements detected

	if newest.Strokes <= 0 {
		return nil
	}

	par := newest.Par
	if par <= 0 {
		par = DefaultPar
	}

	var found []Achievement

	if newest.Strokes == 1 {
		found = append(found, Achievement{
			Type:       AchievementHoleInOne,
			HoleNumber: newest.HoleNumber,
			Strokes:    newest.Strokes,
			Par:        par,
		})
		return found
	}

	switch newest.Strokes - par {
	case -3:
		found = append(found, Achievement{Type: AchievementAlbatross, HoleNumber: newest.HoleNumber, Strokes: newest.Strokes, Par: par})
	case -2:
		found = append(found, Achievement{Type: AchievementEagle, HoleNumber: newest.HoleNumber, Strokes: newest.Strokes, Par: par})
	case -1:
		found = append(found, Achievement{Type: AchievementBirdie, HoleNumber: newest.HoleNumber, Strokes: newest.Strokes, Par: par})
	}

	return found
}

// ToPar sums strokes relative to par over the given holes, applying
// DefaultPar to holes with no course definition.
func ToPar(holes []HoleScore) int {
	total := 0
	for _, h := range holes {
		par := h.Par
		if par <= 0 {
			par = DefaultPar
		}
		total += h.Strokes - par
	}
	return total
}
