package services

import "sort"

// VibeServiceInterface maps user moods to searchable place categories and
// back, and exposes the time-of-day bonus table. All operations are pure
// lookups against fixed tables.
type VibeServiceInterface interface {
	PlaceTypesForVibes(moods []string) []string
	VibesSatisfiedBy(category string, moods []string) []string
	TimeOfDayBonuses(hour int) map[string]float64
}

const VibeSurprise = "surprise"

var vibeToCategories = map[string][]string{
	"chill":     {"cafe", "tea_house", "park", "bookstore", "spa", "bakery"},
	"social":    {"bar", "music_venue", "arcade", "market", "restaurant", "cinema"},
	"active":    {"trail", "climbing_gym", "sports_ground", "park"},
	"foodie":    {"restaurant", "market", "bakery", "cafe"},
	"curious":   {"museum", "gallery", "bookstore", "arcade"},
	"romantic":  {"viewpoint", "restaurant", "gallery", "park"},
	"outdoorsy": {"park", "trail", "viewpoint", "campground", "sports_ground"},
}

// categoryVibes is the inversion of vibeToCategories, built once at init.
var categoryVibes = func() map[string][]string {
	inv := make(map[string][]string)
	for vibe, cats := range vibeToCategories {
		for _, cat := range cats {
			inv[cat] = append(inv[cat], vibe)
		}
	}
	for _, vibes := range inv {
		sort.Strings(vibes)
	}
	return inv
}()

// hourBonuses maps an hour band to category score bonuses: cafes in the
// morning, bars in the evening, museums in the afternoon lull.
type hourBand struct {
	from, to int // inclusive, wraps past midnight when from > to
	bonuses  map[string]float64
}

var hourBands = []hourBand{
	{from: 6, to: 10, bonuses: map[string]float64{"cafe": 0.05, "bakery": 0.05, "tea_house": 0.03, "park": 0.03}},
	{from: 11, to: 14, bonuses: map[string]float64{"restaurant": 0.05, "market": 0.03}},
	{from: 15, to: 17, bonuses: map[string]float64{"museum": 0.03, "gallery": 0.03, "park": 0.03, "cafe": 0.02}},
	{from: 18, to: 21, bonuses: map[string]float64{"bar": 0.05, "music_venue": 0.05, "restaurant": 0.03, "cinema": 0.03}},
	{from: 22, to: 5, bonuses: map[string]float64{"bar": 0.03, "music_venue": 0.03}},
}

type VibeService struct{}

func NewVibeService() VibeServiceInterface {
	return &VibeService{}
}

// PlaceTypesForVibes returns the deduplicated categories to search for the
// given moods. Empty input, unknown-only input and an explicit "surprise"
// all expand to the full known category set.
func (v *VibeService) PlaceTypesForVibes(moods []string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(cats []string) {
		for _, cat := range cats {
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}

	surprise := len(moods) == 0
	for _, mood := range moods {
		if mood == VibeSurprise {
			surprise = true
			continue
		}
		if cats, ok := vibeToCategories[mood]; ok {
			add(cats)
		}
	}

	if surprise || len(out) == 0 {
		for cat := range categoryVibes {
			seen[cat] = struct{}{}
		}
		out = out[:0]
		for cat := range seen {
			out = append(out, cat)
		}
		sort.Strings(out)
	}

	return out
}

// VibesSatisfiedBy returns the subset of the requested moods that the given
// category satisfies, preserving the caller's mood order.
func (v *VibeService) VibesSatisfiedBy(category string, moods []string) []string {
	satisfied := categoryVibes[category]
	if len(satisfied) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(satisfied))
	for _, vibe := range satisfied {
		set[vibe] = struct{}{}
	}

	var out []string
	for _, mood := range moods {
		if _, ok := set[mood]; ok {
			out = append(out, mood)
		}
	}
	return out
}

// TimeOfDayBonuses returns the category score bonuses active at the given
// hour (0-23).
func (v *VibeService) TimeOfDayBonuses(hour int) map[string]float64 {
	for _, band := range hourBands {
		if band.contains(hour) {
			return band.bonuses
		}
	}
	return map[string]float64{}
}

func (b hourBand) contains(hour int) bool {
	if b.from <= b.to {
		return hour >= b.from && hour <= b.to
	}
	return hour >= b.from || hour <= b.to
}

// AllCategories returns every known category, sorted.
func AllCategories() []string {
	out := make([]string, 0, len(categoryVibes))
	for cat := range categoryVibes {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
