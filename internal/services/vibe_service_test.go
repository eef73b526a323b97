package services

import (
	"reflect"
	"testing"
)

func TestPlaceTypesForVibes(t *testing.T) {
	v := NewVibeService()

	tests := []struct {
		name  string
		moods []string
		want  []string
	}{
		{
			name:  "single mood expands its categories in order",
			moods: []string{"chill"},
			want:  []string{"cafe", "tea_house", "park", "bookstore", "spa", "bakery"},
		},
		{
			name:  "two moods deduplicate shared categories",
			moods: []string{"foodie", "chill"},
			want:  []string{"restaurant", "market", "bakery", "cafe", "tea_house", "park", "bookstore", "spa"},
		},
		{
			name:  "empty moods means surprise",
			moods: nil,
			want:  AllCategories(),
		},
		{
			name:  "explicit surprise expands to everything",
			moods: []string{"surprise"},
			want:  AllCategories(),
		},
		{
			name:  "unknown-only moods fall back to everything",
			moods: []string{"melancholic"},
			want:  AllCategories(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.PlaceTypesForVibes(tt.moods)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlaceTypesForVibes(%v) = %v, want %v", tt.moods, got, tt.want)
			}
		})
	}
}

func TestPlaceTypesForVibesDeterministic(t *testing.T) {
	v := NewVibeService()
	first := v.PlaceTypesForVibes([]string{"surprise"})
	for i := 0; i < 20; i++ {
		if got := v.PlaceTypesForVibes([]string{"surprise"}); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d returned %v, first run returned %v", i, got, first)
		}
	}
}

func TestVibesSatisfiedBy(t *testing.T) {
	v := NewVibeService()

	tests := []struct {
		name     string
		category string
		moods    []string
		want     []string
	}{
		{
			name:     "park satisfies several moods in caller order",
			category: "park",
			moods:    []string{"outdoorsy", "chill", "foodie"},
			want:     []string{"outdoorsy", "chill"},
		},
		{
			name:     "bar satisfies social only",
			category: "bar",
			moods:    []string{"chill", "social"},
			want:     []string{"social"},
		},
		{
			name:     "unknown category satisfies nothing",
			category: "heliport",
			moods:    []string{"chill"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.VibesSatisfiedBy(tt.category, tt.moods)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VibesSatisfiedBy(%q, %v) = %v, want %v", tt.category, tt.moods, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayBonuses(t *testing.T) {
	v := NewVibeService()

	tests := []struct {
		hour     int
		category string
		want     float64
	}{
		{hour: 8, category: "cafe", want: 0.05},
		{hour: 12, category: "restaurant", want: 0.05},
		{hour: 16, category: "museum", want: 0.03},
		{hour: 19, category: "bar", want: 0.05},
		{hour: 23, category: "bar", want: 0.03},  // wraps past midnight
		{hour: 2, category: "music_venue", want: 0.03},
		{hour: 8, category: "bar", want: 0},
	}

	for _, tt := range tests {
		bonuses := v.TimeOfDayBonuses(tt.hour)
		if got := bonuses[tt.category]; got != tt.want {
			t.Errorf("TimeOfDayBonuses(%d)[%q] = %v, want %v", tt.hour, tt.category, got, tt.want)
		}
	}
}
