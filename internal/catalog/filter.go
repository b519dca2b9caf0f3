package catalog

import (
	"slices"
)

// FilterSpec describes which titles are eligible for display.
// The zero value imposes no constraint. Values are treated as immutable:
// Override returns a copy and never touches the receiver's slices.
type FilterSpec struct {
	MinRuntime       int         `json:"minRuntime,omitempty"`
	ExcludeAdult     bool        `json:"excludeAdult,omitempty"`
	ExcludeTypes     []TitleType `json:"excludeTypes,omitempty"`
	ExcludeGenres    []string    `json:"excludeGenres,omitempty"`
	MinVotes         int         `json:"minVotes,omitempty"`
	MinRating        float64     `json:"minRating,omitempty"`
	ExcludeLanguages []string    `json:"excludeLanguages,omitempty"`
	MaxYear          int         `json:"maxYear,omitempty"`
	ExcludeRegions   []string    `json:"excludeRegions,omitempty"`
	ExcludeDirectors []string    `json:"excludeDirectors,omitempty"`
	ExcludeActors    []string    `json:"excludeActors,omitempty"`
	ExcludeKeywords  []string    `json:"excludeKeywords,omitempty"`
}

// needsRating reports whether a rating-based predicate is active.
func (f FilterSpec) needsRating() bool {
	return f.MinVotes > 0 || f.MinRating > 0
}

// IsEligible reports whether the title passes every active predicate.
// A nil rating fails only when a rating-based predicate is active.
func (f FilterSpec) IsEligible(t TitleRecord, r *RatingRecord) bool {
	if f.MinRuntime > 0 && (t.RuntimeMinutes == nil || *t.RuntimeMinutes < f.MinRuntime) {
		return false
	}
	if f.ExcludeAdult && t.IsAdult {
		return false
	}
	if len(f.ExcludeTypes) > 0 && slices.Contains(f.ExcludeTypes, t.Type) {
		return false
	}
	if len(f.ExcludeGenres) > 0 && intersects(t.Genres, f.ExcludeGenres) {
		return false
	}
	if f.needsRating() && r == nil {
		return false
	}
	if f.MinVotes > 0 && r.NumVotes < f.MinVotes {
		return false
	}
	if f.MinRating > 0 && r.AverageRating < f.MinRating {
		return false
	}
	if containsFold(f.ExcludeLanguages, t.Language) {
		return false
	}
	if f.MaxYear > 0 && (t.StartYear == nil || *t.StartYear > f.MaxYear) {
		return false
	}
	if containsFold(f.ExcludeRegions, t.Region) {
		return false
	}
	if len(f.ExcludeDirectors) > 0 && intersects(t.Directors, f.ExcludeDirectors) {
		return false
	}
	if len(f.ExcludeActors) > 0 && intersects(t.Actors, f.ExcludeActors) {
		return false
	}
	if len(f.ExcludeKeywords) > 0 && intersects(t.Keywords, f.ExcludeKeywords) {
		return false
	}
	return true
}

// Active returns the names of the predicates that constrain results.
func (f FilterSpec) Active() []string {
	var names []string
	add := func(on bool, name string) {
		if on {
			names = append(names, name)
		}
	}
	add(f.MinRuntime > 0, "minRuntime")
	add(f.ExcludeAdult, "excludeAdult")
	add(len(f.ExcludeTypes) > 0, "excludeTypes")
	add(len(f.ExcludeGenres) > 0, "excludeGenres")
	add(f.MinVotes > 0, "minVotes")
	add(f.MinRating > 0, "minRating")
	add(len(f.ExcludeLanguages) > 0, "excludeLanguages")
	add(f.MaxYear > 0, "maxYear")
	add(len(f.ExcludeRegions) > 0, "excludeRegions")
	add(len(f.ExcludeDirectors) > 0, "excludeDirectors")
	add(len(f.ExcludeActors) > 0, "excludeActors")
	add(len(f.ExcludeKeywords) > 0, "excludeKeywords")
	return names
}

// FilterOverrides carries per-request replacements for FilterSpec fields.
// Nil fields keep the base value.
type FilterOverrides struct {
	MinRuntime    *int
	ExcludeAdult  *bool
	ExcludeGenres []string
	MinVotes      *int
	MinRating     *float64
	MaxYear       *int
}

// Override returns a new FilterSpec with the non-nil overrides applied.
func (f FilterSpec) Override(o FilterOverrides) FilterSpec {
	out := f.clone()
	if o.MinRuntime != nil {
		out.MinRuntime = *o.MinRuntime
	}
	if o.ExcludeAdult != nil {
		out.ExcludeAdult = *o.ExcludeAdult
	}
	if o.ExcludeGenres != nil {
		out.ExcludeGenres = slices.Clone(o.ExcludeGenres)
	}
	if o.MinVotes != nil {
		out.MinVotes = *o.MinVotes
	}
	if o.MinRating != nil {
		out.MinRating = *o.MinRating
	}
	if o.MaxYear != nil {
		out.MaxYear = *o.MaxYear
	}
	return out
}

func (f FilterSpec) clone() FilterSpec {
	out := f
	out.ExcludeTypes = slices.Clone(f.ExcludeTypes)
	out.ExcludeGenres = slices.Clone(f.ExcludeGenres)
	out.ExcludeLanguages = slices.Clone(f.ExcludeLanguages)
	out.ExcludeRegions = slices.Clone(f.ExcludeRegions)
	out.ExcludeDirectors = slices.Clone(f.ExcludeDirectors)
	out.ExcludeActors = slices.Clone(f.ExcludeActors)
	out.ExcludeKeywords = slices.Clone(f.ExcludeKeywords)
	return out
}
