package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strictSpec() FilterSpec {
	return FilterSpec{
		MinRuntime:       60,
		ExcludeAdult:     true,
		ExcludeTypes:     []TitleType{TypeShort, TypeTVEpisode},
		ExcludeGenres:    []string{"Reality-TV", "Animation"},
		MinVotes:         1000,
		MinRating:        6,
		ExcludeLanguages: []string{"xx"},
		MaxYear:          2024,
		ExcludeRegions:   []string{"CN"},
		ExcludeDirectors: []string{"nm0001104"},
		ExcludeActors:    []string{"nm1384121"},
		ExcludeKeywords:  []string{"student film"},
	}
}

func passingRecord() (TitleRecord, *RatingRecord) {
	t := TitleRecord{
		ID:             "tt0111161",
		PrimaryTitle:   "The Shawshank Redemption",
		Type:           TypeMovie,
		StartYear:      ptr(1994),
		RuntimeMinutes: ptr(142),
		Genres:         []string{"Drama"},
		Region:         "US",
		Language:       "en",
		Directors:      []string{"nm0001104x"},
		Actors:         []string{"nm0000209"},
		Keywords:       []string{"prison"},
	}
	return t, &RatingRecord{ID: t.ID, AverageRating: 9.3, NumVotes: 2900000}
}

func TestFilterSpec_IsEligible_AllPass(t *testing.T) {
	rec, rating := passingRecord()
	assert.True(t, strictSpec().IsEligible(rec, rating))
}

func TestFilterSpec_IsEligible_ZeroValueAcceptsEverything(t *testing.T) {
	rec := TitleRecord{ID: "tt1", Type: TypeVideo, IsAdult: true}
	assert.True(t, FilterSpec{}.IsEligible(rec, nil))
}

// Every single failing predicate rejects the record even though all others pass.
func TestFilterSpec_IsEligible_Conjunction(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TitleRecord, **RatingRecord)
	}{
		{"runtime below minimum", func(r *TitleRecord, _ **RatingRecord) { r.RuntimeMinutes = ptr(59) }},
		{"runtime unknown", func(r *TitleRecord, _ **RatingRecord) { r.RuntimeMinutes = nil }},
		{"adult", func(r *TitleRecord, _ **RatingRecord) { r.IsAdult = true }},
		{"excluded type", func(r *TitleRecord, _ **RatingRecord) { r.Type = TypeShort }},
		{"excluded genre", func(r *TitleRecord, _ **RatingRecord) { r.Genres = []string{"Drama", "animation"} }},
		{"too few votes", func(_ *TitleRecord, rr **RatingRecord) { (*rr).NumVotes = 999 }},
		{"rating too low", func(_ *TitleRecord, rr **RatingRecord) { (*rr).AverageRating = 5.9 }},
		{"no rating row", func(_ *TitleRecord, rr **RatingRecord) { *rr = nil }},
		{"excluded language", func(r *TitleRecord, _ **RatingRecord) { r.Language = "XX" }},
		{"after max year", func(r *TitleRecord, _ **RatingRecord) { r.StartYear = ptr(2025) }},
		{"year unknown", func(r *TitleRecord, _ **RatingRecord) { r.StartYear = nil }},
		{"excluded region", func(r *TitleRecord, _ **RatingRecord) { r.Region = "CN" }},
		{"excluded director", func(r *TitleRecord, _ **RatingRecord) { r.Directors = []string{"nm0001104"} }},
		{"excluded actor", func(r *TitleRecord, _ **RatingRecord) { r.Actors = []string{"nm0000209", "nm1384121"} }},
		{"excluded keyword", func(r *TitleRecord, _ **RatingRecord) { r.Keywords = []string{"Student Film"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, rating := passingRecord()
			tt.mutate(&rec, &rating)
			assert.False(t, strictSpec().IsEligible(rec, rating))
		})
	}
}

func TestFilterSpec_IsEligible_MissingRating(t *testing.T) {
	rec, _ := passingRecord()

	assert.True(t, FilterSpec{MinRuntime: 60}.IsEligible(rec, nil), "no rating predicate: left join keeps the title")
	assert.False(t, FilterSpec{MinVotes: 1}.IsEligible(rec, nil))
	assert.False(t, FilterSpec{MinRating: 0.1}.IsEligible(rec, nil))
}

func TestFilterSpec_IsEligible_GenreMatchIsWholeToken(t *testing.T) {
	rec, rating := passingRecord()
	rec.Genres = []string{"Adult"}

	spec := FilterSpec{ExcludeGenres: []string{"Adul"}}
	assert.True(t, spec.IsEligible(rec, rating), "substring must not match")

	spec = FilterSpec{ExcludeGenres: []string{"adult"}}
	assert.False(t, spec.IsEligible(rec, rating))
}

func TestFilterSpec_IsEligible_UnsetOptionalFields(t *testing.T) {
	rec, rating := passingRecord()
	rec.Language = ""
	rec.Region = ""
	rec.Directors = nil

	assert.True(t, strictSpec().IsEligible(rec, rating))
}

func TestFilterSpec_Active(t *testing.T) {
	assert.Empty(t, FilterSpec{}.Active())
	assert.Equal(t, []string{"minRuntime", "minVotes"}, FilterSpec{MinRuntime: 60, MinVotes: 10}.Active())
	assert.Len(t, strictSpec().Active(), 12)
}

func TestFilterSpec_Override(t *testing.T) {
	base := strictSpec()

	got := base.Override(FilterOverrides{
		MinVotes:      ptr(10),
		ExcludeAdult:  ptr(false),
		ExcludeGenres: []string{},
	})

	assert.Equal(t, 10, got.MinVotes)
	assert.False(t, got.ExcludeAdult)
	assert.Empty(t, got.ExcludeGenres)
	assert.Equal(t, base.MinRuntime, got.MinRuntime, "untouched fields keep base value")

	// base is unchanged
	assert.Equal(t, 1000, base.MinVotes)
	assert.True(t, base.ExcludeAdult)
	assert.Len(t, base.ExcludeGenres, 2)

	got.ExcludeTypes[0] = TypeVideo
	assert.Equal(t, TypeShort, base.ExcludeTypes[0], "override must not alias base slices")
}
