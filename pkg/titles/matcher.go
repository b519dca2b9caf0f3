package titles

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from cleaned titles.
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is how sure a match is.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Candidate is one search result to compare against.
type Candidate struct {
	Title         string
	OriginalTitle string
	Year          int // 0 when unknown
}

// Match is the best candidate for a query.
type Match struct {
	Index      int // index into the candidate slice, -1 when none matched
	Score      float64
	Confidence Confidence
}

// Best picks the candidate most similar to title. Similarity is Jaro-Winkler
// on cleaned titles (the better of title and original title), adjusted for
// sequel numbers and release year distance. Candidates below
// ConfidenceLow are never returned.
func Best(title string, year int, candidates []Candidate) Match {
	best := Match{Index: -1}
	if len(candidates) == 0 {
		return best
	}

	query := Clean(title)
	queryNumbers := numberRegex.FindAllString(query, -1)

	for i, c := range candidates {
		score := similarity(query, c.Title)
		if c.OriginalTitle != "" {
			score = max(score, similarity(query, c.OriginalTitle))
		}
		score = adjustForNumbers(score, queryNumbers, numberRegex.FindAllString(Clean(c.Title), -1))
		score = adjustForYear(score, year, c.Year)

		if score > best.Score {
			best.Index = i
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Index = -1
	}
	return best
}

func similarity(cleanQuery, candidate string) float64 {
	return float64(edlib.JaroWinklerSimilarity(cleanQuery, Clean(candidate)))
}

// adjustForNumbers rewards a shared sequel number and penalizes a missing or different one.
func adjustForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	have := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		have[n] = true
	}
	for _, n := range queryNums {
		if have[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

// adjustForYear rewards an exact year, tolerates one year of drift and
// penalizes anything further.
func adjustForYear(score float64, want, got int) float64 {
	if want == 0 || got == 0 {
		return score
	}
	switch d := want - got; {
	case d == 0:
		return min(score*1.05, 1.0)
	case d == 1 || d == -1:
		return score
	default:
		return score * 0.85
	}
}
