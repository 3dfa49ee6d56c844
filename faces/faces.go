package faces

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"relationship-dashboard/utils"

	"github.com/rs/zerolog/log"
)

// Reference is a labelled face embedding.
type Reference struct {
	Label     string    `json:"label"`
	Embedding []float64 `json:"embedding"`
}

// Result is the best reference for one submitted face.
type Result struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"`
	Similarity float64 `json:"similarity"`
	Matched    bool    `json:"matched"`
}

// Matcher compares embeddings against references by cosine similarity.
type Matcher struct {
	refs      []Reference
	threshold float64
	dim       int
}

// NewMatcher validates that all references share one dimension.
func NewMatcher(refs []Reference, threshold float64) (*Matcher, error) {
	m := &Matcher{refs: refs, threshold: threshold}
	for i, r := range refs {
		if len(r.Embedding) == 0 {
			return nil, fmt.Errorf("reference %d (%s): empty embedding", i, r.Label)
		}
		if m.dim == 0 {
			m.dim = len(r.Embedding)
		} else if len(r.Embedding) != m.dim {
			return nil, fmt.Errorf("reference %d (%s): %w", i, r.Label, utils.ErrDimensionMismatch)
		}
	}
	return m, nil
}

// LoadMatcher reads references from a JSON array file. An empty path
// yields a matcher with no references.
func LoadMatcher(path string, threshold float64) (*Matcher, error) {
	if path == "" {
		return NewMatcher(nil, threshold)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read face references: %w", err)
	}

	var refs []Reference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("decode face references: %w", err)
	}

	log.Info().Int("references", len(refs)).Str("path", path).Msg("Face references loaded")
	return NewMatcher(refs, threshold)
}

// Match finds the closest reference for every face.
func (m *Matcher) Match(faces [][]float64) ([]Result, error) {
	if len(faces) == 0 {
		return nil, utils.ErrNoFaces
	}

	results := make([]Result, 0, len(faces))
	for i, face := range faces {
		if m.dim != 0 && len(face) != m.dim {
			return nil, fmt.Errorf("face %d has %d values, want %d: %w", i, len(face), m.dim, utils.ErrDimensionMismatch)
		}

		best := Result{Index: i, Similarity: -1}
		for _, ref := range m.refs {
			if sim := Cosine(face, ref.Embedding); sim > best.Similarity {
				best.Similarity = sim
				best.Label = ref.Label
			}
		}
		if best.Label == "" {
			best.Similarity = 0
		}
		best.Matched = best.Label != "" && best.Similarity >= m.threshold
		results = append(results, best)
	}
	return results, nil
}

// Cosine returns the cosine similarity of two equal-length vectors, or 0
// when either has zero magnitude.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
