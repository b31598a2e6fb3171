package filtering

import (
	"strings"

	"github.com/recrutai/recrutai-cli/internal/recrutai"
)

type keywordsFilter struct {
	required []string
}

// NewRequiredKeywords creates a filter that keeps only candidates whose
// matched keywords cover every required keyword, case-insensitively.
func NewRequiredKeywords(required []string) Filter {
	cleaned := make([]string, 0, len(required))
	for _, kw := range required {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, strings.ToLower(kw))
		}
	}
	return &keywordsFilter{required: cleaned}
}

func (f *keywordsFilter) Name() string { return "required_keywords" }

func (f *keywordsFilter) IsEnabled() bool { return len(f.required) > 0 }

func (f *keywordsFilter) Apply(r *recrutai.Rankings) (*recrutai.Rankings, Step, error) {
	initial := r.Len()
	kept := r.Keep(func(rc *recrutai.RankedCV) bool {
		matched := make(map[string]bool, len(rc.MatchedKeywords))
		for _, kw := range rc.MatchedKeywords {
			matched[strings.ToLower(strings.TrimSpace(kw))] = true
		}
		for _, kw := range f.required {
			if !matched[kw] {
				return false
			}
		}
		return true
	})

	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}
