package filtering

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/recrutai/recrutai-cli/internal/recrutai"
)

type excludeEmailsFilter struct {
	path string
}

// NewExcludeEmails creates a filter that drops candidates whose email is
// listed in the given file, one address per line. Lines starting with '#'
// are ignored.
func NewExcludeEmails(path string) Filter {
	return &excludeEmailsFilter{path: strings.TrimSpace(path)}
}

func (f *excludeEmailsFilter) Name() string { return "exclude_emails" }

func (f *excludeEmailsFilter) IsEnabled() bool { return f.path != "" }

func (f *excludeEmailsFilter) Apply(r *recrutai.Rankings) (*recrutai.Rankings, Step, error) {
	excluded, err := readEmails(f.path)
	if err != nil {
		return nil, Step{}, fmt.Errorf("reading exclude file: %w", err)
	}

	initial := r.Len()
	kept := r.Keep(func(rc *recrutai.RankedCV) bool {
		return !excluded[strings.ToLower(strings.TrimSpace(rc.CandidateEmail))]
	})

	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}

func readEmails(path string) (map[string]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	emails := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		emails[strings.ToLower(line)] = true
	}

	return emails, scanner.Err()
}
