package cloudbuild

import "fmt"

// DefaultStatuses is used when no status list is configured
var DefaultStatuses = []string{StatusSuccess, StatusFailure, StatusInternalError, StatusTimeout}

// Filter decides whether a build is worth a notification.
// It holds immutable allow-lists and is safe for concurrent use.
type Filter struct {
	repos    map[string]bool
	statuses map[string]bool
}

// NewFilter builds a filter from the repo and status allow-lists.
// An empty repo list lets nothing through. An empty status list
// falls back to DefaultStatuses.
func NewFilter(repos []string, statuses []string) *Filter {
	if len(statuses) == 0 {
		statuses = DefaultStatuses
	}

	return &Filter{
		repos:    toSet(repos),
		statuses: toSet(statuses),
	}
}

// Accept returns false and the reason when the build should be dropped
func (f *Filter) Accept(build *Build) (bool, string) {
	if build.Source == nil {
		return false, "sourceless build"
	}

	repo := build.Repo()
	if !f.repos[repo] {
		return false, fmt.Sprintf("repo %s not in the repo list", repo)
	}

	if !f.statuses[build.Status] {
		return false, fmt.Sprintf("status %s not in the status list", build.Status)
	}

	return true, ""
}

func toSet(values []string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		set[v] = true
	}
	return set
}
