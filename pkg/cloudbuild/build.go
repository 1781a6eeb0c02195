package cloudbuild

import (
	"strings"
	"time"
)

const StatusUnknown = "STATUS_UNKNOWN"
const StatusQueued = "QUEUED"
const StatusWorking = "WORKING"
const StatusSuccess = "SUCCESS"
const StatusFailure = "FAILURE"
const StatusInternalError = "INTERNAL_ERROR"
const StatusTimeout = "TIMEOUT"
const StatusCancelled = "CANCELLED"
const StatusExpired = "EXPIRED"

// Build is the build resource Cloud Build publishes on the cloud-builds topic.
// Only the fields the notifier reads are mapped.
type Build struct {
	ID         string   `json:"id"`
	ProjectID  string   `json:"projectId,omitempty"`
	Status     string   `json:"status"`
	CreateTime string   `json:"createTime,omitempty"`
	StartTime  string   `json:"startTime,omitempty"`
	FinishTime string   `json:"finishTime,omitempty"`
	LogURL     string   `json:"logUrl,omitempty"`
	Images     []string `json:"images,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Source     *Source  `json:"source,omitempty"`
}

type Source struct {
	RepoSource RepoSource `json:"repoSource"`
}

type RepoSource struct {
	ProjectID  string `json:"projectId,omitempty"`
	RepoName   string `json:"repoName"`
	BranchName string `json:"branchName,omitempty"`
	TagName    string `json:"tagName,omitempty"`
	CommitSha  string `json:"commitSha,omitempty"`
}

func (b *Build) IsWorking() bool {
	return b.Status == StatusWorking
}

// StartedAt returns the zero time if the start time is missing or malformed
func (b *Build) StartedAt() time.Time {
	return parseTime(b.StartTime)
}

// FinishedAt returns the zero time if the finish time is missing or malformed
func (b *Build) FinishedAt() time.Time {
	return parseTime(b.FinishTime)
}

// Repo extracts the repository from mirrored bitbucket repo names,
// ie: bitbucket_owner_reponame.
// Names with fewer than three tokens yield an empty string, and a repo name
// that contains underscores itself is cut at its first underscore.
func (b *Build) Repo() string {
	if b.Source == nil {
		return ""
	}
	return repoFromName(b.Source.RepoSource.RepoName)
}

func (b *Build) Branch() string {
	if b.Source == nil {
		return ""
	}
	return b.Source.RepoSource.BranchName
}

func repoFromName(repoName string) string {
	parts := strings.Split(repoName, "_")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
