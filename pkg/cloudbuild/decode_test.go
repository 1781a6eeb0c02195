package cloudbuild

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EventToBuild(t *testing.T) {
	data := base64.StdEncoding.EncodeToString([]byte(`{
		"id": "1c5c4b2d",
		"status": "SUCCESS",
		"startTime": "2020-01-01T00:00:00Z",
		"finishTime": "2020-01-01T00:02:05Z",
		"logUrl": "https://console.cloud.google.com/cloud-build/builds/1c5c4b2d",
		"images": ["gcr.io/acme/widgets:main"],
		"source": {"repoSource": {"repoName": "bitbucket_acme_widgets", "branchName": "main"}}
	}`))

	build, err := EventToBuild(data)
	assert.Nil(t, err)
	assert.Equal(t, "1c5c4b2d", build.ID)
	assert.Equal(t, StatusSuccess, build.Status)
	assert.Equal(t, []string{"gcr.io/acme/widgets:main"}, build.Images)
	assert.Equal(t, "widgets", build.Repo())
	assert.Equal(t, "main", build.Branch())
	assert.Equal(t, int64(125), build.FinishedAt().Unix()-build.StartedAt().Unix())
}

func Test_EventToBuildRoundTrip(t *testing.T) {
	original := &Build{
		ID:        "abc",
		ProjectID: "acme",
		Status:    StatusWorking,
		StartTime: "2020-01-01T00:00:00.123456789Z",
		LogURL:    "https://example.com/logs",
		Images:    []string{"a", "b"},
		Tags:      []string{"trigger-1"},
		Source: &Source{
			RepoSource: RepoSource{
				RepoName:   "bitbucket_acme_widgets",
				BranchName: "main",
				CommitSha:  "76ab7d611242f7c6742f0ab662133e02b2ba2b1c",
			},
		},
	}

	data, err := BuildToEvent(original)
	assert.Nil(t, err)

	decoded, err := EventToBuild(data)
	assert.Nil(t, err)
	assert.Equal(t, original, decoded)

	sourceless := &Build{ID: "xyz", Status: StatusQueued}
	data, err = BuildToEvent(sourceless)
	assert.Nil(t, err)
	decoded, err = EventToBuild(data)
	assert.Nil(t, err)
	assert.Equal(t, sourceless, decoded)
	assert.Nil(t, decoded.Source)
}

func Test_EventToBuildUnpadded(t *testing.T) {
	data := base64.RawStdEncoding.EncodeToString([]byte(`{"id":"a"}`))
	build, err := EventToBuild(data)
	assert.Nil(t, err)
	assert.Equal(t, "a", build.ID)
}

func Test_EventToBuildErrors(t *testing.T) {
	for name, data := range map[string]string{
		"empty":      "",
		"not base64": "%%% not base64 %%%",
		"not json":   base64.StdEncoding.EncodeToString([]byte("hello")),
		"truncated":  base64.StdEncoding.EncodeToString([]byte(`{"id": "abc", "sta`)),
	} {
		t.Run(name, func(t *testing.T) {
			build, err := EventToBuild(data)
			assert.Nil(t, build)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "should be a DecodeError, got %v", err)
		})
	}
}

func Test_Times(t *testing.T) {
	build := &Build{StartTime: "2020-01-01T00:00:00Z", FinishTime: "garbage"}
	assert.Equal(t, int64(1577836800), build.StartedAt().Unix())
	assert.True(t, build.FinishedAt().IsZero())
	assert.True(t, (&Build{}).StartedAt().IsZero())
}
