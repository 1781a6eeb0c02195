package cloudbuild

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// DecodeError is returned when a pubsub payload is not a base64 encoded build
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "cannot decode build: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EventToBuild transforms the data field of a pubsub message to a build
func EventToBuild(data string) (*Build, error) {
	if strings.TrimSpace(data) == "" {
		return nil, &DecodeError{Err: errors.New("empty payload")}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		// some publishers strip the padding
		raw, err = base64.RawStdEncoding.DecodeString(data)
		if err != nil {
			return nil, &DecodeError{Err: errors.Wrap(err, "invalid base64")}
		}
	}

	var build Build
	err = json.Unmarshal(raw, &build)
	if err != nil {
		return nil, &DecodeError{Err: errors.Wrap(err, "invalid json")}
	}

	return &build, nil
}

// BuildToEvent is the inverse of EventToBuild
func BuildToEvent(build *Build) (string, error) {
	raw, err := json.Marshal(build)
	if err != nil {
		return "", errors.Wrap(err, "cannot marshal build")
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
