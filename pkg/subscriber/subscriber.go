package subscriber

import (
	"context"
	"fmt"

	"github.com/gimlet-io/cloudbuild-notifier/pkg/cloudbuild"
	"github.com/gimlet-io/cloudbuild-notifier/pkg/notifications"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Event is a single pubsub message published by Cloud Build
type Event struct {
	MessageID  string            `json:"messageId"`
	Data       string            `json:"data"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Outcome string

const (
	Sent    Outcome = "sent"
	Dropped Outcome = "dropped"
	Failed  Outcome = "failed"
)

// Subscriber turns build events into chat notifications.
// It holds no per-event state, so a single instance serves concurrent events.
type Subscriber struct {
	filter   *cloudbuild.Filter
	provider notifications.Provider
}

func New(filter *cloudbuild.Filter, provider notifications.Provider) *Subscriber {
	return &Subscriber{
		filter:   filter,
		provider: provider,
	}
}

// Subscribe decodes, filters, formats and sends one event.
// Every failure, panics included, ends here and is reported to the
// same webhook as a best effort error notification.
func (s *Subscriber) Subscribe(ctx context.Context, event Event) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.reportError(ctx, fmt.Errorf("%v", r))
			outcome = Failed
		}
	}()

	outcome, err := s.process(ctx, event)
	if err != nil {
		s.reportError(ctx, err)
		return Failed
	}
	return outcome
}

func (s *Subscriber) process(ctx context.Context, event Event) (Outcome, error) {
	build, err := cloudbuild.EventToBuild(event.Data)
	if err != nil {
		return Failed, err
	}

	logrus.Info("function executed")

	if build.Source != nil {
		logrus.Infof("build for %s", build.Repo())
	}

	ok, reason := s.filter.Accept(build)
	if !ok {
		logrus.Infof("%s, not sending any notification", reason)
		return Dropped, nil
	}

	logrus.Debugf("build data: %+v", build)

	err = s.provider.Send(ctx, notifications.MessageFromBuild(build))
	if err != nil {
		return Failed, errors.Wrapf(err, "build %s", build.ID)
	}

	return Sent, nil
}

func (s *Subscriber) reportError(ctx context.Context, err error) {
	logrus.Errorf("cannot process event: %s", err)

	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("cannot send error notification: %v", r)
		}
	}()

	sendErr := s.provider.Send(ctx, notifications.MessageFromError(err))
	if sendErr != nil {
		logrus.Warnf("cannot send error notification: %s", sendErr)
	}
}
