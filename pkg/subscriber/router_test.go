package subscriber

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gimlet-io/cloudbuild-notifier/pkg/cloudbuild"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func pushBody(t *testing.T, event Event) io.Reader {
	body, err := json.Marshal(pushRequest{
		Message:      event,
		Subscription: "projects/acme/subscriptions/cloud-builds-notifier",
	})
	assert.Nil(t, err)
	return bytes.NewReader(body)
}

func counterValue(t *testing.T, counter *prometheus.CounterVec, result string) float64 {
	m := &dto.Metric{}
	err := counter.WithLabelValues(result).Write(m)
	assert.Nil(t, err)
	return m.GetCounter().GetValue()
}

func Test_Push(t *testing.T) {
	provider := &recordingProvider{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_events_total"}, []string{"result"})
	router := SetupRouter(New(cloudbuild.NewFilter([]string{"widgets"}, nil), provider), counter)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/", "application/json", pushBody(t, eventOf(t, widgetsBuild(cloudbuild.StatusSuccess))))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, provider.sent, 1)

	resp, err = http.Post(server.URL+"/pubsub", "application/json", pushBody(t, eventOf(t, widgetsBuild(cloudbuild.StatusQueued))))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, provider.sent, 1, "queued builds are dropped")

	resp, err = http.Post(server.URL+"/", "application/json", pushBody(t, Event{Data: "garbage!"}))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "failed events are acknowledged too")
	assert.Len(t, provider.sent, 2)

	assert.Equal(t, float64(1), counterValue(t, counter, "sent"))
	assert.Equal(t, float64(1), counterValue(t, counter, "dropped"))
	assert.Equal(t, float64(1), counterValue(t, counter, "failed"))
}

func Test_PushInvalidEnvelope(t *testing.T) {
	provider := &recordingProvider{}
	router := SetupRouter(New(cloudbuild.NewFilter([]string{"widgets"}, nil), provider), nil)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/", "application/json", bytes.NewReader([]byte("not json")))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, provider.sent)
}

func Test_Healthz(t *testing.T) {
	router := SetupRouter(New(cloudbuild.NewFilter(nil, nil), &recordingProvider{}), nil)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
