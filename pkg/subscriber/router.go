package subscriber

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// pushRequest is the body of a pubsub push subscription request
type pushRequest struct {
	Message      Event  `json:"message"`
	Subscription string `json:"subscription"`
}

func SetupRouter(
	subscriber *Subscriber,
	eventsProcessed *prometheus.CounterVec,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	push := pushHandler(subscriber, eventsProcessed)
	r.Post("/", push)
	r.Post("/pubsub", push)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

// pushHandler acknowledges every well formed push request,
// so pubsub never redelivers an event, even a failed one
func pushHandler(subscriber *Subscriber, eventsProcessed *prometheus.CounterVec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 10000000))
		if err != nil {
			logrus.Errorf("could not read push request: %s", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var req pushRequest
		err = json.Unmarshal(body, &req)
		if err != nil {
			logrus.Errorf("could not parse push request: %s", err)
			http.Error(w, "invalid push request", http.StatusBadRequest)
			return
		}

		logrus.Debugf("received message %s from %s", req.Message.MessageID, req.Subscription)

		outcome := subscriber.Subscribe(r.Context(), req.Message)
		if eventsProcessed != nil {
			eventsProcessed.WithLabelValues(string(outcome)).Inc()
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
