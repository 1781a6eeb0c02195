// Command notifier relays Google Cloud Build status events to a chat webhook.
//
// It serves a Pub/Sub push subscription of the cloud-builds topic:
//
//	gcloud pubsub subscriptions create cloud-builds-notifier \
//	  --topic cloud-builds --push-endpoint https://<host>/pubsub
package main

import (
	"net/http"

	"github.com/gimlet-io/cloudbuild-notifier/cmd/notifier/config"
	"github.com/gimlet-io/cloudbuild-notifier/pkg/cloudbuild"
	"github.com/gimlet-io/cloudbuild-notifier/pkg/subscriber"
	"github.com/go-chi/chi"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warnf("could not load .env file, relying on env vars")
	}

	config, err := config.Environ()
	if err != nil {
		log.Fatalf("main: invalid configuration: %s", err)
	}

	initLogger(config)
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Traceln(config.String())
	}

	err = config.Validate()
	if err != nil {
		log.Fatalf("main: %s", err)
	}

	filter := cloudbuild.NewFilter(config.Repos, config.Statuses)
	provider := initNotifications(config)
	s := subscriber.New(filter, provider)

	metricsRouter := chi.NewRouter()
	metricsRouter.Get("/metrics", promhttp.Handler().ServeHTTP)
	go func() {
		err := http.ListenAndServe(config.MetricsAddr, metricsRouter)
		log.Errorf("metrics server stopped: %s", err)
	}()

	log.Infof("listening on %s for %v builds", config.Host, config.Repos)
	r := subscriber.SetupRouter(s, eventsProcessed)
	err = http.ListenAndServe(config.Host, r)
	log.Error(err)
}
