package statusfx

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/http/handler"
	"github.com/yurykabanov/logrotator/pkg/metrics"
)

func RecentRunsHandler(logger *logrus.Logger, repository handler.RunRepository) *handler.RecentRunsHandler {
	return handler.NewRecentRunsHandler(logger, repository)
}

func RegisterHandlers(router *mux.Router, runs *handler.RecentRunsHandler, collector *metrics.Collector) {
	router.Handle("/status/runs", runs).Methods("GET")
	router.Handle("/metrics", collector.Handler()).Methods("GET")
}
