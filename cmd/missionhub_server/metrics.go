package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	applicationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "missionhub",
		Name:      "applications_total",
		Help:      "Number of application state changes.",
	}, []string{"action"})

	missionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "missionhub",
		Name:      "missions_total",
		Help:      "Number of mission changes.",
	}, []string{"action"})
)

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{DisableCompression: true},
	))
}
