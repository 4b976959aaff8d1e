package httpapi

import "net/http"

const (
	pathHealthz   = "/healthz"
	pathMetrics   = "/metrics"
	pathIntake    = "/v1/intake"
	pathProcess   = "/v1/jobs/process"
	pathAggregate = "/v1/jobs/aggregate"
	pathQuery     = "/v1/query"
)

var knownRoutes = map[string]struct{}{
	pathHealthz:   {},
	pathMetrics:   {},
	pathIntake:    {},
	pathProcess:   {},
	pathAggregate: {},
	pathQuery:     {},
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET "+pathHealthz, handler.Healthz)
	if metrics != nil {
		mux.Handle("GET "+pathMetrics, metrics)
	}
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST "+pathIntake, handler.Intake)
	mux.HandleFunc("POST "+pathProcess, handler.RunProcess)
	mux.HandleFunc("POST "+pathAggregate, handler.RunAggregate)
	mux.HandleFunc("GET "+pathQuery, handler.Query)
}
