package handlers

import "net/http"

type healthStatus struct {
	Status string `json:"status"`
}

// HealthHandler reports overall service health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, healthStatus{Status: "ok"})
}

// ReadyHandler reports readiness to serve traffic
func ReadyHandler(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, healthStatus{Status: "ready"})
}

// LiveHandler reports process liveness
func LiveHandler(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, healthStatus{Status: "alive"})
}
