package controller

import (
	"net/http"
)

type HealthController interface {
	HandleLivenessProbe(w http.ResponseWriter, r *http.Request)
	HandleReadinessProbe(w http.ResponseWriter, r *http.Request)
}

func NewHealthController(readyCheck func() bool) HealthController {
	return &healthControllerImpl{readyCheck: readyCheck}
}

type healthControllerImpl struct {
	readyCheck func() bool
}

func (h *healthControllerImpl) HandleLivenessProbe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *healthControllerImpl) HandleReadinessProbe(w http.ResponseWriter, r *http.Request) {
	if h.readyCheck != nil && !h.readyCheck() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
