package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if app.storage == nil {
		dbStatus = "error"
	} else if err := app.storage.Ping(r.Context()); err != nil {
		dbStatus = "error"
	}

	queueStatus := "ok"
	if app.broker == nil || !app.broker.Healthy() {
		queueStatus = "error"
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services: map[string]string{
			"database": dbStatus,
			"queue":    queueStatus,
		},
	}

	// if any service is down, mark as unhealthy
	if dbStatus != "ok" || queueStatus != "ok" {
		response.Status = "unhealthy"
		if err := writeJson(w, http.StatusServiceUnavailable, response); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
