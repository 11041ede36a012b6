package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/cinema-tickets/api"
)

const healthCheckTimeout = 2 * time.Second

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	code := http.StatusOK

	if err := app.pingDependencies(r.Context()); err != nil {
		app.logger.Error("health check failed", "error", err)
		status = "DOWN"
		code = http.StatusServiceUnavailable
	}

	systemInfo := api.SystemInfo{
		Version:     version,
		Environment: app.config.Env,
	}

	resp := api.HealthcheckResponse{
		Status:     status,
		SystemInfo: systemInfo,
	}

	err := app.writeJSON(w, code, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// pingDependencies checks the connections the application was started with.
// Backends that are not configured are skipped.
func (app *Application) pingDependencies(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if app.db != nil {
		if err := app.db.Ping(ctx); err != nil {
			return err
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}

	return nil
}
