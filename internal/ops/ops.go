// Package ops exposes the local operational endpoints: liveness at
// /status and Prometheus metrics at /metrics. The server binds to a
// loopback address by default and is not part of the storefront API.
package ops

import (
	"net/http"
	"net/url"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthHTTP "github.com/hellofresh/health-go/v5/checks/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

// NewServer builds the ops HTTP server. backendURL is probed by the
// health check so /status reflects reachability of the remote storefront
// backend, not just process liveness.
func NewServer(addr, backendURL string) (*http.Server, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-client",
			Version: version,
		}),
		health.WithSystemInfo(),
	)
	if err != nil {
		return nil, err
	}

	if probe, err := url.JoinPath(backendURL, "wareHouse/public/products"); err == nil {
		err = h.Register(health.Config{
			Name:      "backend",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: healthHTTP.New(healthHTTP.Config{
				URL: probe,
			}),
		})
		if err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/status", h.Handler())
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}
