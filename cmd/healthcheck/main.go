package main

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/RichStephens/killzone/internal/config"
	"github.com/RichStephens/killzone/internal/constants"
)

func main() {
	// Resolve the listen address exactly as the server does: .env, config
	// file, then KILLZONE_ADDR / PORT.
	_ = config.LoadDotEnv()
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.Exit(1)
	}
	url, err := healthURL(cfg.ServerAddress)
	if err != nil {
		os.Exit(1)
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}

// healthURL turns a listen address into the URL of the health endpoint.
// Wildcard hosts are probed on loopback.
func healthURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + constants.RouteAPIPrefix + constants.RouteHealth, nil
}
