package mobile

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"checkers/internal/checkers"
	httpserver "checkers/internal/server/http"
)

// run is one StartServer..StopServer lifetime.
type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

var (
	mu      sync.Mutex
	current *run
)

// StartServer starts the local HTTP server in the background.
// webDir: physical path to the extracted web assets (may be empty)
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		log.Warn().Msg("mobile server already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{cancel: cancel, done: make(chan struct{})}
	current = r
	srv := httpserver.NewServer(httpserver.ServerOptions{
		Addr:        "127.0.0.1:" + port,
		WebDir:      webDir,
		IdleTimeout: 30 * time.Minute,
		Handler: httpserver.Options{
			Rules:       checkers.DefaultConfig(),
			SearchDepth: 6,
		},
	})

	// Run in background so it doesn't block the host UI thread
	go func() {
		defer close(r.done)
		if err := srv.ListenAndServe(ctx); err != nil {
			log.Error().Err(err).Msg("mobile server")
		}
		mu.Lock()
		if current == r {
			current = nil
		}
		mu.Unlock()
	}()
}

// StopServer shuts the server down and waits until it has exited.
func StopServer() {
	mu.Lock()
	r := current
	current = nil
	mu.Unlock()
	if r == nil {
		return
	}
	r.cancel()
	<-r.done
}

func running() bool {
	mu.Lock()
	defer mu.Unlock()
	return current != nil
}
