package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Lumerin-protocol/presale-minter/internal/interfaces"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	serverAddr string
	handler    http.Handler

	log interfaces.ILogger
}

func NewHTTPServer(serverAddr string, handler http.Handler, log interfaces.ILogger) *HTTPServer {
	return &HTTPServer{
		serverAddr: serverAddr,
		handler:    handler,
		log:        log,
	}
}

// Run serves until ctx is done, then shuts the server down gracefully
func (p *HTTPServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", p.serverAddr)
	if err != nil {
		return fmt.Errorf("listener error %s %w", p.serverAddr, err)
	}

	server := &http.Server{
		Handler:           p.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	p.log.Infof("http server is listening: %s", listener.Addr())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			return err
		}
		p.log.Infof("http server closed: %s", p.serverAddr)
		return ctx.Err()
	case err = <-serverErr:
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
