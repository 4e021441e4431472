package auth

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

// ConsentFlow performs the user-facing half of the authorization-code flow:
// given the provider's authorization URL it obtains user consent and returns
// the authorization code from the redirect.
type ConsentFlow interface {
	Consent(ctx context.Context, authURL string) (code string, err error)
}

// LocalServerFlow captures the OAuth redirect with a short-lived HTTP server
// on localhost. The user opens the authorization URL in a browser; the
// provider redirects back to the local listener with the code.
type LocalServerFlow struct {
	Port string
}

// NewLocalServerFlow returns a LocalServerFlow on the default redirect port.
func NewLocalServerFlow() *LocalServerFlow {
	return &LocalServerFlow{Port: LocalhostAuthPort}
}

func (f *LocalServerFlow) Consent(ctx context.Context, authURL string) (string, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", f.Port))
	if err != nil {
		return "", fmt.Errorf("failed to start listener on port %s: %w", f.Port, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				errCh <- fmt.Errorf("authorization code not found in redirect URL")
				return
			}
			fmt.Fprintf(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	fmt.Printf("Please open the following URL in your browser to authorize worklog:\n%s\n", authURL)
	log.Println("Waiting for authorization code...")

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(5 * time.Minute):
		return "", fmt.Errorf("authorization timed out. Please try again")
	}
}
