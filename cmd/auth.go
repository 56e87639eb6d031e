package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticktick-mcp/internal/logging"
	"ticktick-mcp/internal/ticktick"
)

const authCallbackTimeout = 5 * time.Minute

func newAuthCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
		port         int
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with TickTick via OAuth",
		Long: `Run the TickTick OAuth authorization code flow and store the
resulting access token for use by the MCP server.

The command prints an authorization URL, waits for the browser redirect
on a local callback port, exchanges the authorization code for a token,
and writes the token to the user config directory.

Credentials for a TickTick developer application are required:
  --client-id and --client-secret flags
  OR TICKTICK_CLIENT_ID and TICKTICK_CLIENT_SECRET env vars

Register an application at https://developer.ticktick.com with the
redirect URI http://localhost:8000/callback (adjust for --port).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = os.Getenv("TICKTICK_CLIENT_ID")
			}
			if clientSecret == "" {
				clientSecret = os.Getenv("TICKTICK_CLIENT_SECRET")
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("client credentials required: set --client-id/--client-secret or TICKTICK_CLIENT_ID/TICKTICK_CLIENT_SECRET")
			}
			return runAuth(cmd.Context(), clientID, clientSecret, port)
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "TickTick OAuth client ID. Can also use TICKTICK_CLIENT_ID env var.")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "TickTick OAuth client secret. Can also use TICKTICK_CLIENT_SECRET env var.")
	cmd.Flags().IntVar(&port, "port", 8000, "Local port for the OAuth callback listener")

	return cmd
}

func runAuth(ctx context.Context, clientID, clientSecret string, port int) error {
	redirectURL := fmt.Sprintf("http://localhost:%d/callback", port)
	oauthConfig := ticktick.OAuthConfig(clientID, clientSecret, redirectURL)

	state, err := randomState()
	if err != nil {
		return fmt.Errorf("failed to generate state: %w", err)
	}

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errParam := query.Get("error"); errParam != "" {
			http.Error(w, "Authorization failed: "+errParam, http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("authorization denied: %s", errParam)}
			return
		}
		if query.Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("state mismatch in OAuth callback")}
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("no authorization code in callback")}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
		results <- callbackResult{code: code}
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	authURL := oauthConfig.AuthCodeURL(state)
	fmt.Println("Open the following URL in your browser to authorize ticktick-mcp:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Printf("Waiting for the OAuth callback on %s ...\n", redirectURL)

	var code string
	select {
	case result := <-results:
		if result.err != nil {
			return result.err
		}
		code = result.code
	case err := <-serverErr:
		return fmt.Errorf("callback server failed: %w", err)
	case <-time.After(authCallbackTimeout):
		return fmt.Errorf("timed out waiting for OAuth callback")
	case <-ctx.Done():
		return ctx.Err()
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	slog.Debug("access token obtained", "token", logging.SanitizeToken(token.AccessToken))

	if err := ticktick.SaveToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Println("Authentication successful. Token stored.")
	fmt.Println("The MCP server will pick it up automatically on the next start.")
	return nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
