// Command blogger-token obtains a Blogger refresh token: it prints the
// Google consent URL, receives the authorization code on a localhost
// callback, exchanges it, and prints the refresh token to store in .env.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

const (
	callbackAddr = "localhost:8888"
	redirectURL  = "http://localhost:8888/callback"
	bloggerScope = "https://www.googleapis.com/auth/blogger"
)

func main() {
	_ = godotenv.Load()

	clientID := os.Getenv("BLOGGER_CLIENT_ID")
	clientSecret := os.Getenv("BLOGGER_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		slog.Error("BLOGGER_CLIENT_ID and BLOGGER_CLIENT_SECRET must be set")
		os.Exit(1)
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{bloggerScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	// access_type=offline with forced consent so Google issues a refresh
	// token even when the app was authorized before.
	authURL := conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	fmt.Println("Open this URL in your browser and authorize the app:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Println("Waiting for the OAuth callback on " + redirectURL + " ...")

	codeCh := make(chan string, 1)
	server := &http.Server{Addr: callbackAddr}
	http.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code parameter", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><h1>인증 성공!</h1><p>이 창을 닫고 터미널을 확인하세요.</p></body></html>")
		codeCh <- code
	})

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Callback server failed", "error", err)
			os.Exit(1)
		}
	}()

	code := <-codeCh
	_ = server.Close()

	token, err := conf.Exchange(context.Background(), code)
	if err != nil {
		slog.Error("Token exchange failed", "error", err)
		os.Exit(1)
	}
	if token.RefreshToken == "" {
		slog.Error("No refresh token in response; revoke the app's access and retry")
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Add this to your .env:")
	fmt.Printf("BLOGGER_REFRESH_TOKEN=%s\n", token.RefreshToken)
}
