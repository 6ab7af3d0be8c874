package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/llehouerou/wavecast/internal/config"
	"github.com/llehouerou/wavecast/internal/lastfm"
)

// authorizer is the part of the Last.fm client the desktop auth flow needs.
type authorizer interface {
	GetToken() (string, error)
	GetAuthURL(token string) string
	GetSession(token string) (string, error)
}

func authorizeLastfm(cfg *config.Config, in io.Reader, out io.Writer) error {
	if cfg.Lastfm.APIKey == "" || cfg.Lastfm.APISecret == "" {
		return errors.New("set lastfm.api_key and lastfm.api_secret in config.toml first")
	}
	return runAuthFlow(lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret), in, out)
}

func runAuthFlow(a authorizer, in io.Reader, out io.Writer) error {
	token, err := a.GetToken()
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	fmt.Fprintf(out, "Open this URL and allow access:\n\n  %s\n\nThen press Enter.\n", a.GetAuthURL(token))
	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	key, err := a.GetSession(token)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	fmt.Fprintf(out, "\nAdd to the [lastfm] section of config.toml:\n\n  session_key = %q\n", key)
	return nil
}
