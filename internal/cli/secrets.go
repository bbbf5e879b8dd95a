package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/zalando/go-keyring"
)

// SecretStore keeps vCard source passwords per user name.
type SecretStore interface {
	Get(user string) (string, error)
	Set(user, password string) error
	Delete(user string) error
}

// KeyringStore stores passwords in the operating system keyring.
type KeyringStore struct{}

func (KeyringStore) Get(user string) (string, error) {
	return keyring.Get(config.KeyringService, user)
}

func (KeyringStore) Set(user, password string) error {
	return keyring.Set(config.KeyringService, user, password)
}

func (KeyringStore) Delete(user string) error {
	err := keyring.Delete(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// withCredentials embeds user and its stored password into an http(s)
// source URL. Local paths and URLs that already carry credentials are
// returned unchanged.
func withCredentials(source, user string, secrets SecretStore) (string, error) {
	if user == "" {
		return source, nil
	}
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS) || u.User != nil {
		return source, nil
	}

	password, err := secrets.Get(user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringGet, err)
	}
	u.User = url.UserPassword(user, password)

	slog.Debug(config.MsgCredentialsUsed,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyUser, user,
	)
	return u.String(), nil
}
