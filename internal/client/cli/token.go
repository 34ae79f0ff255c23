package cli

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/filex"
)

// loadToken returns the stored access token, or "" when none is saved.
func (a *App) loadToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *App) saveToken(token string) error {
	return filex.WritePrivate(a.config.TokenFile, []byte(token))
}

func (a *App) clearToken() error {
	return filex.RemoveIfExists(a.config.TokenFile)
}
