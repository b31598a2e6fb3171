package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// persistedState is the entire durable surface of the client: two tokens and
// the serialized principal.
type persistedState struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	Principal    *Principal `json:"principal,omitempty"`
}

// storage reads and writes the session file. Writes go through a temp file
// and rename so a crash never leaves a truncated session behind.
type storage struct {
	path string
}

func (st *storage) load() (*persistedState, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &persistedState{}, nil
		}
		return nil, fmt.Errorf("reading session file %q: %w", st.path, err)
	}

	if len(data) == 0 {
		return &persistedState{}, nil
	}

	var persisted persistedState
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("parsing session file %q: %w", st.path, err)
	}

	return &persisted, nil
}

func (st *storage) save(persisted *persistedState) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return err
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}

	return nil
}

func (st *storage) clear() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath(app string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, app, "session.json"), nil
}
