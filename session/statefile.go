package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Fixed keys for durable local state, carried over from the browser build so
// the two deployments stay interchangeable.
const (
	keyUserToken  = "gomel_token"
	keyUser       = "gomel_user"
	keyAdminToken = "gomel_admin_token"
)

// stateFile is a flat string-keyed JSON file, the process-restart analog of
// the browser's local storage.
type stateFile struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func newStateFile(path string) *stateFile {
	f := &stateFile{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err == nil {
		// A corrupt file is treated as empty rather than fatal.
		_ = json.Unmarshal(raw, &f.data)
	}
	return f
}

func (f *stateFile) Get(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key]
}

func (f *stateFile) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

func (f *stateFile) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return f.flush()
}

func (f *stateFile) flush() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
