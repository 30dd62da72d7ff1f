// Package store persists the session record: one JSON document at a
// fixed filename, overwritten whole after every mutation so a crash
// never loses more than the most recent in-flight write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/randomize"
	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
)

// SessionFileName is the fixed storage key for the session record.
const SessionFileName = "trust-ai-study-session.json"

// Store is the persistence contract for one session record.
type Store interface {
	// Load returns the persisted record, or creates, persists, and
	// returns a fresh one if none exists or the stored data is
	// unusable.
	Load() (*record.SessionRecord, error)
	// Save persists the full record, overwriting any prior value.
	Save(*record.SessionRecord) error
	// Clear deletes the persisted record. Irreversible; used only for
	// operator-initiated reset.
	Clear() error
	// Path returns the storage location, for display.
	Path() string
}

// FileStore keeps the record as an indented JSON file in a directory.
type FileStore struct {
	dir    string
	engine *randomize.Engine
	logger *slog.Logger
	now    func() time.Time
}

// NewFileStore creates a FileStore rooted at dir. The engine supplies
// the fair coin for the pole-reversal flag of freshly created records.
func NewFileStore(dir string, engine *randomize.Engine) *FileStore {
	return &FileStore{
		dir:    dir,
		engine: engine,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// Path returns the full session file path.
func (fs *FileStore) Path() string {
	return filepath.Join(fs.dir, SessionFileName)
}

// Load returns the persisted record if present and well-formed. A
// missing file yields a fresh record, persisted before returning. A
// malformed file is moved aside to "<name>.corrupt" and treated as
// absent, so the corrupt payload stays available for inspection.
func (fs *FileStore) Load() (*record.SessionRecord, error) {
	path := fs.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading session file %s: %w", path, err)
		}
		return fs.initFresh()
	}

	var rec record.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		fs.quarantine(path, err)
		return fs.initFresh()
	}
	if rec.ParticipantID == "" {
		fs.quarantine(path, errors.New("missing participantId"))
		return fs.initFresh()
	}

	return &rec, nil
}

// Save writes the record atomically: to a temp file in the same
// directory, then renamed over the session file.
func (fs *FileStore) Save(rec *record.SessionRecord) error {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", fs.dir, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}

	tmp, err := os.CreateTemp(fs.dir, SessionFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()        //nolint:errcheck
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("writing session record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("closing temp session file: %w", err)
	}

	if err := os.Rename(tmpName, fs.Path()); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear removes the persisted record. A missing file is not an error.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

func (fs *FileStore) initFresh() (*record.SessionRecord, error) {
	rec := record.New(fs.now(), fs.engine.CoinFlip())
	if err := fs.Save(rec); err != nil {
		return nil, err
	}
	fs.logger.Info("created fresh session record",
		"participant", rec.ParticipantID, "poleReversal", rec.PoleReversal)
	return rec, nil
}

// quarantine moves an unusable session file aside instead of deleting
// it, so a researcher can still recover whatever it contains.
func (fs *FileStore) quarantine(path string, cause error) {
	backup := path + ".corrupt"
	if err := os.Rename(path, backup); err != nil {
		fs.logger.Error("failed to quarantine corrupt session file",
			"path", path, "error", err)
		return
	}
	fs.logger.Warn("session file was malformed; starting fresh",
		"cause", cause, "backup", backup)
}

// Ensure FileStore satisfies Store.
var _ Store = (*FileStore)(nil)
