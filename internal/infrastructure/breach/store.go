package breach

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"strings"
	"sync"

	"dataguardian/pkg/logger"
)

// Digest computes the hex SHA-1 of the trimmed, lower-cased email. The
// dataset is keyed by this digest so the store never holds raw addresses.
func Digest(email string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// FileStore is a breach membership store backed by a line-oriented local
// dataset, one record per line:
//
//	<hex-sha1-digest>;<source1>,<source2>,...
//
// The file is parsed at most once per process, lazily on first lookup.
// A missing file is a valid "no breaches known" state, not an error.
type FileStore struct {
	path   string
	logger *logger.Logger

	once sync.Once
	db   map[string][]string
}

// NewFileStore creates a new FileStore over the given dataset path
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: log.WithComponent("breach-store"),
	}
}

// Check looks up the email's digest in the dataset
func (s *FileStore) Check(ctx context.Context, email string) (bool, []string) {
	s.once.Do(s.load)
	sources := s.db[Digest(email)]
	return len(sources) > 0, sources
}

func (s *FileStore) load() {
	db := make(map[string][]string)

	f, err := os.Open(s.path)
	if err != nil {
		s.logger.Warn().Str("path", s.path).Err(err).
			Msg("breach dataset unavailable, all lookups will report not-found")
		s.db = db
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.Contains(line, ";") {
			continue
		}

		parts := strings.SplitN(line, ";", 2)
		digest := strings.ToLower(strings.TrimSpace(parts[0]))
		if digest == "" {
			continue
		}

		var sources []string
		for _, src := range strings.Split(parts[1], ",") {
			if src = strings.TrimSpace(src); src != "" {
				sources = append(sources, src)
			}
		}
		db[digest] = sources
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("breach dataset partially read")
	}

	s.db = db
	s.logger.Info().Str("path", s.path).Int("records", len(db)).Msg("breach dataset loaded")
}
