package rename

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/teris-io/shortid"
)

// tempPrefix marks intermediate files so they are recognisable if a run
// is interrupted between the two phases.
const tempPrefix = ".bulkrename-"

// maxTempAttempts bounds the search for an unused temporary name.
const maxTempAttempts = 16

// TokenSource produces random tokens for temporary file names.
type TokenSource interface {
	Generate() (string, error)
}

// newTokenSource returns a shortid generator seeded from the clock so that
// separate runs draw different tokens.
func newTokenSource() (TokenSource, error) {
	sid, err := shortid.New(1, shortid.DefaultABC, uint64(time.Now().UnixNano()))
	if err != nil {
		return nil, errors.Wrap(err, "create temporary name generator")
	}
	return sid, nil
}

// tempPath returns an unused path next to source, built from a random
// token and the source extension.
func (e *Executor) tempPath(source string) (string, error) {
	dir := filepath.Dir(source)
	ext := filepath.Ext(source)

	for attempt := 0; attempt < maxTempAttempts; attempt++ {
		token, err := e.tokens.Generate()
		if err != nil {
			return "", errors.Wrap(err, "generate temporary name")
		}

		candidate := filepath.Join(dir, tempPrefix+token+ext)
		_, err = e.fs.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", errors.Wrapf(err, "check temporary name %s", candidate)
		}
	}
	return "", errors.Errorf("no unused temporary name next to %s after %d attempts", source, maxTempAttempts)
}
