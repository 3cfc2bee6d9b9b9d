package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quiz-automation/internal/domain"

	"github.com/spf13/afero"
)

// QuizSetFileStore implements domain.QuizSetRepository on a directory of JSON files.
type QuizSetFileStore struct {
	fs      afero.Fs
	dataDir string
}

// NewQuizSetFileStore creates a store rooted at dataDir.
func NewQuizSetFileStore(fs afero.Fs, dataDir string) *QuizSetFileStore {
	return &QuizSetFileStore{fs: fs, dataDir: dataDir}
}

// Path returns the full path of a quiz set file.
func (s *QuizSetFileStore) Path(fileName string) string {
	return filepath.Join(s.dataDir, fileName)
}

// Save implements domain.QuizSetRepository
func (s *QuizSetFileStore) Save(ctx context.Context, fileName string, questions []domain.Question) (string, error) {
	if err := checkFileName(fileName); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := marshalDocument(questions)
	if err != nil {
		return "", fmt.Errorf("failed to encode quiz set %s: %w", fileName, err)
	}

	path := s.Path(fileName)
	if err := writeFileAtomic(s.fs, path, data); err != nil {
		return "", domain.NewStorageError("failed to save quiz set", err).WithContext("file", fileName)
	}
	return path, nil
}

// Exists implements domain.QuizSetRepository
func (s *QuizSetFileStore) Exists(ctx context.Context, fileName string) (bool, error) {
	if err := checkFileName(fileName); err != nil {
		return false, err
	}
	ok, err := afero.Exists(s.fs, s.Path(fileName))
	if err != nil {
		return false, domain.NewStorageError("failed to stat quiz set", err).WithContext("file", fileName)
	}
	return ok, nil
}

// Delete implements domain.QuizSetRepository
func (s *QuizSetFileStore) Delete(ctx context.Context, fileName string) error {
	if err := checkFileName(fileName); err != nil {
		return err
	}
	if err := s.fs.Remove(s.Path(fileName)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewNotFoundError(fmt.Sprintf("quiz file not found: %s", fileName))
		}
		return domain.NewStorageError("failed to delete quiz set", err).WithContext("file", fileName)
	}
	return nil
}

// checkFileName rejects names that would escape the data directory.
func checkFileName(fileName string) error {
	if fileName == "" || fileName != filepath.Base(fileName) || strings.ContainsAny(fileName, `/\`) || fileName == "." || fileName == ".." {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid quiz file name: %q", fileName))
	}
	return nil
}
