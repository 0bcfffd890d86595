package file

import (
	"os"
	"path/filepath"
)

type FileEvent struct {
	Filepath    string
	FileCreated bool
}

// SearchDir walks dir recursively and returns the paths of the regular files
// accepted by filter.
func SearchDir(dir string, filter func(filepath string) bool) ([]string, error) {
	var (
		entries []os.DirEntry
		err     error
	)
	result := make([]string, 0, 16)
	if entries, err = os.ReadDir(dir); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			var filepaths []string
			if filepaths, err = SearchDir(path, filter); err != nil {
				return nil, err
			}
			result = append(result, filepaths...)
		} else if filter == nil || filter(path) {
			result = append(result, path)
		}
	}
	return result, nil
}

// SearchSubDirs returns dir and every directory below it.
func SearchSubDirs(dir string) ([]string, error) {
	var (
		entries []os.DirEntry
		err     error
	)
	if entries, err = os.ReadDir(dir); err != nil {
		return nil, err
	}
	result := []string{dir}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var dirs []string
		if dirs, err = SearchSubDirs(filepath.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
		result = append(result, dirs...)
	}
	return result, nil
}
