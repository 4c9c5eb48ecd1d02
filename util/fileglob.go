package util

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
)

// Determines if a file path contains a hidden file or directory.
// Either it starts with . or contains '/.' to be considered hidden.
func isHidden(fp string) bool {
	return strings.HasPrefix(fp, ".") || strings.Contains(fp, "/.")
}

// ListFiles lists the regular files below base as slash-separated paths
// relative to base. Hidden files and directories are skipped.
// It utilizes the fast godirwalk library found here: https://github.com/karrick/godirwalk
func ListFiles(ctx context.Context, base string) ([]string, error) {
	list := make([]string, 0)

	err := godirwalk.Walk(base, &godirwalk.Options{
		Callback: func(fp string, de *godirwalk.Dirent) error {
			rel, err := filepath.Rel(base, fp)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." {
				return nil
			}
			if isHidden(rel) {
				if de.IsDir() {
					Debugf(ctx, "ignoring hidden directory %s", rel)
					return filepath.SkipDir
				}
				return nil
			}
			if de.IsRegular() {
				list = append(list, rel)
			}
			return nil
		},
	})

	return list, err
}
