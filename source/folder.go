// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/retrievit/core"
)

// defaultExtensions are the file extensions a Folder loads when none are
// configured explicitly.
var defaultExtensions = []string{".txt", ".md"}

// Folder loads every matching text file in a directory as one document.
// Document titles come from the file name without its extension; IDs are
// content-derived, so re-reading an unchanged folder yields identical
// documents.
type Folder struct {
	path       string
	extensions []string
}

// NewFolder creates a Folder source over path, which must be an existing
// directory. Extra extensions extend the default .txt/.md set.
func NewFolder(path string, extensions ...string) (*Folder, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	return &Folder{
		path:       path,
		extensions: append(append([]string{}, defaultExtensions...), extensions...),
	}, nil
}

// Documents reads the folder's files in lexical path order.
// Subdirectories are walked recursively; files with other extensions are
// skipped.
func (f *Folder) Documents(ctx context.Context) ([]core.Document, error) {
	var docs []core.Document

	err := filepath.WalkDir(f.path, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() || !f.matches(path) {
			return nil
		}

		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		docs = append(docs, core.NewDocument(title, string(contents)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (f *Folder) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range f.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
