/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package bundle packs a layout project into a single .zip for sharing and
// unpacks such archives into a project directory.
package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	applog "frameforge/internal/log"
	"frameforge/internal/storage"
)

// ManifestEntryName is the human-readable note written at the archive root.
const ManifestEntryName = "bundle.manifest.txt"

// bundled lists what goes into an archive: the layout manifest plus the
// shareable output folders. The index and backups stay local.
var bundled = []string{
	storage.ManifestFileName,
	"exports",
	"previews",
}

// Export zips the project at projectRoot into destZipPath. The archive
// carries layout.json, the exports and previews folders, and a small text
// manifest for quick human inspection.
func Export(projectRoot, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("bundle"), "export").With(slog.String("project", projectRoot))
	if strings.TrimSpace(projectRoot) == "" {
		return errors.New("projectRoot is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("Frame Forge Layout Bundle\nCreated: %s\nProject: %s\n\nContents: layout.json plus the exports and previews folders.\n",
		time.Now().Format(time.RFC3339), projectRoot)
	w, err := zw.Create(ManifestEntryName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	for _, entry := range bundled {
		src := filepath.Join(projectRoot, entry)
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", entry, err)
		}
		if !info.IsDir() {
			if err := addFile(zw, src, entry); err != nil {
				return fmt.Errorf("add %s: %w", entry, err)
			}
			added++
			continue
		}
		err = filepath.Walk(src, func(path string, fi os.FileInfo, err error) error {
			if err != nil || fi.IsDir() {
				return err
			}
			rel, err := filepath.Rel(projectRoot, path)
			if err != nil {
				return err
			}
			if err := addFile(zw, path, filepath.ToSlash(rel)); err != nil {
				return err
			}
			added++
			return nil
		})
		if err != nil {
			l.Error("zip build failed", slog.Any("err", err))
			return fmt.Errorf("build zip: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	l.Info("bundle exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

func addFile(zw *zip.Writer, path, zipName string) error {
	fw, err := zw.Create(zipName)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = io.Copy(fw, f)
	return err
}

// Install extracts a bundle into the project directory at projectRoot.
// Existing files are not overwritten; entries escaping the project root are
// rejected. Returns the count of files installed.
func Install(projectRoot, bundleZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("bundle"), "install").With(slog.String("project", projectRoot))
	if strings.TrimSpace(projectRoot) == "" {
		return 0, errors.New("projectRoot is required")
	}
	if strings.TrimSpace(bundleZipPath) == "" {
		return 0, errors.New("bundleZipPath is required")
	}
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return 0, fmt.Errorf("ensure project root: %w", err)
	}

	r, err := zip.OpenReader(bundleZipPath)
	if err != nil {
		return 0, fmt.Errorf("open bundle: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		if f.Name == ManifestEntryName || strings.HasSuffix(f.Name, "/") {
			continue
		}
		dst := filepath.Join(projectRoot, filepath.FromSlash(f.Name))
		// Zip-slip guard: the resolved path must stay inside the project.
		rel, err := filepath.Rel(projectRoot, dst)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return installed, fmt.Errorf("entry escapes project root: %s", f.Name)
		}
		if _, err := os.Stat(dst); err == nil {
			l.Debug("skip existing file", slog.String("file", f.Name))
			continue
		}
		if err := extractFile(f, dst); err != nil {
			return installed, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		installed++
	}
	l.Info("bundle installed", slog.Int("files", installed))
	return installed, nil
}

func extractFile(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	w, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	_, err = io.Copy(w, rc)
	return err
}
