// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// ZIP assembly of binaries, default configuration, and static assets

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Assemble packages the build outputs, the default configuration, and the
// workspace's static-asset subtree into one finalized ZIP archive.
//
// The archive is written to a temporary file next to the output path and
// renamed into place only after a successful finalization, so a failure
// partway never leaves a truncated file behind. Any unreadable source
// file aborts the whole assembly.
func Assemble(config *AssembleConfig) (err error) {
	outputDir := filepath.Dir(config.OutputPath)

	tmpFile, err := os.CreateTemp(outputDir, ".forge-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(tmpFile)

	if err = writeBinaries(zw, config.Binaries); err != nil {
		return err
	}

	if err = writeConfig(zw); err != nil {
		return err
	}

	if err = writeAssets(zw, filepath.Join(config.WorkspaceDir, AssetsSubdir)); err != nil {
		return err
	}

	comment := fmt.Sprintf("Ferron built for %q target using Ferron Forge", config.Triple)
	if err = zw.SetComment(comment); err != nil {
		return fmt.Errorf("failed to set archive comment: %w", err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	// CreateTemp makes the file 0600; the distributable gets the
	// conventional mode before moving into place
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set archive permissions: %w", err)
	}

	if err = os.Rename(tmpPath, config.OutputPath); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}

	return nil
}

// writeBinaries adds each binary as a root-level entry with the
// executable permission bits set
func writeBinaries(zw *zip.Writer, binaries []string) error {
	for _, binaryPath := range binaries {
		name := filepath.Base(binaryPath)
		if name == "." || name == string(filepath.Separator) || name == "" {
			// A path with no file-name component has nothing to name the
			// entry after; the build system never emits one, so skip
			continue
		}

		header := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		header.SetMode(binaryMode)

		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", name, err)
		}

		if err := copyFileInto(w, binaryPath); err != nil {
			return fmt.Errorf("failed to archive binary %s: %w", binaryPath, err)
		}
	}

	return nil
}

// writeConfig adds the fixed default configuration entry
func writeConfig(zw *zip.Writer) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   ConfigEntryName,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", ConfigEntryName, err)
	}

	if _, err := w.Write([]byte(DefaultConfig)); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigEntryName, err)
	}

	return nil
}

// writeAssets mirrors the static-asset subtree into the archive. Files
// become data entries at their relative path; directories other than the
// subtree root get explicit entries so empty directories survive
// extraction. Entry order follows the walk and is not a contract.
func writeAssets(zw *zip.Writer, assetsRoot string) error {
	return filepath.WalkDir(assetsRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("failed to walk assets: %w", walkErr)
		}

		relPath, err := filepath.Rel(assetsRoot, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		name := filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath == "." {
				// The subtree root itself maps to the archive root and
				// gets no entry
				return nil
			}
			if _, err := zw.Create(name + "/"); err != nil {
				return fmt.Errorf("failed to create directory entry %s: %w", name, err)
			}
			return nil
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", name, err)
		}

		if err := copyFileInto(w, path); err != nil {
			return fmt.Errorf("failed to archive asset %s: %w", name, err)
		}

		return nil
	})
}

// copyFileInto streams a file's bytes into an open archive entry
func copyFileInto(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
