// Package archive unpacks source tarballs.
package archive

import (
	"archive/tar"
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Extractor implements ports.Extractor for tar archives with gzip, xz,
// zstd, bzip2, or no compression. The archive's single top-level
// directory is stripped so dest is the source root.
type Extractor struct{}

var _ ports.Extractor = (*Extractor)(nil)

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks the archive at path into dest. Entries that would
// escape dest are rejected.
func (e *Extractor) Extract(path, dest string) error {
	f, err := os.Open(path) //nolint:gosec // path comes from the verified cache
	if err != nil {
		return zerr.Wrap(err, "failed to open archive")
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz"):
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return zerr.Wrap(err, "failed to create gzip reader")
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".tar.bz2"):
		r = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".tar.xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return zerr.Wrap(err, "failed to create xz reader")
		}
		r = xzr
	case strings.HasSuffix(path, ".tar.zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return zerr.Wrap(err, "failed to create zstd reader")
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".tar"):
		// No compression.
	default:
		return zerr.With(zerr.New("unsupported archive format"), "path", path)
	}

	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create destination")
	}

	return untar(tar.NewReader(r), dest)
}

func untar(tr *tar.Reader, dest string) error {
	var prefix string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read tar header")
		}

		if hdr.Typeflag == tar.TypeXHeader || hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		// The first content entry names the archive's top-level
		// directory; strip it from every path.
		if prefix == "" && (hdr.Typeflag == tar.TypeDir || hdr.Typeflag == tar.TypeReg) {
			if idx := strings.Index(hdr.Name, "/"); idx != -1 {
				prefix = hdr.Name[:idx+1]
			}
		}
		name := strings.TrimPrefix(hdr.Name, prefix)
		if name == "" {
			continue
		}

		target, err := secureJoin(dest, name)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return zerr.Wrap(err, "failed to create parent directory")
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil { //nolint:gosec // archive modes
				return zerr.Wrap(err, "failed to create directory")
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode)); err != nil { //nolint:gosec // archive modes
				return err
			}
			if err := os.Chtimes(target, hdr.ModTime, hdr.ModTime); err != nil {
				return zerr.Wrap(err, "failed to set file times")
			}
		case tar.TypeSymlink:
			// Disallow absolute link targets and targets that climb out
			// of dest.
			if filepath.IsAbs(hdr.Linkname) {
				return zerr.With(zerr.New("absolute symlink in archive"), "entry", hdr.Name)
			}
			if _, err := secureJoin(filepath.Dir(target), hdr.Linkname); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
				return zerr.Wrap(err, "failed to create symlink")
			}
		case tar.TypeLink:
			// Hard link targets name another entry from the archive
			// root, so they carry the stripped prefix too.
			src, err := secureJoin(dest, strings.TrimPrefix(hdr.Linkname, prefix))
			if err != nil {
				return err
			}
			if err := os.Link(src, target); err != nil && !os.IsExist(err) {
				return zerr.Wrap(err, "failed to create hard link")
			}
		default:
			return zerr.With(zerr.With(zerr.New("unsupported tar entry type"),
				"entry", hdr.Name),
				"type", int(hdr.Typeflag))
		}
	}
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode) //nolint:gosec // within dest
	if err != nil {
		return zerr.Wrap(err, "failed to create file")
	}
	if _, err := io.Copy(out, r); err != nil { //nolint:gosec // trusted archive size
		out.Close()
		return zerr.Wrap(err, "failed to write file")
	}
	return out.Close()
}

// secureJoin joins name onto dest and rejects results outside dest.
func secureJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", zerr.With(zerr.New("archive entry escapes destination"), "entry", name)
	}
	return target, nil
}
