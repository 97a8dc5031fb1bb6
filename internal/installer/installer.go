// Package installer copies the running binary into a fixed system location
// and links it into the binary directory. It does not undo earlier steps
// when a later one fails.
package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ryan-gang/shell-mail/internal/logger"
)

const (
	DefaultName   = "shmail"
	LinkSuffix    = ".bin"
	installedMode = 0o700
)

var (
	ErrAlreadyInstalled = errors.New("running from the installed copy, run install from a new binary")
	ErrMissingPrereq    = errors.New("required system directory does not exist")
)

type Installer struct {
	// Executable is the binary to install, normally os.Executable().
	Executable string
	PrereqDir  string
	InstallDir string
	BinDir     string
	Name       string
	Log        logger.LoggerInterface
}

func (i *Installer) name() string {
	if i.Name == "" {
		return DefaultName
	}
	return i.Name
}

// Target is the path of the installed copy.
func (i *Installer) Target() string {
	return filepath.Join(i.InstallDir, i.name())
}

// Links are the symlinks created in BinDir.
func (i *Installer) Links() []string {
	return []string{
		filepath.Join(i.BinDir, i.name()),
		filepath.Join(i.BinDir, i.name()+LinkSuffix),
	}
}

func (i *Installer) Install() error {
	log := i.Log
	if log == nil {
		log = logger.Discard()
	}

	current, err := filepath.EvalSymlinks(i.Executable)
	if err != nil {
		return fmt.Errorf("resolving executable %s: %w", i.Executable, err)
	}
	target := i.Target()
	if installed, err := filepath.EvalSymlinks(target); err == nil && installed == current {
		log.Error("Install ran from the currently installed file ", target)
		return ErrAlreadyInstalled
	}

	if !dirExists(i.PrereqDir) {
		log.Errorf("%s does not exist, and is required for automated setup", i.PrereqDir)
		return fmt.Errorf("%w: %s", ErrMissingPrereq, i.PrereqDir)
	}

	if !dirExists(i.InstallDir) {
		if err := os.Mkdir(i.InstallDir, installedMode); err != nil {
			return fmt.Errorf("creating %s: %w", i.InstallDir, err)
		}
		log.Infof("Created install directory %s", i.InstallDir)
	}

	if err := copyReplace(current, target); err != nil {
		return err
	}
	log.Infof("Installed %s to %s", current, target)

	if !dirExists(i.BinDir) {
		log.Warnf("%s does not exist, no command links created", i.BinDir)
		return nil
	}
	for _, link := range i.Links() {
		if err := replaceSymlink(target, link); err != nil {
			return err
		}
		log.Infof("Linked %s -> %s", link, target)
	}
	return nil
}

// copyReplace stages src next to dst and renames it into place, so an
// existing dst is swapped atomically.
func copyReplace(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("staging copy: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("copying to %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(installedMode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting mode on %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("moving copy into %s: %w", dst, err)
	}
	return nil
}

func replaceSymlink(target, link string) error {
	if info, err := os.Lstat(link); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("%s exists and is not a symlink", link)
		}
		if err := os.Remove(link); err != nil {
			return fmt.Errorf("removing old link %s: %w", link, err)
		}
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("linking %s: %w", link, err)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
