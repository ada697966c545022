// Package locations resolves and creates the filesystem places the
// tool works with: XDG-style config and data directories, repository
// checkouts, and timestamped backups.
package locations

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Dirs are the default logical locations for a product ident.
type Dirs struct {
	Home string
	Call string
	Conf string
	Data string
}

// Defaults compiles the standard locations: the home directory, the
// directory the binary was called from, and the XDG config and data
// directories suffixed with ident.
func Defaults(ident string) Dirs {
	home, _ := os.UserHomeDir()

	conf := os.Getenv("XDG_CONFIG_HOME")
	if conf == "" {
		conf = filepath.Join(home, ".config")
	}
	data := os.Getenv("XDG_DATA_HOME")
	if data == "" {
		data = filepath.Join(home, ".local", "share")
	}

	call, _ := os.Executable()

	return Dirs{
		Home: home,
		Call: filepath.Dir(call),
		Conf: filepath.Join(conf, ident),
		Data: filepath.Join(data, ident),
	}
}

// List returns the locations in a stable order.
func (d Dirs) List() []string {
	return []string{d.Home, d.Call, d.Conf, d.Data}
}

// Make creates any missing directories and returns the ones it
// created.
func Make(paths ...string) ([]string, error) {
	var created []string
	sorted := append([]string(nil), paths...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	for _, p := range sorted {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			if err := os.MkdirAll(p, 0o750); err != nil {
				return created, err
			}
			created = append(created, p)
		}
	}
	return created, nil
}

// Search resolves name against the given locations, preferring later
// entries. When it exists nowhere and createIn is non-empty, that
// directory is created and the would-be path inside it returned.
func Search(name string, paths []string, createIn string) (string, error) {
	sorted := append([]string(nil), paths...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	for _, p := range sorted {
		f := filepath.Join(p, name)
		if _, err := os.Stat(f); err == nil {
			return f, nil
		}
	}

	if abs, err := filepath.Abs(expand(name)); err == nil {
		if _, err := os.Stat(abs); err == nil {
			return abs, nil
		}
	}

	if createIn == "" {
		return "", fmt.Errorf("could not locate %q", name)
	}
	if _, err := Make(createIn); err != nil {
		return "", err
	}
	return filepath.Join(createIn, name), nil
}

// Timestamp formats now as a filename-safe stamp.
func Timestamp(precise bool) string {
	now := time.Now()
	s := now.Format("2006.01.02-15.04.05")
	if precise {
		s += fmt.Sprintf("-%06d", now.Nanosecond()/1000)
	}
	return s
}

// Backup copies src next to itself (or into dir when given) under the
// name <base>_backup_<timestamp> and returns the backup path.
func Backup(src, dir string) (string, error) {
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = filepath.Dir(src)
	}
	tgt := filepath.Join(dir, fmt.Sprintf("%s_backup_%s", filepath.Base(src), Timestamp(false)))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	if _, err := Make(dir); err != nil {
		return "", err
	}
	out, err := os.Create(tgt)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}
	return tgt, nil
}

func expand(p string) string {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
