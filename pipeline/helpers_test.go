package pipeline_test

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/aipage"
	"github.com/fwojciec/aipage/mock"
)

// memFS is an in-memory workspace. Archives are modeled as a map of file
// contents that "unzip" copies into its destination directory.
type memFS struct {
	files    map[string]string
	archives map[string]map[string]string
	execs    [][]string
}

func newMemFS(files map[string]string) *memFS {
	if files == nil {
		files = map[string]string{}
	}
	return &memFS{
		files:    files,
		archives: map[string]map[string]string{},
	}
}

// withArchive registers archive as a workspace file holding contents.
func (m *memFS) withArchive(name string, contents map[string]string) *memFS {
	m.files[name] = "PK\x03\x04"
	m.archives[name] = contents
	return m
}

// hasPrefix reports whether any file lives under dir.
func (m *memFS) hasPrefix(dir string) bool {
	for name := range m.files {
		if strings.HasPrefix(name, dir+"/") {
			return true
		}
	}
	return false
}

func (m *memFS) execsOf(cmd string) [][]string {
	var out [][]string
	for _, argv := range m.execs {
		if argv[0] == cmd {
			out = append(out, argv)
		}
	}
	return out
}

func (m *memFS) workspace() *mock.Workspace {
	return &mock.Workspace{
		ReadFileFn: func(_ context.Context, p string) (string, error) {
			content, ok := m.files[path.Clean(p)]
			if !ok {
				return "", aipage.Errorf(aipage.ENOTFOUND, "%s not found", p)
			}
			return content, nil
		},
		ListDirFn: func(_ context.Context, dir string) ([]aipage.DirEntry, error) {
			return m.list(dir)
		},
		ExecFn: func(_ context.Context, argv []string) (*aipage.ExecResult, error) {
			m.execs = append(m.execs, argv)
			switch argv[0] {
			case "unzip":
				archive, dest := argv[3], argv[5]
				contents, ok := m.archives[archive]
				if !ok {
					return &aipage.ExecResult{ExitCode: 9, Stderr: "unzip: cannot find zipfile"}, nil
				}
				for name, content := range contents {
					m.files[path.Join(dest, name)] = content
				}
			case "rm":
				dir := argv[2]
				for name := range m.files {
					if strings.HasPrefix(name, dir+"/") {
						delete(m.files, name)
					}
				}
			}
			return &aipage.ExecResult{}, nil
		},
	}
}

func (m *memFS) list(dir string) ([]aipage.DirEntry, error) {
	prefix := ""
	if dir = path.Clean(dir); dir != "." {
		prefix = dir + "/"
	}

	seen := map[string]bool{}
	var entries []aipage.DirEntry
	for name := range m.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		entry := aipage.DirEntry{Name: rest}
		if i := strings.Index(rest, "/"); i >= 0 {
			entry = aipage.DirEntry{Name: rest[:i], IsDir: true}
		}
		if seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true
		entries = append(entries, entry)
	}
	if len(entries) == 0 && dir != "." {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "%s not found", dir)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// noFonts is a FontResolver that never finds any font links.
func noFonts() *mock.FontResolver {
	return &mock.FontResolver{
		ResolveFontImportsFn: func(string) string { return "" },
	}
}
