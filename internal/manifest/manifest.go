// Package manifest assembles the raw document set the resource center
// serves: a fixed, ordered mapping of (content group, slug) to markdown
// source text. The default set is compiled into the binary; FromDir supports
// authoring against a live directory.
package manifest

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one raw document in the manifest.
type Entry struct {
	Group string // plural content group: articles, podcasts, offers
	Slug  string
	Raw   string
}

// Groups lists the content groups in serving order.
var Groups = []string{"articles", "podcasts", "offers"}

//go:embed docs
var docsFS embed.FS

// Embedded returns the compiled-in document set. Entries are ordered by
// group, then by file name within a group, so repeated calls produce the
// same insertion order.
func Embedded() []Entry {
	entries, err := fromFS(docsFS, "docs")
	if err != nil {
		// The embedded tree is fixed at build time; a read failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("manifest: embedded docs unreadable: %v", err))
	}
	return entries
}

// FromDir reads a document set from a directory laid out like the embedded
// one: <root>/<group>/<slug>.md. Groups without a directory are skipped.
func FromDir(root string) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", root)
	}
	return fromFS(os.DirFS(root), ".")
}

func fromFS(fsys fs.FS, root string) ([]Entry, error) {
	var entries []Entry
	for _, group := range Groups {
		dir := filepath.ToSlash(filepath.Join(root, group))
		files, err := fs.ReadDir(fsys, dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read group %s: %w", group, err)
		}

		var names []string
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
				continue
			}
			names = append(names, f.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			raw, err := fs.ReadFile(fsys, dir+"/"+name)
			if err != nil {
				return nil, fmt.Errorf("read %s/%s: %w", group, name, err)
			}
			entries = append(entries, Entry{
				Group: group,
				Slug:  strings.TrimSuffix(name, ".md"),
				Raw:   string(raw),
			})
		}
	}
	return entries, nil
}
