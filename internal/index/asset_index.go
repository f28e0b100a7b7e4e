package index

import (
	"Reelhouse/internal/helpers"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Index caches the home directory of every category found by one walk of a
// project tree. It never rescans on its own: lookups after the tree changed
// return what the last Scan saw.
type Index struct {
	Root      string
	homes     map[string]string
	bySig     map[string]string
	scannedAt time.Time
}

// Scan walks root down to the deepest category signature and records, for
// each category, the first directory at that exact relative path that
// qualifies as a home: an asset home's first child starts with the reserved
// marker, a shot home's first child starts with scenePrefix.
func Scan(root string, categories Categories, scenePrefix string) (*Index, error) {
	idx := &Index{
		Root:  root,
		homes: map[string]string{},
		bySig: map[string]string{},
	}
	bySignature := make(map[string][]Category, len(categories))
	for _, c := range categories {
		bySignature[c.Signature()] = append(bySignature[c.Signature()], c)
	}
	maxDepth := categories.MaxDepth()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if helpers.IsHiddenChild(d.Name()) {
			return filepath.SkipDir
		}
		segments := helpers.RelativeSegments(root, path)
		if candidates, ok := bySignature[signature(segments)]; ok {
			if err := idx.classify(path, candidates, scenePrefix); err != nil {
				return err
			}
		}
		if len(segments) >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	idx.scannedAt = time.Now()
	return idx, nil
}

func (i *Index) classify(path string, candidates []Category, scenePrefix string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	first := ""
	if len(entries) > 0 {
		first = entries[0].Name()
	}
	for _, c := range candidates {
		if _, seen := i.homes[c.Key]; seen {
			continue
		}
		switch {
		case c.Anchored:
		case first == "":
			continue
		case c.Kind == KindAsset && !helpers.IsReserved(first):
			continue
		case c.Kind == KindShot && !strings.HasPrefix(first, scenePrefix):
			continue
		}
		i.homes[c.Key] = path
		if _, ok := i.bySig[c.Signature()]; !ok {
			i.bySig[c.Signature()] = path
		}
	}
	return nil
}

// Lookup returns the home of the category with key. A nil index knows nothing.
func (i *Index) Lookup(key string) (string, bool) {
	if i == nil {
		return "", false
	}
	path, ok := i.homes[key]
	return path, ok
}

// LookupSegments returns the home recorded for the relative path segments.
func (i *Index) LookupSegments(segments ...string) (string, bool) {
	if i == nil {
		return "", false
	}
	path, ok := i.bySig[signature(segments)]
	return path, ok
}

// Homes returns a copy of the category key to directory map.
func (i *Index) Homes() map[string]string {
	out := map[string]string{}
	if i == nil {
		return out
	}
	for k, v := range i.homes {
		out[k] = v
	}
	return out
}

// HomesOf returns the homes of the given categories in category order,
// skipping categories that were not found.
func (i *Index) HomesOf(categories Categories) []string {
	var out []string
	for _, c := range categories {
		if path, ok := i.Lookup(c.Key); ok {
			out = append(out, path)
		}
	}
	return out
}

func (i *Index) ScannedAt() time.Time {
	if i == nil {
		return time.Time{}
	}
	return i.scannedAt
}

// CategoryOf returns the key of the category whose home is path or its
// closest ancestor.
func (i *Index) CategoryOf(path string) (string, bool) {
	if i == nil {
		return "", false
	}
	best, bestLen := "", -1
	for key, home := range i.homes {
		if path != home && !strings.HasPrefix(path, home+string(filepath.Separator)) {
			continue
		}
		if len(home) > bestLen || (len(home) == bestLen && key < best) {
			best, bestLen = key, len(home)
		}
	}
	return best, bestLen >= 0
}
