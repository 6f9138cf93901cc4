package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// TranslationAdapter loads translation tables from a source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FSAdapter loads every file in dir that the parser supports. Use it with
// embed.FS for built-in tables and os.DirFS for tables on disk.
type FSAdapter struct {
	fsys   fs.FS
	dir    string
	parser Parser
}

// NewFSAdapter returns nil when fsys or parser is nil.
func NewFSAdapter(fsys fs.FS, dir string, parser Parser) *FSAdapter {
	if fsys == nil || parser == nil {
		return nil
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir, parser: parser}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	all := make(map[string]map[string]any)
	for _, entry := range entries {
		if entry.IsDir() || !a.parser.SupportsFileExtension(path.Ext(entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrParsingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		tables, err := a.parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		merge(all, tables)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranslations, a.dir)
	}
	return all, nil
}

// MultiAdapter merges the tables of several adapters; later adapters
// override keys of earlier ones.
type MultiAdapter []TranslationAdapter

func (m MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	for _, adapter := range m {
		if adapter == nil {
			continue
		}
		tables, err := adapter.Load(ctx)
		if err != nil {
			return nil, err
		}
		merge(all, tables)
	}
	return all, nil
}

func merge(dst, src map[string]map[string]any) {
	for lang, table := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(table))
		}
		mergeTable(dst[lang], table)
	}
}

func mergeTable(dst, src map[string]any) {
	for key, val := range src {
		srcMap, srcIsMap := val.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeTable(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			copied := make(map[string]any, len(srcMap))
			mergeTable(copied, srcMap)
			dst[key] = copied
			continue
		}
		dst[key] = val
	}
}
