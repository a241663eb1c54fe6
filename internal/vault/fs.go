package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// FS is a filesystem-backed RecordStore: every record is a markdown
// file with a YAML frontmatter block between --- delimiters.
type FS struct {
	root string
}

// NewFS opens a vault rooted at dir, creating it if needed.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vault root: %w", err)
	}
	return &FS{root: dir}, nil
}

// Root returns the vault's root directory.
func (v *FS) Root() string {
	return v.root
}

func (v *FS) abs(path string) string {
	return filepath.Join(v.root, filepath.FromSlash(path))
}

// List enumerates .md record paths directly under scope, sorted.
func (v *FS) List(ctx context.Context, scope string) ([]string, error) {
	entries, err := os.ReadDir(v.abs(scope))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", scope, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		paths = append(paths, scope+"/"+e.Name())
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadMeta parses the frontmatter of the record at path without
// interpreting the body.
func (v *FS) ReadMeta(ctx context.Context, path string) (map[string]any, error) {
	raw, err := os.ReadFile(v.abs(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	meta, _, err := splitFrontmatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return meta, nil
}

// Create writes a new record. Fails if a record already exists at path.
func (v *FS) Create(ctx context.Context, path string, meta map[string]any, body string) error {
	abs := v.abs(path)
	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("create %s: record exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	content, err := renderRecord(meta, body)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

// Append adds text to the end of the record's body, creating a record
// with empty frontmatter if none exists.
func (v *FS) Append(ctx context.Context, path string, text string) error {
	abs := v.abs(path)
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if err := v.Create(ctx, path, map[string]any{}, text); err != nil {
			return err
		}
		return nil
	}
	f, err := os.OpenFile(abs, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

// UpdateMeta applies fn to the record's frontmatter and rewrites the
// file, preserving the body. The write is skipped when fn errors.
func (v *FS) UpdateMeta(ctx context.Context, path string, fn func(meta map[string]any) error) error {
	abs := v.abs(path)
	raw, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	meta, body, err := splitFrontmatter(string(raw))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	if err := fn(meta); err != nil {
		return err
	}
	content, err := renderRecord(meta, body)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

// splitFrontmatter separates a record into parsed frontmatter and body.
// Records without a frontmatter block parse as (nil, whole-text).
func splitFrontmatter(raw string) (map[string]any, string, error) {
	if !strings.HasPrefix(raw, frontmatterDelim+"\n") {
		return nil, raw, nil
	}
	rest := raw[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return nil, "", fmt.Errorf("unterminated frontmatter")
	}
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return nil, "", fmt.Errorf("frontmatter yaml: %w", err)
	}
	body := rest[end+1+len(frontmatterDelim):]
	body = strings.TrimPrefix(body, "\n")
	return meta, body, nil
}

// renderRecord serializes frontmatter + body into file content.
func renderRecord(meta map[string]any, body string) (string, error) {
	var sb strings.Builder
	sb.WriteString(frontmatterDelim + "\n")
	b, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	sb.Write(b)
	sb.WriteString(frontmatterDelim + "\n")
	sb.WriteString(body)
	return sb.String(), nil
}
