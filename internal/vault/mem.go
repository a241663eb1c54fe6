package vault

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Mem is an in-memory RecordStore for tests.
type Mem struct {
	Records map[string]*MemRecord
	// FailReads makes every read operation error, for storage-failure paths.
	FailReads bool
}

// MemRecord holds one in-memory record.
type MemRecord struct {
	Meta map[string]any
	Body string
}

// NewMem returns an empty in-memory vault.
func NewMem() *Mem {
	return &Mem{Records: make(map[string]*MemRecord)}
}

func (v *Mem) List(ctx context.Context, scope string) ([]string, error) {
	if v.FailReads {
		return nil, fmt.Errorf("mem vault: reads disabled")
	}
	var paths []string
	for p := range v.Records {
		if strings.HasPrefix(p, scope+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (v *Mem) ReadMeta(ctx context.Context, path string) (map[string]any, error) {
	if v.FailReads {
		return nil, fmt.Errorf("mem vault: reads disabled")
	}
	r, ok := v.Records[path]
	if !ok {
		return nil, fmt.Errorf("read %s: not found", path)
	}
	return r.Meta, nil
}

func (v *Mem) Create(ctx context.Context, path string, meta map[string]any, body string) error {
	if _, ok := v.Records[path]; ok {
		return fmt.Errorf("create %s: record exists", path)
	}
	v.Records[path] = &MemRecord{Meta: meta, Body: body}
	return nil
}

func (v *Mem) Append(ctx context.Context, path string, text string) error {
	r, ok := v.Records[path]
	if !ok {
		v.Records[path] = &MemRecord{Meta: map[string]any{}, Body: text}
		return nil
	}
	r.Body += text
	return nil
}

func (v *Mem) UpdateMeta(ctx context.Context, path string, fn func(meta map[string]any) error) error {
	r, ok := v.Records[path]
	if !ok {
		return fmt.Errorf("update %s: not found", path)
	}
	return fn(r.Meta)
}
