package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestVault(t *testing.T) *FS {
	t.Helper()
	v, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("open test vault: %v", err)
	}
	return v
}

func TestFS_CreateAndReadMeta(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	meta := map[string]any{"lossId": "loss_20260314_150926", "impact": 4}
	if err := v.Create(ctx, "Losses/loss_20260314_150926.md", meta, "## What happened\n"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := v.ReadMeta(ctx, "Losses/loss_20260314_150926.md")
	if err != nil {
		t.Fatalf("ReadMeta: %v", err)
	}
	if got["lossId"] != "loss_20260314_150926" {
		t.Errorf("lossId = %v", got["lossId"])
	}
	if got["impact"] != 4 {
		t.Errorf("impact = %v (%T), want 4", got["impact"], got["impact"])
	}
}

func TestFS_CreateRefusesOverwrite(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	if err := v.Create(ctx, "Losses/a.md", map[string]any{}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := v.Create(ctx, "Losses/a.md", map[string]any{}, ""); err == nil {
		t.Error("second Create should fail")
	}
}

func TestFS_List(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	for _, name := range []string{"b.md", "a.md", "c.md"} {
		if err := v.Create(ctx, "Losses/"+name, map[string]any{}, ""); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	// A non-record file is ignored.
	if err := os.WriteFile(filepath.Join(v.Root(), "Losses", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := v.List(ctx, "Losses")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Losses/a.md", "Losses/b.md", "Losses/c.md"}
	if len(paths) != len(want) {
		t.Fatalf("List = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestFS_ListMissingScope(t *testing.T) {
	v := openTestVault(t)
	paths, err := v.List(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List = %v, want empty", paths)
	}
}

func TestFS_Append(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	// Appending to a missing record creates it.
	if err := v.Append(ctx, "Codex/codex.md", "- Always timebox MCQs\n"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := v.Append(ctx, "Codex/codex.md", "- Read the question twice\n"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(v.Root(), "Codex", "codex.md"))
	if err != nil {
		t.Fatal(err)
	}
	_, body, err := splitFrontmatter(string(raw))
	if err != nil {
		t.Fatal(err)
	}
	if body != "- Always timebox MCQs\n- Read the question twice\n" {
		t.Errorf("body = %q", body)
	}
}

func TestFS_UpdateMetaPreservesBody(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	if err := v.Create(ctx, "Topics/Polity.md", map[string]any{"status": "fresh"}, "Notes on Polity.\n"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := v.UpdateMeta(ctx, "Topics/Polity.md", func(meta map[string]any) error {
		meta["status"] = "wilted"
		meta["tags"] = []string{"unstable"}
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateMeta: %v", err)
	}

	meta, err := v.ReadMeta(ctx, "Topics/Polity.md")
	if err != nil {
		t.Fatalf("ReadMeta: %v", err)
	}
	if meta["status"] != "wilted" {
		t.Errorf("status = %v, want wilted", meta["status"])
	}

	raw, _ := os.ReadFile(filepath.Join(v.Root(), "Topics", "Polity.md"))
	_, body, _ := splitFrontmatter(string(raw))
	if body != "Notes on Polity.\n" {
		t.Errorf("body = %q, want preserved", body)
	}
}

func TestFS_UpdateMetaAbortsOnError(t *testing.T) {
	v := openTestVault(t)
	ctx := context.Background()

	if err := v.Create(ctx, "Topics/Polity.md", map[string]any{"status": "fresh"}, ""); err != nil {
		t.Fatal(err)
	}
	err := v.UpdateMeta(ctx, "Topics/Polity.md", func(meta map[string]any) error {
		meta["status"] = "wilted"
		return os.ErrInvalid
	})
	if err == nil {
		t.Fatal("UpdateMeta should propagate fn error")
	}
	meta, _ := v.ReadMeta(ctx, "Topics/Polity.md")
	if meta["status"] != "fresh" {
		t.Errorf("status = %v, want unchanged fresh", meta["status"])
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantMeta bool
		wantBody string
		wantErr  bool
	}{
		{"no frontmatter", "just text\n", false, "just text\n", false},
		{"normal", "---\nk: v\n---\nbody\n", true, "body\n", false},
		{"empty body", "---\nk: v\n---\n", true, "", false},
		{"unterminated", "---\nk: v\n", false, "", true},
		{"bad yaml", "---\n: : :\n---\n", false, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := splitFrontmatter(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if (meta != nil) != tt.wantMeta {
				t.Errorf("meta = %v, wantMeta = %v", meta, tt.wantMeta)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}
