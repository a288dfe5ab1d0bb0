package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

// BenchmarkSave measures a full profile write with a long reading history
func BenchmarkSave(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "profiles.db"))
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
	}()

	p := sampleProfile()
	for i := range 2000 {
		p.ReadParagraphs = append(p.ReadParagraphs, fmt.Sprintf("ep%d-%d", i/100, i%100))
	}
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if err := store.Save(ctx, &p); err != nil {
			b.Fatalf("save failed: %v", err)
		}
	}
}

// BenchmarkGet measures loading a profile with a long reading history
func BenchmarkGet(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "profiles.db"))
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	p := sampleProfile()
	for i := range 2000 {
		p.ReadParagraphs = append(p.ReadParagraphs, fmt.Sprintf("ep%d-%d", i/100, i%100))
	}
	ctx := context.Background()
	if err := store.Save(ctx, &p); err != nil {
		b.Fatalf("save failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := store.Get(ctx, p.Name); err != nil {
			b.Fatalf("get failed: %v", err)
		}
	}
}
