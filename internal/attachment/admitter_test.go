package attachment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quizhub/class-notifier/internal/domain"
)

// fileOfSize creates a sparse file of exactly size bytes and returns its path.
func fileOfSize(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packet.pdf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if err := f.Truncate(size); err != nil {
		t.Fatalf("truncate temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	return path
}

func TestAdmit_EmptyReference(t *testing.T) {
	a := NewAdmitter(DefaultMaxBytes)

	att, err := a.Admit("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.Kind != domain.AttachmentNone {
		t.Fatalf("expected AttachmentNone, got %v", att.Kind)
	}
}

func TestAdmit_RemoteReferences(t *testing.T) {
	a := NewAdmitter(DefaultMaxBytes)

	for _, url := range []string{
		"http://example.com/slides.pdf",
		"https://drive.example.com/d/abc123",
	} {
		att, err := a.Admit(url)
		if err != nil {
			t.Fatalf("Admit(%q): unexpected error: %v", url, err)
		}
		if att.Kind != domain.AttachmentRemote {
			t.Fatalf("Admit(%q): expected AttachmentRemote, got %v", url, att.Kind)
		}
		if att.URL != url {
			t.Fatalf("Admit(%q): expected URL preserved, got %q", url, att.URL)
		}
	}
}

func TestAdmit_LocalSizeBoundary(t *testing.T) {
	a := NewAdmitter(DefaultMaxBytes)

	// Exactly at the ceiling: admitted.
	atLimit := fileOfSize(t, DefaultMaxBytes)
	att, err := a.Admit(atLimit)
	if err != nil {
		t.Fatalf("file at ceiling should be admitted, got %v", err)
	}
	if att.Kind != domain.AttachmentLocal {
		t.Fatalf("expected AttachmentLocal, got %v", att.Kind)
	}
	if att.Size != DefaultMaxBytes {
		t.Fatalf("expected size %d, got %d", DefaultMaxBytes, att.Size)
	}

	// One byte over: rejected.
	overLimit := fileOfSize(t, DefaultMaxBytes+1)
	_, err = a.Admit(overLimit)
	if !errors.Is(err, domain.ErrAttachmentTooLarge) {
		t.Fatalf("expected ErrAttachmentTooLarge, got %v", err)
	}
}

func TestAdmit_LocalNotFound(t *testing.T) {
	a := NewAdmitter(DefaultMaxBytes)

	_, err := a.Admit(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	if !errors.Is(err, domain.ErrAttachmentNotFound) {
		t.Fatalf("expected ErrAttachmentNotFound, got %v", err)
	}
}

func TestAdmit_CustomCeiling(t *testing.T) {
	a := NewAdmitter(100)

	small := fileOfSize(t, 100)
	if _, err := a.Admit(small); err != nil {
		t.Fatalf("file at custom ceiling should be admitted, got %v", err)
	}

	big := fileOfSize(t, 101)
	if _, err := a.Admit(big); !errors.Is(err, domain.ErrAttachmentTooLarge) {
		t.Fatalf("expected ErrAttachmentTooLarge, got %v", err)
	}
}
