package storage

import (
	"testing"
	"time"

	"frameforge/internal/domain"
)

func TestWatchManifestSeesExternalSave(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}

	changed := make(chan struct{}, 1)
	mw, err := WatchManifest(root, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchManifest: %v", err)
	}
	defer mw.Close()

	// An external process saving the project is a temp-write plus rename;
	// Save does exactly that.
	ph.Project.Name = "External Edit"
	if err := Save(ph); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("no change notification within 5s")
	}
}

func TestWatchManifestIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	if _, err := InitProject(root, domain.Project{Name: "x", Stage: domain.DefaultStage()}); err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	changed := make(chan struct{}, 1)
	mw, err := WatchManifest(root, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("WatchManifest: %v", err)
	}
	defer mw.Close()

	if err := writeFileSync(root+"/notes.txt", []byte("hi")); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}
	select {
	case <-changed:
		t.Fatalf("unrelated file must not trigger the callback")
	case <-time.After(600 * time.Millisecond):
	}
}
