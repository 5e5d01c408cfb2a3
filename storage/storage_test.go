package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"snakes_server/logic"
)

func TestSQLiteStoreProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id, err := store.LoadStage()
	if err != nil || id != 0 {
		t.Fatalf("LoadStage on a fresh db = %d, %v; want 0, nil", id, err)
	}

	for _, stage := range []int{1, 3} {
		if err := store.SaveStage(stage); err != nil {
			t.Fatalf("SaveStage(%d): %v", stage, err)
		}
	}
	if id, err := store.LoadStage(); err != nil || id != 3 {
		t.Fatalf("LoadStage = %d, %v; want 3", id, err)
	}
	store.Close()

	// survives a reopen
	store, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if id, err := store.LoadStage(); err != nil || id != 3 {
		t.Fatalf("LoadStage after reopen = %d, %v; want 3", id, err)
	}

	var rows int
	if err := store.DB.QueryRow("SELECT COUNT(*) FROM progress").Scan(&rows); err != nil || rows != 1 {
		t.Errorf("progress rows = %d, %v; want a single row", rows, err)
	}
}

func TestSQLiteStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.SaveStage(2); err != nil {
		t.Fatal(err)
	}
	if id, _ := store.LoadStage(); id != 2 {
		t.Errorf("LoadStage = %d, want 2", id)
	}
}

func TestDirLayouts(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"stage_0.txt": "###\r\n#1#\r\n###\r\n\r\n",
		"stage_1.txt": "#*#\n",
		"stage_3.txt": "#\n", // after a gap, never reached
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	layouts := NewDirLayouts(dir)
	if layouts.Count() != 2 {
		t.Fatalf("Count = %d, want 2", layouts.Count())
	}

	lines, err := layouts.Layout(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"###", "#1#", "###"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	stage, err := logic.LoadStage(layouts, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(stage.SnackMarkers) != 1 {
		t.Errorf("snack markers = %v", stage.SnackMarkers)
	}

	if _, err := layouts.Layout(2); errors.Cause(err) != logic.ErrContent {
		t.Errorf("Layout(2) = %v, want a content error", err)
	}
}

func TestDirLayoutsDrivesEngine(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stage_0.txt"), []byte("#1*#\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := Open(filepath.Join(dir, "p.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cfg := logic.DefaultGameConfig()
	e, err := logic.NewEngine(&cfg, NewDirLayouts(dir), store, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Tick(0.001); err != nil {
		t.Fatal(err)
	}
	if e.Mode() != logic.ModeSetup || e.Stage().Width != 4 {
		t.Fatalf("mode = %s, stage = %+v", e.Mode(), e.Stage())
	}
}

func TestShippedStageLayouts(t *testing.T) {
	layouts := NewDirLayouts("../assets/stage_layouts")
	if layouts.Count() == 0 {
		t.Fatal("no stage layouts shipped")
	}
	for id := 0; id < layouts.Count(); id++ {
		stage, err := logic.LoadStage(layouts, id, logic.MaxSnakes)
		if err != nil {
			t.Errorf("stage %d: %v", id, err)
			continue
		}
		if len(stage.SpawnPoints) == 0 {
			t.Errorf("stage %d has no spawn points", id)
		}
	}
}
