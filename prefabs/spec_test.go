package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player spec: %v", err)
	}
	if player.Locomotion.Speed <= 0 || player.Teleport.Range <= 0 || player.Carry.Radius <= 0 {
		t.Fatalf("player spec is missing tuning: %+v", player)
	}
	if player.Teleport.ActivationThreshold <= 0 || player.Teleport.ActivationThreshold > 1 {
		t.Fatalf("activation threshold %v out of (0, 1]", player.Teleport.ActivationThreshold)
	}

	pickup, err := LoadPickupSpec()
	if err != nil {
		t.Fatalf("pickup spec: %v", err)
	}
	if pickup.Collider.Width <= 0 || pickup.Collider.Height <= 0 {
		t.Fatalf("pickup collider is empty: %+v", pickup.Collider)
	}

	arena, err := LoadArenaSpec()
	if err != nil {
		t.Fatalf("arena spec: %v", err)
	}
	if arena.Session.Duration != 60 {
		t.Fatalf("session duration %v, want 60", arena.Session.Duration)
	}
	if len(arena.SpawnAreas) == 0 || arena.SpawnAreas[0].Count <= 0 {
		t.Fatalf("arena has no boxes to spawn")
	}
	if got := arena.DropArea.Color.NRGBA(color.NRGBA{}); got.A != 0x80 {
		t.Fatalf("drop area alpha %#x, want 0x80", got.A)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if _, ok := ModTime("pickup.yaml"); ok {
		t.Fatalf("no disk file yet")
	}
	if err := os.WriteFile(filepath.Join(dir, "pickup.yaml"), []byte("name: Crate\ngravity: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []string{"pickup.yaml", "prefabs/pickup.yaml"}
	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadSpec[PickupSpec](name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name != "Crate" || spec.Gravity != 3 {
				t.Fatalf("expected the disk override, got %+v", spec)
			}
		})
	}
	if _, ok := ModTime("pickup.yaml"); !ok {
		t.Fatalf("expected a mod time for the disk file")
	}

	// Files missing on disk still come from the embedded set.
	if _, err := LoadPlayerSpec(); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
	if _, err := LoadSpec[PickupSpec]("missing.yaml"); err == nil {
		t.Fatalf("expected an error for an unknown spec")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `c: "#33d17a"`, color.NRGBA{R: 0x33, G: 0xd1, B: 0x7a, A: 0xff}, false},
		{"rgba", `c: "#f6d32d80"`, color.NRGBA{R: 0xf6, G: 0xd3, B: 0x2d, A: 0x80}, false},
		{"no_hash", `c: "ffffff"`, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"short", `c: "#fff"`, color.NRGBA{}, true},
		{"not_hex", `c: "#zzzzzz"`, color.NRGBA{}, true},
		{"not_scalar", "c: [1, 2, 3]", color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var doc struct {
				C YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte(c.src), &doc)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := doc.C.NRGBA(color.NRGBA{}); got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}

	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	if got := (YAMLColor{}).NRGBA(fallback); got != fallback {
		t.Fatalf("unset color should use the fallback, got %v", got)
	}
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "arena.yaml"), []byte("name: Arena\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var got []string
	deadline := time.Now().Add(2 * time.Second)
	for len(got) == 0 && time.Now().Before(deadline) {
		got = w.Drain()
		time.Sleep(10 * time.Millisecond)
	}
	if len(got) != 1 || got[0] != "arena.yaml" {
		t.Fatalf("expected arena.yaml, got %v", got)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for range w.Events {
		// Close waits for the run loop, so this only drains what was buffered.
	}
	if names := w.Drain(); len(names) != 0 {
		t.Fatalf("drain after close returned %v", names)
	}
}

func TestNilWatcher(t *testing.T) {
	var w *Watcher
	if w.Drain() != nil || w.Close() != nil {
		t.Fatalf("nil watcher should be inert")
	}
}
