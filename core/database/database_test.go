package database

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "secret", Name: "specialty"}
	want := "user=bot password=secret host=db port=5432 dbname=specialty sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestConfigURL(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "specialty", SSLMode: "require"}
	want := "postgres://bot:p%40ss@db:5432/specialty?sslmode=require"
	if got := cfg.URL(); got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}

func TestMigrationsDirDefault(t *testing.T) {
	if got := (Config{}).migrationsDir(); got != DefaultMigrationsDir {
		t.Fatalf("migrationsDir() = %q", got)
	}
	if got := (Config{MigrationsDir: "/srv/migrations"}).migrationsDir(); got != "/srv/migrations" {
		t.Fatalf("migrationsDir() = %q", got)
	}
}

func TestUpFilesBetween(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_screen_index.up.sql",
		"000001_navigation_events.up.sql",
		"000001_navigation_events.down.sql",
		"notes.up.sql",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	want := []string{"000001_navigation_events.up.sql", "000002_screen_index.up.sql"}
	if got := upFilesBetween(dir, 0, 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("upFilesBetween(0, 2) = %v, want %v", got, want)
	}
	if got := upFilesBetween(dir, 1, 2); !reflect.DeepEqual(got, want[1:]) {
		t.Fatalf("upFilesBetween(1, 2) = %v", got)
	}
	if got := upFilesBetween(dir, 2, 2); len(got) != 0 {
		t.Fatalf("upFilesBetween(2, 2) = %v", got)
	}
}
