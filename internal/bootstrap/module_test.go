package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/fx"

	"explorer/internal/ports"
	"explorer/internal/usecase/explorer"
)

func TestModuleWiresService(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	dsn := "file:" + filepath.Join(dir, "explorer.sqlite") + "?_pragma=foreign_keys(1)"
	if err := os.WriteFile(path, []byte("database:\n  driver: sqlite\n  dsn: \""+dsn+"\"\nmetrics:\n  enabled: false\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var app *App
	var svc *explorer.Service
	var observer ports.Observer
	fxApp := fx.New(
		Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(
			fx.Annotate(
				func() string { return path },
				fx.ResultTags(`name:"configFile"`),
			),
		),
		fx.Populate(&app, &svc, &observer),
	)
	if err := fxApp.Start(context.Background()); err != nil {
		t.Fatalf("fx Start() error = %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	if app == nil || svc == nil {
		t.Fatalf("fx did not populate app and service")
	}
	if _, ok := observer.(ports.NopObserver); !ok {
		t.Fatalf("observer = %T, want NopObserver when metrics are disabled", observer)
	}
	if err := app.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}

	m, err := app.Migrator()
	if err != nil {
		t.Fatalf("Migrator() error = %v", err)
	}
	if err := m.Up(context.Background(), ""); err != nil {
		t.Fatalf("Up() error = %v", err)
	}
}
