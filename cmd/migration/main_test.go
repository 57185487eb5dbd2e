package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one", want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "garbage", args: []string{"x"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got %d err=%v, want %d", got, err, tc.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1792368004"); err != nil || v != 1792368004 {
		t.Fatalf("parse version: %d %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version error")
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected negative target error")
	}
}

func TestResolveMigrationsDir_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	if err := run(nil, "up", nil); err == nil {
		t.Fatalf("expected DB_URL error")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SOCCERNOW_TEST_FLAG", "Yes")
	if !envBool("SOCCERNOW_TEST_FLAG") {
		t.Fatalf("expected true")
	}
	_ = os.Unsetenv("SOCCERNOW_TEST_FLAG")
	if envBool("SOCCERNOW_TEST_FLAG") {
		t.Fatalf("expected false when unset")
	}
}
