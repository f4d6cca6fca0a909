package testutil

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunConcurrently(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")

	errs := RunConcurrently(t, 5, func(i int) error {
		calls.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})

	if got := calls.Load(); got != 5 {
		t.Fatalf("calls = %d, want 5", got)
	}
	for i, err := range errs {
		if i == 3 && !errors.Is(err, boom) {
			t.Fatalf("errs[3] = %v, want boom", err)
		}
		if i != 3 && err != nil {
			t.Fatalf("errs[%d] = %v, want nil", i, err)
		}
	}
}

func TestTestDBConfigDSN(t *testing.T) {
	t.Setenv("DB_SSL_MODE", "")
	cfg := TestDBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "edu"}
	if got, want := cfg.DSN(), "postgres://u:p@db:5432/edu?sslmode=disable"; got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}
