package game

import (
	"errors"
	"testing"
)

func TestCheckWindow(t *testing.T) {
	if err := CheckWindow(true); err != nil {
		t.Errorf("ready window: unexpected error %v", err)
	}
	if err := CheckWindow(false); !errors.Is(err, ErrWindowUnavailable) {
		t.Errorf("missing window: got %v, want ErrWindowUnavailable", err)
	}
}
