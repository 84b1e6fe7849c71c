package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	s := String()
	if !strings.HasPrefix(s, "1.2.3 (") {
		t.Errorf("String() = %q", s)
	}
	if f := Fields(); len(f) != 6 || f[1] != "1.2.3" {
		t.Errorf("Fields() = %v", f)
	}
}
