package daemon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"linux", []string{"ExecStart=/opt/unitconv daemon --daemon-socket /run/uc.sock --config /etc/uc.json", "ExecReload=/bin/kill -HUP $MAINPID"}},
		{"darwin", []string{"<string>/opt/unitconv</string>", "<string>/run/uc.sock</string>", "<string>" + launchAgentLabel + "</string>"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			s := Service{GOOS: tt.goos, ExePath: "/opt/unitconv", SocketPath: "/run/uc.sock", ConfigPath: "/etc/uc.json"}
			out, err := s.Render()
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("rendered file misses %q:\n%s", w, out)
				}
			}
			if strings.Contains(out, "/path/to/") {
				t.Errorf("placeholder left in rendered file:\n%s", out)
			}
		})
	}

	if _, err := (Service{GOOS: "plan9"}).Render(); err == nil {
		t.Error("unsupported platform should fail")
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "systemd", "user")
	s := Service{GOOS: "linux", ExePath: "/opt/unitconv", SocketPath: "/run/uc.sock", ConfigPath: "/etc/uc.json", Dir: dir}

	path, err := s.WriteFile()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, systemdUnitName) {
		t.Fatalf("path = %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "[Unit]") {
		t.Fatalf("unexpected content:\n%s", b)
	}
}
