// ABOUTME: Tests for platform browser launcher selection
// ABOUTME: Does not start a real browser

package browser

import (
	"reflect"
	"testing"
)

func TestCommand(t *testing.T) {
	const url = "https://example.com/auth/login"
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{url}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
		{"linux", "xdg-open", []string{url}},
		{"freebsd", "xdg-open", []string{url}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := command(tt.goos, url)
			if name != tt.wantName {
				t.Errorf("expected %s, got %s", tt.wantName, name)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, args)
			}
		})
	}
}
