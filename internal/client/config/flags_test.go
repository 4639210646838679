package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://h:1", "-i", "5", "-r", "30"},
			want: Config{ServerURL: "http://h:1", OnlineCheckInterval: 5 * time.Second, RequestTimeout: 30 * time.Second},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-x", "1", "-c", "some.json"},
			want: Config{ServerURL: "http://127.0.0.1:8080", OnlineCheckInterval: 3 * time.Second, RequestTimeout: 10 * time.Second},
		},
		{
			name:    "bad integer",
			args:    []string{"-r", "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()

			err := parseFlags(&c, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, c); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
