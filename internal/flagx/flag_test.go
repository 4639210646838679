package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var configFlags = []string{"-c", "-config"}

func TestFilterArgs(t *testing.T) {
	tests := map[string]struct {
		args    []string
		allowed []string
		want    []string
	}{
		"separate value": {
			args: []string{"-c", "conf.json", "-a", "localhost"},
			want: []string{"-c", "conf.json"},
		},
		"equals form": {
			args: []string{"-config=alt.json", "-a", "localhost"},
			want: []string{"-config=alt.json"},
		},
		"equals form with empty value": {
			args: []string{"-c=", "-a", "localhost"},
			want: []string{"-c="},
		},
		"value containing equals is kept whole": {
			args: []string{"-c=dir=a/conf.json"},
			want: []string{"-c=dir=a/conf.json"},
		},
		"value starting with dash in equals form": {
			args: []string{"-config=-weird.json"},
			want: []string{"-config=-weird.json"},
		},
		"unknown equals form is dropped": {
			args: []string{"-other=x", "-cc=conf.json", "--c=conf.json"},
			want: []string{},
		},
		"unknown flags and positionals are dropped": {
			args: []string{"-x", "1", "positional", "-verbose"},
			want: []string{},
		},
		"order is preserved across forms": {
			args: []string{"-config=first.json", "-x", "1", "-c", "second.json"},
			want: []string{"-config=first.json", "-c", "second.json"},
		},
		"trailing flag without value": {
			args: []string{"-a", "x", "-c"},
			want: []string{"-c"},
		},
		"dash argument is not taken as value": {
			args: []string{"-c", "-config=alt.json"},
			want: []string{"-c", "-config=alt.json"},
		},
		"other allowed set": {
			args:    []string{"-a", "localhost:8080", "-c", "conf.json"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:8080"},
		},
		"nil args": {
			want: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			allowed := tt.allowed
			if allowed == nil {
				allowed = configFlags
			}
			got := FilterArgs(tt.args, allowed)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := map[string]struct {
		args []string
		env  string
		want string
	}{
		"short flag":                    {args: []string{"-c", "/path/short.json"}, want: "/path/short.json"},
		"long flag":                     {args: []string{"-config", "/path/long.json"}, want: "/path/long.json"},
		"equals form":                   {args: []string{"-config=/path/eq.json"}, want: "/path/eq.json"},
		"last flag wins":                {args: []string{"-c", "/path/1.json", "-config=/path/2.json"}, want: "/path/2.json"},
		"nothing given":                 {args: []string{"-x", "1"}},
		"environment fallback":          {args: []string{"-a", ":8080"}, env: "/etc/userkeeper.json", want: "/etc/userkeeper.json"},
		"flag beats environment":        {args: []string{"-c", "/tmp/local.json"}, env: "/etc/userkeeper.json", want: "/tmp/local.json"},
		"equals form beats environment": {args: []string{"-c=/tmp/local.json"}, env: "/etc/userkeeper.json", want: "/tmp/local.json"},
		"empty flag value uses environment": {
			args: []string{"-c="},
			env:  "/etc/userkeeper.json",
			want: "/etc/userkeeper.json",
		},
		"trailing flag uses environment": {
			args: []string{"-c"},
			env:  "/etc/userkeeper.json",
			want: "/etc/userkeeper.json",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(ConfigEnvVar, tt.env)
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
