package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGinMode(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "production", want: "release"},
		{env: "prod", want: "release"},
		{env: "test", want: "test"},
		{env: "development", want: "debug"},
		{env: "anything", want: "debug"},
		{env: "release", want: "release"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, GinMode(tt.env))
		})
	}
}
