package internal

import (
	"testing"

	"github.com/Netflix/go-env"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", "/tmp/badger")
	t.Setenv("BLUGE_FILEPATH", "/tmp/bluge")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.Equal(8080, config.Port)
	req.Equal(TypingBackendBadger, config.TypingBackend)
	req.Nil(config.LimitMessages)
	req.NoError(config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "badger backend", config: Config{TypingBackend: TypingBackendBadger}},
		{name: "redis without url", config: Config{TypingBackend: TypingBackendRedis}, wantErr: true},
		{name: "redis with url", config: Config{TypingBackend: TypingBackendRedis, RedisURL: "redis://localhost:6379/0"}},
		{name: "unknown backend", config: Config{TypingBackend: "memcached"}, wantErr: true},
		{name: "zero limit", config: Config{TypingBackend: TypingBackendBadger, LimitMessages: lo.ToPtr(0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	_, err = CharacterRune("##")
	req.Error(err)
}
