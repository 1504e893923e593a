package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// rawEnv mirrors the environment variables the installer reads.
// mapstructure falls back to case-insensitive key matching, which covers
// Windows spellings such as COMSPEC.
type rawEnv struct {
	InActivatedEnv string `mapstructure:"IN_ACTIVATED_ENV"`
	OSType         string `mapstructure:"OSTYPE"`
	ComSpec        string `mapstructure:"ComSpec"`
}

// DecodeEnv builds the guard snapshot from a variable map.
func DecodeEnv(vars map[string]string) (domain.Env, error) {
	var raw rawEnv
	if err := mapstructure.Decode(vars, &raw); err != nil {
		return domain.Env{}, fmt.Errorf("failed to decode environment: %w", err)
	}
	return domain.Env{
		InActivatedEnv: raw.InActivatedEnv == "1",
		OSType:         raw.OSType,
		ComSpec:        raw.ComSpec,
	}, nil
}

// EnvFromOS decodes the snapshot from the current process environment.
func EnvFromOS() (domain.Env, error) {
	return DecodeEnv(environMap(os.Environ()))
}

func environMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		// Windows keeps per-drive entries such as "=C:=C:\".
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}
