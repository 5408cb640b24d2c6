// Copyright (c) 2026 Kyradjis
// released under the MIT license

package chathost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kyradjis/bluelib/logger"
	"github.com/kyradjis/bluelib/markdown"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bluelib.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const baseConfig = `
host:
    name: testhost
    listen: "127.0.0.1:8097"

markdown:
    disabled-features: [spoiler]
    delimiters:
        bold:
            prefix: "!!"
            suffix: "!!"

logging:
    -
        method: stderr
        type: "* -bluelib.variant"
        level: info
`

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, baseConfig))
	if err != nil {
		t.Fatal(err)
	}
	if config.Host.Name != "testhost" {
		t.Errorf("host name: %s", config.Host.Name)
	}

	if len(config.Logging) != 1 {
		t.Fatalf("expected 1 logging config, got %d", len(config.Logging))
	}
	logConfig := config.Logging[0]
	if !logConfig.MethodStderr || logConfig.MethodStdout || logConfig.MethodFile {
		t.Errorf("bad logging methods: %+v", logConfig)
	}
	if logConfig.Level != logger.LogInfo {
		t.Errorf("bad logging level: %v", logConfig.Level)
	}
	if len(logConfig.Types) != 1 || logConfig.Types[0] != "*" {
		t.Errorf("bad logging types: %v", logConfig.Types)
	}
	if len(logConfig.ExcludedTypes) != 1 || logConfig.ExcludedTypes[0] != "bluelib.variant" {
		t.Errorf("bad excluded types: %v", logConfig.ExcludedTypes)
	}
}

func TestLoadConfigRejectsUnknownFeature(t *testing.T) {
	contents := `
host:
    listen: "127.0.0.1:8097"
markdown:
    disabled-features: [blink]
`
	if _, err := LoadConfig(writeConfig(t, contents)); err == nil {
		t.Error("expected error for unknown feature name")
	}
}

func TestLoadConfigRequiresListen(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "host:\n    name: x\n")); err == nil {
		t.Error("expected error for missing host.listen")
	}
}

func TestLoadConfigRequiresLoggerTypes(t *testing.T) {
	contents := `
host:
    listen: "127.0.0.1:8097"
logging:
    -
        method: stderr
        type: "-bluelib.variant"
        level: info
`
	if _, err := LoadConfig(writeConfig(t, contents)); err != ErrLoggerHasNoTypes {
		t.Errorf("expected ErrLoggerHasNoTypes, got %v", err)
	}
}

func TestApplyMarkdown(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, baseConfig))
	if err != nil {
		t.Fatal(err)
	}
	pipeline := markdown.NewPipeline(logger.NewDefault(logger.LogError))
	config.ApplyMarkdown(pipeline)

	if enabled, _ := pipeline.FeatureEnabled(markdown.FeatureSpoiler); enabled {
		t.Error("spoiler should be disabled")
	}
	if enabled, _ := pipeline.FeatureEnabled(markdown.FeatureBold); !enabled {
		t.Error("bold should be enabled")
	}
	if prefix, _ := pipeline.Prefix(markdown.FeatureBold); prefix != "!!" {
		t.Errorf("bold prefix: %q", prefix)
	}

	styled := pipeline.FormatString("!!loud!!")
	if len(styled.Children) != 1 || !styled.Children[0].Style.Bold {
		t.Errorf("delimiter override did not take: %#v", styled)
	}
}
