package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
data_dir = %q
output_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "out"), filepath.Join(base, "logs"))

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeCPLFile(t *testing.T, dir, name, uuid, title string, encrypted bool) string {
	t.Helper()

	encryptedTag := ""
	if encrypted {
		encryptedTag = "<KeyId>urn:uuid:key-1</KeyId>"
	}
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<CompositionPlaylist>
  <Id>%s</Id>
  <ContentTitleText>%s</ContentTitleText>
  <EditRate>24 1</EditRate>
  %s
  <ReelList>
    <Reel>
      <Id>%s-reel-1</Id>
      <AssetList>
        <Id>%s-asset-1</Id>
      </AssetList>
    </Reel>
  </ReelList>
</CompositionPlaylist>
`, uuid, title, encryptedTag, uuid, uuid)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write cpl %s: %v", name, err)
	}
	return path
}
