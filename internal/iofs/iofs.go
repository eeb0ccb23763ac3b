// Package iofs prepares the directories and default files the engine
// needs on disk: the per-user config and log directories, and the
// output tree the reports are written into.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/raseique/MOSCA/pkg/config"
)

//go:embed mosca.yaml
var ConfigYAML string

// EnsureDirs creates the per-user config and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default mosca.yaml to the config
// directory unless one already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureOutputTree creates the areas of the output directory the
// reports are written into.
func EnsureOutputTree(outputDir string) error {
	dirs := []string{
		outputDir,
		filepath.Join(outputDir, "Quantification"),
		filepath.Join(outputDir, "Metaproteomics"),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}
