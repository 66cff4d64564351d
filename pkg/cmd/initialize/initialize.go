/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/kb/internal/config"
	"github.com/Paintersrp/kb/internal/knowledge"
)

var errAborted = errors.New("initialization aborted")

var extensions = []string{"md", "txt", "org"}

func NewCmdInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i", "initialize"},
		Short:   "Write a configuration file interactively.",
		Long:    "Walks you through choosing data directories and an entry extension, then writes the configuration file.",
		Example: "kb init",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(viper.GetString("config"))
			if err != nil {
				return err
			}

			cfg, err := prompt(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.Path())
			return nil
		},
	}

	return cmd
}

func prompt(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		confirm := selection.New(fmt.Sprintf("%s already exists. Overwrite it?", path), []string{"No", "Yes"})
		confirm.Filter = nil
		choice, err := confirm.RunPrompt()
		if err != nil {
			return nil, err
		}
		if choice != "Yes" {
			return nil, errAborted
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	dirsInput := textinput.New("Data directories (comma separated, the first receives new entries):")
	dirsInput.InitialValue = filepath.Join(home, "kb")
	dirsInput.Validate = func(value string) error {
		if len(knowledge.ParseTags(value)) == 0 {
			return errors.New("at least one directory is required")
		}
		return nil
	}
	dirs, err := dirsInput.RunPrompt()
	if err != nil {
		return nil, err
	}

	extSelect := selection.New("Entry file extension:", extensions)
	extSelect.Filter = nil
	ext, err := extSelect.RunPrompt()
	if err != nil {
		return nil, err
	}

	return Write(path, home, dirs, ext)
}

// Write builds a configuration from the answers, saves it to path and
// creates the data directories.
func Write(path, home, dirs, ext string) (*config.Config, error) {
	cfg := config.Default(home)
	cfg.Extension = strings.TrimPrefix(strings.TrimSpace(ext), ".")

	for _, dir := range knowledge.ParseTags(dirs) {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return nil, err
		}
		cfg.DataDirectories = append(cfg.DataDirectories, filepath.Clean(expanded))
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	if err := config.EnsureDataDirectories(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
