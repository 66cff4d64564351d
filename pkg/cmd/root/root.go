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
package root

import (
	"context"
	"errors"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Paintersrp/kb/internal/constants"
	"github.com/Paintersrp/kb/internal/state"
	"github.com/Paintersrp/kb/internal/tui/notes"
	"github.com/Paintersrp/kb/pkg/cmd/add"
	"github.com/Paintersrp/kb/pkg/cmd/find"
	"github.com/Paintersrp/kb/pkg/cmd/initialize"
	"github.com/Paintersrp/kb/pkg/cmd/tags"
)

var errNoTerminal = errors.New("the browser needs an interactive terminal")

// Loader returns the application state, loading it on first use.
type Loader = func(ctx context.Context) (*state.State, error)

// Execute runs the command line and releases the state afterwards.
func Execute(ctx context.Context) error {
	var s *state.State
	load := func(ctx context.Context) (*state.State, error) {
		if s != nil {
			return s, nil
		}
		loaded, err := state.NewState(ctx, viper.GetString("config"))
		if err != nil {
			return nil, err
		}
		s = loaded
		return s, nil
	}

	err := NewCmdRoot(load).ExecuteContext(ctx)
	return errors.Join(err, s.Close())
}

func NewCmdRoot(load Loader) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "kb",
		Short:   "Browse, tag and edit plain-text knowledge entries.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			kb keeps a collection of knowledge entries as plain files, one entry per
			file, and lets you browse and edit them from the terminal.

			Run without a command to open the browser:

			  j/k   move          l/enter  open         h  back
			  a     add entry     e        edit entry   D  delete
			  y     copy path     r        refresh      q  quit

			Inside the editor tab moves between title, tags and body, ctrl+g saves
			and esc discards.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNoTerminal
			}

			s, err := load(cmd.Context())
			if err != nil {
				return err
			}
			return notes.Run(s)
		},
	}

	cmd.PersistentFlags().
		StringVar(&configPath, "config", "", "config file (default is $HOME/.kb/config.yaml)")
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))

	cmd.AddCommand(
		add.NewCmdAdd(load),
		tags.NewCmdTags(load),
		find.NewCmdFind(load),
		initialize.NewCmdInit(),
	)

	return cmd
}
