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
package add

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kb/internal/knowledge"
	"github.com/Paintersrp/kb/internal/state"
	"github.com/Paintersrp/kb/pkg/shared/arg"
	"github.com/Paintersrp/kb/pkg/shared/flags"
)

func NewCmdAdd(load func(context.Context) (*state.State, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [title] [tags] [content...]",
		Aliases: []string{"a", "new"},
		Short:   "Create a new entry without opening the browser.",
		Long: heredoc.Doc(`
			Creates a new entry in the first data directory. Tags are a comma
			separated list; everything after them becomes the body.

			An entry with the same title must not exist yet.
		`),
		Example: heredoc.Doc(`
			kb add "Go channels" "go, concurrency" "Unbuffered sends block."
			kb add "Meeting notes" work --paste
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd.Context())
			if err != nil {
				return err
			}
			return run(cmd, s, args)
		},
	}

	flags.AddPaste(cmd)
	flags.AddDescription(cmd, "One line description stored with the entry.")
	return cmd
}

func run(cmd *cobra.Command, s *state.State, args []string) error {
	title, err := arg.HandleTitle(args)
	if err != nil {
		return err
	}

	description, err := flags.HandleDescription(cmd)
	if err != nil {
		return err
	}

	content := arg.HandleContent(args)
	pasted, err := flags.HandlePaste(cmd)
	if err != nil {
		return err
	}
	if pasted != "" {
		content = strings.TrimLeft(strings.Join([]string{content, pasted}, "\n"), "\n")
	}

	entry := knowledge.Entry{
		Title:       title,
		Description: description,
		Tags:        arg.HandleTags(args),
		Text:        content,
	}

	path, err := s.Repository.Create(entry)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
