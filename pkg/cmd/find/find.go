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
package find

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/kb/internal/fzf"
	"github.com/Paintersrp/kb/internal/state"
)

func NewCmdFind(load func(context.Context) (*state.State, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f"},
		Short:   "Fuzzy find an entry by title or tag and print its path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd.Context())
			if err != nil {
				return err
			}

			finder := fzf.NewFuzzyFinder(s.Repository.Entries(), "Find an entry")
			entry, err := finder.Find(strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), entry.Path)
			return nil
		},
	}

	return cmd
}
