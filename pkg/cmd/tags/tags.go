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
package tags

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kb/internal/pathutil"
	"github.com/Paintersrp/kb/internal/repository"
	"github.com/Paintersrp/kb/internal/state"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	underline = color.New(color.Bold, color.Underline).SprintFunc()
)

func NewCmdTags(load func(context.Context) (*state.State, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags [tag]",
		Aliases: []string{"t"},
		Short:   "List tags, or the entries carrying one tag.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return showTag(cmd.OutOrStdout(), s.Repository, args[0])
			}
			showTagTable(cmd.OutOrStdout(), s.Repository)
			return nil
		},
	}

	return cmd
}

func showTagTable(w io.Writer, repo *repository.Repository) {
	index := repo.Tags()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("Tag"), bold("Entries"), bold("Titles"))
	for _, tag := range index.Tags() {
		titles := make([]string, 0, index.Count(tag))
		for _, e := range index.Entries(tag) {
			titles = append(titles, e.Title)
		}
		tbl.AddRow(tag, index.Count(tag), strings.Join(titles, ", "))
	}

	fmt.Fprintln(w, underline(state.StatusLine(repo.Stats())))
	fmt.Fprintln(w, tbl)
}

func showTag(w io.Writer, repo *repository.Repository, tag string) error {
	entries := repo.Tags().Entries(tag)
	if len(entries) == 0 {
		return fmt.Errorf("no entries tagged %q", tag)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Title"), bold("Path"))
	for _, e := range entries {
		path := e.Path
		if rel, err := pathutil.Relative(repo.Root(), e.Path); err == nil && pathutil.Within(repo.Root(), e.Path) {
			path = rel
		}
		tbl.AddRow(e.Title, path)
	}

	fmt.Fprintln(w, underline("#"+tag))
	fmt.Fprintln(w, tbl)
	return nil
}
