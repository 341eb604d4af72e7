package main

import (
	"fmt"
	"strings"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/internal/ui"
	"github.com/meikuraledutech/flow/palette"
	"github.com/spf13/cobra"
)

func paletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Browse node templates",
	}
	cmd.AddCommand(paletteListCmd(), paletteSearchCmd(), paletteShowCmd())
	return cmd
}

func paletteListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			if category != "" && !flow.Category(category).Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

			ui.Heading("node templates")
			for _, group := range catalog.Grouped() {
				if category != "" && group.Category != flow.Category(category) {
					continue
				}
				ui.Section.Printf("  %s (%d)\n", group.Category, len(group.Templates))
				ui.Table([]string{"ID", "Name", "AI", "Description"}, templateRows(group.Templates))
				fmt.Println()
			}
			fmt.Printf("  %d templates · `flowctl palette show <id>` for details\n", catalog.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list one category")
	return cmd
}

func paletteSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search templates by name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			results := catalog.Search(args[0])

			ui.Heading(fmt.Sprintf("search results for %q", args[0]))
			if len(results) == 0 {
				fmt.Println("  No templates found matching your query.")
				return nil
			}
			ui.Table([]string{"ID", "Name", "AI", "Description"}, templateRows(results))
			fmt.Printf("\n  %d results\n", len(results))
			return nil
		},
	}
}

func paletteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a template's settings and ports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			t, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			ui.Heading(t.DisplayName)
			fmt.Printf("  %s %s\n", ui.Muted.Sprint("id:      "), t.ID)
			fmt.Printf("  %s %s\n", ui.Muted.Sprint("category:"), t.Category)
			fmt.Printf("  %s %s\n", ui.Muted.Sprint("ai:      "), ui.Check(t.AICapable))
			if t.Description != "" {
				fmt.Printf("\n  %s\n", t.Description)
			}

			if len(t.DefaultSettings) > 0 {
				fmt.Println()
				ui.Section.Println("  Settings")
				var rows [][]string
				for _, s := range t.DefaultSettings {
					rows = append(rows, []string{s.Key, fmt.Sprint(s.Value)})
				}
				ui.Table([]string{"Key", "Default"}, rows)
			}

			ports := flow.ClassifyPorts(t.Category, t.AICapable)
			fmt.Println()
			ui.Section.Println("  Ports")
			var rows [][]string
			for _, p := range ports.Inputs {
				rows = append(rows, []string{"in", p.Name, string(p.Side), fmt.Sprintf("%.1f", p.Anchor), declaredType(t.InputPorts, p.Name)})
			}
			for _, p := range ports.Outputs {
				rows = append(rows, []string{"out", p.Name, string(p.Side), fmt.Sprintf("%.1f", p.Anchor), declaredType(t.OutputPorts, p.Name)})
			}
			ui.Table([]string{"Dir", "Name", "Side", "Anchor", "Type"}, rows)

			if findings := palette.Lint(t); len(findings) > 0 {
				fmt.Println()
				for _, f := range findings {
					ui.Warn.Printf("  ! %s\n", f)
				}
			}
			return nil
		},
	}
}

func templateRows(templates []flow.Template) [][]string {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		desc := t.Description
		if r := []rune(desc); len(r) > 45 {
			desc = string(r[:42]) + "..."
		}
		ai := ""
		if t.AICapable {
			ai = "yes"
		}
		rows = append(rows, []string{t.ID, t.DisplayName, ai, desc})
	}
	return rows
}

func declaredType(decls []flow.PortDecl, name string) string {
	for _, d := range decls {
		if strings.EqualFold(d.Name, name) {
			return d.DataType
		}
	}
	return ""
}
