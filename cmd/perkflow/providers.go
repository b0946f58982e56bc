package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perkflow/perkflow/internal/cli"
)

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the provider catalogue",
		Long:  `Show every loyalty program in the active catalogue, its category, sender domains, and whether it participates in scans.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(cli.CoinIcon + " Provider Catalogue"))

			enabled := 0
			for _, rule := range cat.Rules() {
				status := cli.SuccessStyle.Render("enabled ")
				if !rule.Enabled {
					status = cli.SubtleStyle.Render("disabled")
				} else {
					enabled++
				}
				fmt.Printf("  %s  %-16s %-34s %-20s %s\n",
					status,
					rule.ID,
					rule.DisplayName,
					rule.Category,
					cli.SubtleStyle.Render(strings.Join(rule.SenderDomains, ", ")))
			}

			fmt.Println()
			fmt.Println(cli.FormatInfo(fmt.Sprintf("%d providers, %d enabled", cat.Len(), enabled)))
			return nil
		},
	}
}
