package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the available role profiles",
	Run: func(cmd *cobra.Command, _ []string) {
		config, err := getConfig()
		if err != nil {
			log.Fatalf("getting a config: %v", err)
		}

		catalog, err := loadCatalog(config)
		if err != nil {
			log.Fatalf("loading role profiles: %v", err)
		}

		if viper.GetBool("json") {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(catalog.List()); err != nil {
				log.Fatalf("writing roles: %v", err)
			}
			return
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKEYWORDS")
		for _, role := range catalog.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", role.ID, role.Name, strings.Join(role.Keywords, ", "))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
