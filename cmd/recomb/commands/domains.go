/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: domains.go
Description: Listing commands for registered domains and augmentation strategies.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/recomb/pkg/domains"
	"github.com/spf13/cobra"
)

// ListDomains prints the registered domains and the strategy identifiers
func ListDomains(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Domains:")
	for _, name := range domains.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "Strategies (join with '+'):")
	fmt.Fprintln(out, "  entity     swap aligned entities between examples")
	fmt.Fprintln(out, "  nesting    nest sub-queries inside other examples")
	fmt.Fprintln(out, "  concat<K>  concatenate K examples with [SEP]")
}
