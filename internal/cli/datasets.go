package cli

import (
	"github.com/spf13/cobra"

	"github.com/wp2csv/wp2csv/internal/catalog"
	"github.com/wp2csv/wp2csv/internal/report"
)

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets wp2csv can export",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			var infos []report.DatasetInfo
			for _, d := range catalog.Default().Datasets() {
				infos = append(infos, report.DatasetInfo{
					Name:        d.Name,
					Description: d.Description,
					Required:    d.Required(),
					Optional:    d.Optional(),
					Columns:     d.Columns(),
				})
			}
			report.New(cmd.OutOrStdout(), report.ModePlain).Datasets(infos)
		},
	}
}
