package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"hostident/internal/config"
	"hostident/internal/repository/sqlite"
)

func historyCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List identity snapshots recorded by previous serve runs",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			path := opts.cfg.Database.Path
			if path != ":memory:" {
				if err := config.EnsureDir(path); err != nil {
					return err
				}
			}

			repo, err := sqlite.New(path)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, repo.Close()) }()

			snapshots, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(snapshots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), WarnMsg("no snapshots in %s", path))
				return nil
			}

			rows := make([][]string, 0, len(snapshots))
			for _, s := range snapshots {
				rows = append(rows, []string{
					s.RecordedAt.Local().Format(time.DateTime),
					s.Hostname,
					addrOrDash(s.Primary.IsValid(), s.Primary.String()),
					addrOrDash(s.IPv4.IsValid(), s.IPv4.String()),
					addrOrDash(s.IPv6.IsValid(), s.IPv6.String()),
					s.Source,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), Table([]string{"RECORDED", "HOSTNAME", "PRIMARY", "IPV4", "IPV6", "SOURCE"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum snapshots to list (0 for all)")
	return cmd
}

func addrOrDash(ok bool, s string) string {
	if !ok {
		return "-"
	}
	return s
}
