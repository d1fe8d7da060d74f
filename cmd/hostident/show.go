package main

import (
	"github.com/spf13/cobra"

	"hostident/internal/app"
	"hostident/internal/codec"
	"hostident/internal/machine"
)

func showCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Resolve and print the machine identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var exporter codec.Exporter
			if format != "text" {
				var err error
				if exporter, err = codec.ForFormat(format); err != nil {
					return err
				}
			}

			_, id, err := app.Resolve(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}

			if exporter != nil {
				return exporter.Export(id, cmd.OutOrStdout())
			}
			_, err = cmd.OutOrStdout().Write([]byte(renderIdentity(id)))
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: text, json, yaml")
	return cmd
}

func renderIdentity(id machine.Identity) string {
	hostname := id.Hostname
	if hostname == "" {
		hostname = Muted("(unknown)")
	}

	return KeyValues("",
		KV("Hostname", Bold(hostname)),
		KV("Address", id.AddressText),
		KV("Hex", Muted(id.AddressHexText)),
		KV("IPv4", familyText(id.HasIPv4(), id.IPv4.String(), id.IPv4Rank)),
		KV("IPv6", familyText(id.HasIPv6(), id.IPv6.String(), id.IPv6Rank)),
		KV("Source", id.Source),
	)
}

func familyText(ok bool, addr string, rank machine.Rank) string {
	if !ok {
		return Muted("none")
	}
	return addr + " " + Muted("("+rank.String()+")")
}
