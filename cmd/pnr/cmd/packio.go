package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTracePNR/pkg/constraint"
	"github.com/OpenTraceLab/OpenTracePNR/pkg/device"
	"github.com/OpenTraceLab/OpenTracePNR/pkg/iopack"
	"github.com/OpenTraceLab/OpenTracePNR/pkg/netlist"
)

var (
	deviceFile     string
	constraintFile string
	outputFile     string
	noReport       bool
)

var packIOCmd = &cobra.Command{
	Use:   "pack-io <netlist.json>",
	Short: "Legalize top-level IO against the target device",
	Long: `pack-io materializes pad and buffer cells for every top-level port,
binds each pad to a device site (honoring loc constraints), decomposes
composite IO macros into elementary primitives, and retypes the result
into the device primitive vocabulary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		design, err := netlist.ImportJSON(data)
		if err != nil {
			return err
		}

		db, err := device.LoadFile(deviceFile)
		if err != nil {
			return err
		}

		if constraintFile != "" {
			parser, err := constraint.NewParser()
			if err != nil {
				return err
			}
			file, err := parser.ParseFile(constraintFile)
			if err != nil {
				return err
			}
			if err := file.Apply(design); err != nil {
				return err
			}
		}

		packer := iopack.Packer{
			Design: design,
			Device: db,
		}
		if verbose {
			packer.Progress = cmd.OutOrStdout()
		}
		if err := packer.Run(); err != nil {
			return err
		}

		out, err := design.ExportJSON()
		if err != nil {
			return err
		}
		dest := outputFile
		if dest == "" {
			dest = args[0]
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			return err
		}

		if !noReport {
			iopack.WriteReport(cmd.OutOrStdout(), design, db)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Packed %d IO pads for %s\n",
			len(design.CellsOfType(iopack.TypePad)), db.Name())
		return nil
	},
}

func init() {
	packIOCmd.Flags().StringVarP(&deviceFile, "device", "d", "", "device description file (required)")
	packIOCmd.Flags().StringVarP(&constraintFile, "constraints", "c", "", "placement constraint file")
	packIOCmd.Flags().StringVarP(&outputFile, "out", "o", "", "output netlist path (default: overwrite input)")
	packIOCmd.Flags().BoolVar(&noReport, "no-report", false, "suppress the pad assignment table")
	packIOCmd.MarkFlagRequired("device")
	rootCmd.AddCommand(packIOCmd)
}
