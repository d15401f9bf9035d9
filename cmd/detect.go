package cmd

import (
	"bytes"
	"strconv"

	"github.com/fancon-pi/fancon/cmd/global"
	"github.com/fancon-pi/fancon/internal/device"
	"github.com/fancon-pi/fancon/internal/failure"
	"github.com/fancon-pi/fancon/internal/gpio"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectAll bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Prints the device model and all GPIO chips with the lines that are in use`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()

		model, err := device.Model()
		if err != nil {
			ui.Warning("Unable to identify device: %v", err)
		} else {
			ui.Printfln("Device: %s", model)
		}

		chips, err := gpio.Detect()
		if err != nil {
			return failure.Hardware("detect gpio chips", err)
		}

		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		for idx, chip := range chips {
			if idx > 0 {
				ui.Printfln("")
			}
			ui.Printfln("> %s (%s, %d lines)", chip.Name, chip.Label, len(chip.Lines))

			rows := lineRows(chip.Lines, detectAll)
			if len(rows) <= 0 {
				ui.Printfln("  no lines in use")
				continue
			}

			tab := table.Table{
				Headers: []string{"Offset", "Name", "Direction", "Used", "Consumer"},
				Rows:    rows,
			}
			var buf bytes.Buffer
			if err := tab.WriteTable(&buf, tableConfig); err != nil {
				return err
			}
			ui.Printfln(buf.String())
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().BoolVarP(&detectAll, "all", "a", false, "List unused lines as well")
	rootCmd.AddCommand(detectCmd)
}

func lineRows(lines []gpio.LineInfo, all bool) [][]string {
	var rows [][]string
	for _, line := range lines {
		if !line.Used && !all {
			continue
		}
		name := line.Name
		if len(name) <= 0 {
			name = "N/A"
		}
		rows = append(rows, []string{
			strconv.Itoa(line.Offset), name, line.Direction, strconv.FormatBool(line.Used), line.Consumer,
		})
	}
	return rows
}
