package cmd

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/fancon-pi/fancon/cmd/global"
	"github.com/fancon-pi/fancon/internal/configuration"
	"github.com/fancon-pi/fancon/internal/controller"
	"github.com/fancon-pi/fancon/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the switching behaviour of the configured thresholds",
	Long: `Sweeps the temperature up and back down across the configured thresholds
and plots the resulting fan state, showing the hysteresis loop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()

		config, err := configuration.LoadConfig()
		if err != nil {
			return err
		}
		if err := configuration.Validate(config); err != nil {
			return err
		}

		h := controller.Hysteresis{OnTemp: config.FanOnTemp, OffTemp: config.FanOffTemp}
		temps := sweepTemperatures(h)
		rising, falling := hysteresisCurves(h, temps)

		tab := table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"On at", fmt.Sprintf("%d°C", h.OnTemp)},
				{"Off at", fmt.Sprintf("%d°C", h.OffTemp)},
				{"Interval", config.CheckTempInterval.String()},
				{"Sweep", fmt.Sprintf("%d°C - %d°C", temps[0], temps[len(temps)-1])},
			},
		}
		var buf bytes.Buffer
		err = tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if err != nil {
			return err
		}
		ui.Printfln(buf.String())

		caption := "Fan state (1 = on) over temperature, rising / falling"
		graph := asciigraph.PlotMany(
			[][]float64{rising, falling},
			asciigraph.Height(5),
			asciigraph.Width(len(temps)),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption(caption),
		)
		ui.Printfln(graph)
		ui.Printfln("Dead band: %s", deadBand(h))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
}

// sweepSteps caps the number of points plotted, so wide threshold ranges
// produce a graph of readable width.
const sweepSteps = 100

// sweepTemperatures returns temperatures from 10°C below the lower threshold
// to 10°C above the upper one, in ascending order. Every whole degree is
// included unless the range is wider than sweepSteps, in which case it is
// sampled evenly. Both ends are always included.
func sweepTemperatures(h controller.Hysteresis) []uint32 {
	low, high := uint64(h.OffTemp), uint64(h.OnTemp)
	if low > high {
		low, high = high, low
	}
	if low >= 10 {
		low -= 10
	} else {
		low = 0
	}
	high = min(high+10, math.MaxUint32)

	step := (high - low + sweepSteps - 1) / sweepSteps
	if step == 0 {
		step = 1
	}

	temps := make([]uint32, 0, (high-low)/step+2)
	for temp := low; temp < high; temp += step {
		temps = append(temps, uint32(temp))
	}
	return append(temps, uint32(high))
}

// hysteresisCurves returns the fan state for each temperature when the
// temperature rises from the coldest value, and when it falls back from the
// hottest one. Both curves are indexed by temperature in ascending order.
func hysteresisCurves(h controller.Hysteresis, temps []uint32) (rising []float64, falling []float64) {
	up := h.Sweep(false, temps)

	reversed := make([]uint32, len(temps))
	for i, temp := range temps {
		reversed[len(temps)-1-i] = temp
	}
	down := h.Sweep(up[len(up)-1], reversed)

	rising = make([]float64, len(temps))
	falling = make([]float64, len(temps))
	for i := range temps {
		rising[i] = stateValue(up[i])
		falling[i] = stateValue(down[len(down)-1-i])
	}
	return rising, falling
}

func stateValue(energized bool) float64 {
	if energized {
		return 1
	}
	return 0
}

func deadBand(h controller.Hysteresis) string {
	if h.OnTemp <= h.OffTemp {
		return "none, the fan toggles between " + strconv.Itoa(int(h.OnTemp)) + "°C and " + strconv.Itoa(int(h.OffTemp)) + "°C"
	}
	return fmt.Sprintf("%d°C - %d°C keeps the current state", h.OffTemp+1, h.OnTemp-1)
}
