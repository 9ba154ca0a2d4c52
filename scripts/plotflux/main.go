// plotflux renders the flux and k-eff history tables written by the
// lattice solver.
package main

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/phil-mansfield/table"
	plt "github.com/phil-mansfield/pyplot"
)

var colors = []string{
	"DarkSlateBlue", "DarkTurquoise", "DarkViolet",
	"DeepPink", "DimGray", "DarkOrange", "DarkGreen",
}

func main() {
	if len(os.Args) != 5 {
		log.Fatalf(
			"Usage: $ %s flux_file khist_file groups plot_dir",
			path.Base(os.Args[0]),
		)
	}
	fluxFile, khistFile, plotDir := os.Args[1], os.Args[2], os.Args[4]
	groups := 0
	if _, err := fmt.Sscanf(os.Args[3], "%d", &groups); err != nil || groups <= 0 {
		log.Fatalf("Invalid group count %q", os.Args[3])
	}

	plotKHistory(khistFile, plotDir)
	plotFlux(fluxFile, groups, plotDir)
	plt.Execute()
}

func plotKHistory(fname, plotDir string) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	its, ks := cols[0], cols[1]

	plt.Figure()
	plt.Plot(its, ks, "k", plt.LW(2))
	plt.XLabel(`Iteration`, plt.FontSize(16))
	plt.YLabel(`$k_{\rm eff}$`, plt.FontSize(16))
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(path.Join(plotDir, "khist.png"))
}

func plotFlux(fname string, groups int, plotDir string) {
	colIdxs := make([]int, groups+1)
	colIdxs[0] = 0
	for g := 0; g < groups; g++ {
		colIdxs[g+1] = 2 + g
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	fsrs := cols[0]

	plt.Figure()
	for g := 0; g < groups; g++ {
		plt.Plot(
			fsrs, cols[g+1], plt.LW(2), plt.C(colors[g%len(colors)]),
		)
	}
	plt.XLabel(`Flat source region`, plt.FontSize(16))
	plt.YLabel(`$\phi_g$ (arbitrary units)`, plt.FontSize(16))
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(path.Join(plotDir, "flux.png"))
}
