package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"runtime/pprof"

	"gopkg.in/gcfg.v1"

	"github.com/nverley/moc2d/geom"
	"github.com/nverley/moc2d/io"
	"github.com/nverley/moc2d/moc"
	"github.com/nverley/moc2d/quad"
	"github.com/nverley/moc2d/xs"
)

func main() {
	var (
		lattice       string
		exampleConfig bool
	)
	flag.StringVar(
		&lattice, "Lattice", "",
		"Configuration file for [Lattice] mode.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Prints an example [Lattice] configuration file to stdout.",
	)
	flag.Parse()

	if exampleConfig {
		fmt.Println(io.ExampleLatticeFile)
		return
	}
	if lattice == "" {
		log.Fatalf("Usage: $ %s -Lattice config.txt", path.Base(os.Args[0]))
	}

	wrap := io.DefaultLatticeWrapper()
	if err := gcfg.ReadFileInto(wrap, lattice); err != nil {
		log.Fatal(err.Error())
	}
	con := &wrap.Lattice
	if err := con.Validate(); err != nil {
		log.Fatal(err.Error())
	}
	runtime.GOMAXPROCS(con.Threads)

	if con.ProfileFile != "" {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	dr, err := setupDriver(con)
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Drawing tracks: %d angles, %g cm spacing", con.NAngles,
		con.TrackSpacing,
	)
	if err := dr.DrawTracks(con.NAngles, con.TrackSpacing); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Traced %d flat source regions", dr.NumFSRs())

	res, err := dr.SolveKeff()
	if err != nil {
		log.Fatal(err.Error())
	}
	if res.Converged {
		fmt.Printf(
			"k-eff = %.6f after %d iterations\n", res.Keff, res.Iterations,
		)
	} else {
		fmt.Printf(
			"did not converge: k-eff = %.6f after %d iterations "+
				"(flux residual %.2e)\n",
			res.Keff, res.Iterations, res.FluxResidual,
		)
	}

	if con.FluxOutput != "" {
		if err := writeFlux(con.FluxOutput, dr); err != nil {
			log.Fatal(err.Error())
		}
	}
	if con.KHistoryOutput != "" {
		if err := writeKHistory(con.KHistoryOutput, res); err != nil {
			log.Fatal(err.Error())
		}
	}
}

// setupDriver builds an NX x NY lattice of identical annular pin cells
// from the configuration and wraps it in a transport driver.
func setupDriver(con *io.LatticeConfig) (*moc.Driver, error) {
	fuel, err := xs.ReadMaterial(con.FuelMaterial, con.Groups)
	if err != nil {
		return nil, err
	}
	mod, err := xs.ReadMaterial(con.ModeratorMaterial, con.Groups)
	if err != nil {
		return nil, err
	}

	radii := geom.EqualAreaRadii(con.PinRadius, con.PinRings)
	mats := make([]*xs.CrossSections, con.PinRings+1)
	for i := 0; i < con.PinRings; i++ {
		mats[i] = fuel
	}
	mats[con.PinRings] = mod

	tiles := make([]geom.Tile, con.LatticeNX*con.LatticeNY)
	for i := range tiles {
		pin, err := geom.NewAnnularPinCell(con.Pitch, con.Pitch, radii, mats)
		if err != nil {
			return nil, err
		}
		tiles[i] = geom.Tile{Cell: pin}
	}

	xb := make([]float64, con.LatticeNX+1)
	for i := range xb {
		xb[i] = float64(i) * con.Pitch
	}
	yb := make([]float64, con.LatticeNY+1)
	for i := range yb {
		yb[i] = float64(i) * con.Pitch
	}
	g, err := geom.NewCartesian2D(xb, yb, tiles)
	if err != nil {
		return nil, err
	}

	polar, err := quad.Polar(con.PolarQuadrature)
	if err != nil {
		return nil, err
	}

	dr, err := moc.NewDriver(g, polar)
	if err != nil {
		return nil, err
	}
	dr.FluxTolerance = con.FluxTolerance
	dr.KeffTolerance = con.KTolerance
	dr.MaxIterations = con.MaxIterations
	dr.Workers = con.Threads
	dr.Verbose = true

	bcs := []struct {
		edge geom.Edge
		name string
	}{
		{geom.XMinEdge, con.XMinBC},
		{geom.XMaxEdge, con.XMaxBC},
		{geom.YMinEdge, con.YMinBC},
		{geom.YMaxEdge, con.YMaxBC},
	}
	for _, b := range bcs {
		bc, err := geom.ParseBC(b.name)
		if err != nil {
			return nil, err
		}
		if err := dr.SetBoundaryCondition(b.edge, bc); err != nil {
			return nil, err
		}
	}
	return dr, nil
}

func writeFlux(fname string, dr *moc.Driver) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# fsr volume flux_0 ... flux_%d\n", dr.NGroups()-1)
	for i := 0; i < dr.NumFSRs(); i++ {
		fsr := dr.FSR(i)
		fmt.Fprintf(f, "%d %g", i, fsr.Volume)
		for _, phi := range fsr.Flux {
			fmt.Fprintf(f, " %g", phi)
		}
		fmt.Fprintf(f, "\n")
	}
	return nil
}

func writeKHistory(fname string, res *moc.Result) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# iteration k\n")
	for i, k := range res.KHistory {
		fmt.Fprintf(f, "%d %.8f\n", i+1, k)
	}
	return nil
}
