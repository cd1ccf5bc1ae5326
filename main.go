package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/KevinWang15/go-json5"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/internal/log"
	"github.com/bob-anderson-ok/deltaplan/internal/synth"
	"github.com/bob-anderson-ok/deltaplan/mask"
	"github.com/bob-anderson-ok/deltaplan/plan"
)

const version = "0_3_0"

// seaAngleScale maps degrees to 16-bit counts in sea_angles16.png (0.01 degree resolution)
const seaAngleScale = 100.0

// Planform holds everything computed for one run.
type Planform struct {
	OAP        *plan.OpeningAnglePlanform
	Land       *mask.LandMask
	Wet        *mask.WetMask
	Channel    *mask.ChannelMask // nil when no velocity field was given
	Edge       *mask.EdgeMask
	Shoreline  *mask.ShorelineMask
	Centerline *mask.CenterlineMask // nil when no velocity field was given
}

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: deltaplan <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var run PlanformRun
	msg, ok := validateJsonFileAndFillRun(jsonTable, &run)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	if err := log.Init(run.Debug); err != nil {
		fmt.Println(err)
		os.Exit(5)
	}
	defer log.Sync()

	// Check for user wanting printout of complete jsonTable
	if run.ShowInput {
		fmt.Printf("%s", "\nPrintout of  complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	start := time.Now()
	elevation, velocity, err := loadFields(&run)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tLoading of the input fields failed: %w\n", err))
		os.Exit(6)
	}
	fmt.Printf("Grid is %d rows x %d columns\n", len(elevation), len(elevation[0]))
	fmt.Printf("Loading of the input fields took %s\n", time.Since(start))

	start = time.Now()
	p, err := computePlanform(&run, elevation, velocity)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tComputation of the planform failed: %w\n", err))
		os.Exit(7)
	}
	fmt.Printf("Computation of the opening angle planform and masks took %s\n\n", time.Since(start))

	report(&run, p)

	if err := os.MkdirAll(run.OutputFolder, 0o755); err != nil {
		fmt.Println(fmt.Errorf("\n\tCreation of output folder %q failed: %w\n", run.OutputFolder, err))
		os.Exit(8)
	}
	if err := writeImages(&run, p); err != nil {
		fmt.Println(fmt.Errorf("\n\tWriting of output images failed: %w\n", err))
		os.Exit(9)
	}

	fmt.Printf("\nTotal program run time is %s\n", time.Since(programStart))
}

// loadFields reads the elevation (and optional velocity) images or builds a
// synthetic delta.
func loadFields(run *PlanformRun) (elevation, velocity [][]float64, err error) {
	if run.SyntheticGiven {
		d := synth.Delta{Rows: run.SyntheticRows, Cols: run.SyntheticCols, Seed: run.SyntheticSeed}
		log.Infow("generating synthetic delta", "rows", d.Rows, "cols", d.Cols, "seed", d.Seed)
		return d.Generate()
	}

	elevation, err = LoadGray16Grid(run.ElevationPng, run.PngScale, run.PngOffset)
	if err != nil {
		return nil, nil, err
	}
	if run.VelocityPng == "" {
		return elevation, nil, nil
	}
	velocity, err = LoadGray16Grid(run.VelocityPng, run.VelocityPngScale, run.VelocityPngOffset)
	if err != nil {
		return nil, nil, err
	}
	return elevation, velocity, nil
}

func (run *PlanformRun) maskOptions() []mask.Option {
	return []mask.Option{
		mask.WithElevationThreshold(run.ElevationThreshold),
		mask.WithElevationOffset(run.ElevationOffset),
		mask.WithAngleThreshold(run.AngleThreshold),
		mask.WithNumViews(run.NumViews),
		mask.WithSeaward(run.SeawardEdges...),
		mask.WithTopoThreshold(run.TopoThreshold),
		mask.WithVelocityThreshold(run.VelocityThreshold),
	}
}

// computePlanform runs the opening angle method once and derives every mask
// from it, handing the land and wet masks on to the masks that need them.
func computePlanform(run *PlanformRun, elevation, velocity [][]float64) (*Planform, error) {
	var p Planform
	var err error

	p.OAP, err = plan.FromElevationData(elevation,
		plan.WithElevationThreshold(run.ElevationThreshold),
		plan.WithElevationOffset(run.ElevationOffset),
		plan.WithNumViews(run.NumViews),
		plan.WithSeaward(run.SeawardEdges...),
	)
	if err != nil {
		return nil, err
	}

	opts := run.maskOptions()
	if p.Land, err = mask.LandMaskFromOAP(p.OAP, opts...); err != nil {
		return nil, err
	}
	if p.Shoreline, err = mask.ShorelineMaskFromOAP(p.OAP, opts...); err != nil {
		return nil, err
	}
	withLand := append(opts, mask.WithLandMask(p.Land))
	if p.Wet, err = mask.NewWetMask(elevation, withLand...); err != nil {
		return nil, err
	}
	withBoth := append(withLand, mask.WithWetMask(p.Wet))
	if p.Edge, err = mask.NewEdgeMask(elevation, withBoth...); err != nil {
		return nil, err
	}
	if velocity != nil {
		if p.Channel, err = mask.NewChannelMask(velocity, elevation, withBoth...); err != nil {
			return nil, err
		}
		if p.Centerline, err = mask.NewCenterlineMask(p.Channel, opts...); err != nil {
			return nil, err
		}
	}

	if run.TrimLength > 0 {
		for _, m := range p.masks() {
			m.mask.Trim(run.TrimLength)
		}
	}
	return &p, nil
}

type namedMask struct {
	name string
	mask interface {
		field.Masker
		Trim(length int, edges ...field.Edge)
	}
}

func (p *Planform) masks() []namedMask {
	list := []namedMask{
		{"land", p.Land},
		{"wet", p.Wet},
		{"edge", p.Edge},
		{"shoreline", p.Shoreline},
	}
	if p.Channel != nil {
		list = append(list, namedMask{"channel", p.Channel}, namedMask{"centerline", p.Centerline})
	}
	return list
}

// origin is where shoreline distances are measured from: the user's origin,
// else the middle of the landward wall.
func (run *PlanformRun) origin(shape field.Shape) (x, y float64) {
	if run.OriginGiven {
		return run.OriginX, run.OriginY
	}
	return float64(shape.C / 2), 0
}

func report(run *PlanformRun, p *Planform) {
	s := p.OAP.Shape()
	fmt.Printf("Opening angle threshold: %0.1f degrees, %d dilation passes, seaward edges %v\n",
		run.AngleThreshold, p.OAP.NumViews(), p.OAP.Seaward())
	for _, m := range p.masks() {
		b := m.mask.BinaryMask()
		fmt.Printf("%-11s %7d cells (%5.1f%%)\n", m.name+":", b.Count(), 100*float64(b.Count())/float64(s.Size()))
	}
	if p.Channel == nil {
		fmt.Println("No velocity field given: channel and centerline masks skipped")
	}
	fmt.Println()

	length, err := plan.ShorelineLength(p.Shoreline)
	if errors.Is(err, plan.ErrNoShoreline) {
		fmt.Println("No shoreline found: shoreline metrics skipped")
		return
	}
	if err != nil {
		log.Errorw("shoreline length failed", "error", err)
		return
	}
	fmt.Printf("Shoreline length is %0.3f pixels\n", length)

	roughness, err := plan.ShorelineRoughness(p.Shoreline, p.Land)
	if err != nil {
		log.Warnw("shoreline roughness failed", "error", err)
	} else {
		fmt.Printf("Shoreline roughness is %0.4f\n", roughness)
	}

	x, y := run.origin(s)
	mean, std, err := plan.ShorelineDistance(p.Shoreline, plan.WithOrigin(x, y))
	if err != nil {
		log.Warnw("shoreline distance failed", "error", err)
		return
	}
	fmt.Printf("Shoreline distance from (%0.1f, %0.1f): mean %0.3f pixels, std %0.3f pixels\n", x, y, mean, std)
}

func writeImages(run *PlanformRun, p *Planform) error {
	for _, m := range p.masks() {
		name := filepath.Join(run.OutputFolder, m.name+".png")
		if err := SaveGrayPNG(name, BinaryToGray(m.mask.BinaryMask(), 0)); err != nil {
			return fmt.Errorf("writing of %q failed: %w", name, err)
		}
		log.Debugw("wrote mask image", "file", name)
	}

	angles := p.OAP.SeaAngles()

	// user-friendly view
	view, err := MatrixToGrayViewPercentile(angles, 0.0, 100)
	if err != nil {
		return fmt.Errorf("creation of the sea angle display image failed: %w", err)
	}
	name := filepath.Join(run.OutputFolder, "sea_angles.png")
	if err := SaveGrayPNG(name, view); err != nil {
		return fmt.Errorf("writing of %q failed: %w", name, err)
	}

	// Make the scientific (well-defined scaling) version of the sea angles
	data, err := MatrixToGray16Data(angles, seaAngleScale)
	if err != nil {
		return fmt.Errorf("creation of the sea angle data image failed: %w", err)
	}
	name = filepath.Join(run.OutputFolder, "sea_angles16.png")
	if err := SaveGray16PNG(name, data); err != nil {
		return fmt.Errorf("writing of %q failed: %w", name, err)
	}
	return nil
}
