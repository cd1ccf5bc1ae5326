package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	json "github.com/KevinWang15/go-json5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/mask"
	"github.com/bob-anderson-ok/deltaplan/plan"
)

func parseRun(t *testing.T, text string) (PlanformRun, string, bool) {
	t.Helper()
	var jsonTable map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &jsonTable))
	var run PlanformRun
	msg, ok := validateJsonFileAndFillRun(jsonTable, &run)
	return run, msg, ok
}

func TestValidateDefaults(t *testing.T) {
	run, msg, ok := parseRun(t, `{
		// json5 allows comments and trailing commas
		"synthetic": {"rows": 40, "cols": 50, "seed": 9},
	}`)
	require.True(t, ok, msg)

	assert.True(t, run.SyntheticGiven)
	assert.Equal(t, 40, run.SyntheticRows)
	assert.Equal(t, 50, run.SyntheticCols)
	assert.Equal(t, int64(9), run.SyntheticSeed)
	assert.Equal(t, mask.DefaultAngleThreshold, run.AngleThreshold)
	assert.Equal(t, plan.DefaultNumViews, run.NumViews)
	assert.Equal(t, mask.DefaultTopoThreshold, run.TopoThreshold)
	assert.Equal(t, mask.DefaultVelocityThreshold, run.VelocityThreshold)
	assert.Equal(t, plan.DefaultSeaward, run.SeawardEdges)
	assert.Equal(t, defaultOutputFolder, run.OutputFolder)
	assert.Equal(t, defaultPngScale, run.PngScale)
	assert.Equal(t, defaultPngOffset, run.PngOffset)
	assert.Equal(t, defaultVelocityScale, run.VelocityPngScale)
	assert.Zero(t, run.VelocityPngOffset)
	assert.False(t, run.OriginGiven)
	assert.Zero(t, run.ElevationThreshold)
}

func TestValidateAllKeys(t *testing.T) {
	run, msg, ok := parseRun(t, `{
		"elevation_png": "eta.png",
		"velocity_png": "vel.png",
		"png_scale": 0.01,
		"png_offset": -5,
		"velocity_png_scale": 0.0005,
		"velocity_png_offset": 0.25,
		"elevation_threshold": 0.1,
		"elevation_offset": 0.05,
		"angle_threshold": 60,
		"numviews": 2,
		"topo_threshold": -1,
		"velocity_threshold": 0.5,
		"trim_length": 3,
		"seaward_edges": ["Bottom", "right"],
		"origin": {"x": 25, "y": 1},
		"output_folder": "out",
		"show_input_bool": true,
		"debug_bool": true,
	}`)
	require.True(t, ok, msg)

	assert.Equal(t, "eta.png", run.ElevationPng)
	assert.Equal(t, "vel.png", run.VelocityPng)
	assert.Equal(t, 0.01, run.PngScale)
	assert.Equal(t, -5.0, run.PngOffset)
	assert.Equal(t, 0.0005, run.VelocityPngScale)
	assert.Equal(t, 0.25, run.VelocityPngOffset)
	assert.Equal(t, 0.1, run.ElevationThreshold)
	assert.Equal(t, 0.05, run.ElevationOffset)
	assert.Equal(t, 60.0, run.AngleThreshold)
	assert.Equal(t, 2, run.NumViews)
	assert.Equal(t, -1.0, run.TopoThreshold)
	assert.Equal(t, 0.5, run.VelocityThreshold)
	assert.Equal(t, 3, run.TrimLength)
	assert.Equal(t, []field.Edge{field.Bottom, field.Right}, run.SeawardEdges)
	assert.True(t, run.OriginGiven)
	assert.Equal(t, 25.0, run.OriginX)
	assert.Equal(t, 1.0, run.OriginY)
	assert.Equal(t, "out", run.OutputFolder)
	assert.True(t, run.ShowInput)
	assert.True(t, run.Debug)
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no input", `{}`, "elevation_png not found and no synthetic group given: one of them is required."},
		{"both inputs", `{"elevation_png": "a.png", "synthetic": {}}`, "elevation_png and synthetic are mutually exclusive."},
		{"velocity alone", `{"velocity_png": "v.png", "synthetic": {}}`, "velocity_png requires elevation_png."},
		{"bool", `{"show_input_bool": "yes", "synthetic": {}}`, "show_input_bool: is not a bool"},
		{"string", `{"elevation_png": 3}`, "elevation_png: is not a string"},
		{"float", `{"angle_threshold": "wide", "synthetic": {}}`, "angle_threshold: is not a float64"},
		{"integer", `{"numviews": 2.5, "synthetic": {}}`, "numviews: is not an integer"},
		{"negative views", `{"numviews": -1, "synthetic": {}}`, "numviews: must not be negative"},
		{"negative trim", `{"trim_length": -2, "synthetic": {}}`, "trim_length: must not be negative"},
		{"zero scale", `{"png_scale": 0, "elevation_png": "a.png"}`, "png_scale: must not be zero"},
		{"zero velocity scale", `{"velocity_png_scale": 0, "elevation_png": "a.png"}`, "velocity_png_scale: must not be zero"},
		{"velocity offset", `{"velocity_png_offset": "low", "elevation_png": "a.png"}`, "velocity_png_offset: is not a float64"},
		{"edges type", `{"seaward_edges": "left", "synthetic": {}}`, "seaward_edges: is not a list"},
		{"edges empty", `{"seaward_edges": [], "synthetic": {}}`, "seaward_edges: at least one edge is required"},
		{"edge entry", `{"seaward_edges": [1], "synthetic": {}}`, "seaward_edges: entries must be strings"},
		{"origin y", `{"origin": {"x": 1}, "synthetic": {}}`, "origin.y: not found"},
		{"origin x", `{"origin": {"x": "a", "y": 0}, "synthetic": {}}`, "origin.x: is not a float64"},
		{"synthetic rows", `{"synthetic": {"rows": "many"}}`, "synthetic.rows: is not a float64"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, msg, ok := parseRun(t, tt.text)
			assert.False(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}

	_, msg, ok := parseRun(t, `{"seaward_edges": ["north"], "synthetic": {}}`)
	assert.False(t, ok)
	assert.Contains(t, msg, "seaward_edges:")
	assert.Contains(t, msg, "north")
}

func TestGray16RoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 0.25, 0.5, 1, 2, 20})
	img, err := MatrixToGray16Data(m, 4000)
	require.NoError(t, err)
	assert.Equal(t, color.Gray16{Y: 65535}, img.Gray16At(2, 1), "values clamp at full scale")

	name := filepath.Join(t.TempDir(), "grid.png")
	require.NoError(t, SaveGray16PNG(name, img))

	grid, err := LoadGray16Grid(name, 1.0/4000, 0)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	require.Len(t, grid[0], 3)
	assert.InDelta(t, 0.25, grid[0][1], 1e-12)
	assert.InDelta(t, 2.0, grid[1][1], 1e-12)

	offset, err := LoadGray16Grid(name, 1.0/4000, -1)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, offset[0][2], 1e-12)

	_, err = LoadGray16Grid(filepath.Join(t.TempDir(), "missing.png"), 1, 0)
	assert.Error(t, err)

	_, err = MatrixToGray16Data(m, 0)
	assert.Error(t, err)
}

func TestLoadConvertsGray8(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix[0], img.Pix[1] = 0, 255
	name := filepath.Join(t.TempDir(), "gray8.png")
	require.NoError(t, SaveGrayPNG(name, img))

	grid, err := LoadGray16Grid(name, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 65535}}, grid)
}

func TestGrayViewPercentile(t *testing.T) {
	m := mat.NewDense(1, 3, []float64{0, 90, 180})
	img, err := MatrixToGrayViewPercentile(m, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.Pix[0])
	assert.Equal(t, uint8(255), img.Pix[2])

	flat, err := MatrixToGrayViewPercentile(mat.NewDense(2, 2, nil), 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 0}, flat.Pix)

	_, err = MatrixToGrayViewPercentile(m, 50, 10)
	assert.Error(t, err)
}

func TestBinaryToGray(t *testing.T) {
	b, err := field.BinaryFromValue([][]bool{{true, false}, {false, true}})
	require.NoError(t, err)
	img := BinaryToGray(b, 0)
	assert.Equal(t, []uint8{255, 0, 0, 255}, img.Pix)
}

func TestComputePlanformSynthetic(t *testing.T) {
	run, msg, ok := parseRun(t, `{"synthetic": {"rows": 30, "cols": 40, "seed": 2}, "trim_length": 2}`)
	require.True(t, ok, msg)

	elevation, velocity, err := loadFields(&run)
	require.NoError(t, err)
	p, err := computePlanform(&run, elevation, velocity)
	require.NoError(t, err)

	require.NotNil(t, p.Channel)
	require.NotNil(t, p.Centerline)
	assert.Len(t, p.masks(), 6)
	assert.Greater(t, p.Land.BinaryMask().Count(), 0)
	for _, m := range p.masks() {
		b := m.mask.BinaryMask()
		for i := 0; i < 2; i++ {
			for j := 0; j < 40; j++ {
				assert.False(t, b.At(0, i, j), "%s trimmed at (%d, %d)", m.name, i, j)
			}
		}
	}

	x, y := run.origin(p.OAP.Shape())
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 0.0, y)

	run.OutputFolder = t.TempDir()
	require.NoError(t, writeImages(&run, p))
	for _, name := range []string{"land", "wet", "channel", "edge", "shoreline", "centerline", "sea_angles", "sea_angles16"} {
		_, err := os.Stat(filepath.Join(run.OutputFolder, name+".png"))
		assert.NoError(t, err, name)
	}
}

func TestLoadFieldsDecodesVelocitySeparately(t *testing.T) {
	dir := t.TempDir()
	eta, err := MatrixToGray16Data(mat.NewDense(1, 2, []float64{1, 2}), 1)
	require.NoError(t, err)
	vel, err := MatrixToGray16Data(mat.NewDense(1, 2, []float64{100, 300}), 1)
	require.NoError(t, err)
	require.NoError(t, SaveGray16PNG(filepath.Join(dir, "eta.png"), eta))
	require.NoError(t, SaveGray16PNG(filepath.Join(dir, "vel.png"), vel))

	run, msg, ok := parseRun(t, `{
		"elevation_png": "`+filepath.ToSlash(filepath.Join(dir, "eta.png"))+`",
		"velocity_png": "`+filepath.ToSlash(filepath.Join(dir, "vel.png"))+`",
		"png_scale": 1,
		"png_offset": -1.5,
		"velocity_png_scale": 0.01,
	}`)
	require.True(t, ok, msg)

	elevation, velocity, err := loadFields(&run)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-0.5, 0.5}}, elevation)
	require.Len(t, velocity, 1)
	assert.InDelta(t, 1.0, velocity[0][0], 1e-12)
	assert.InDelta(t, 3.0, velocity[0][1], 1e-12, "no elevation offset on speeds")
}

func TestComputePlanformWithoutVelocity(t *testing.T) {
	run, msg, ok := parseRun(t, `{"synthetic": {"rows": 20, "cols": 20}}`)
	require.True(t, ok, msg)

	elevation, _, err := loadFields(&run)
	require.NoError(t, err)
	p, err := computePlanform(&run, elevation, nil)
	require.NoError(t, err)
	assert.Nil(t, p.Channel)
	assert.Nil(t, p.Centerline)
	assert.Len(t, p.masks(), 4)
}
