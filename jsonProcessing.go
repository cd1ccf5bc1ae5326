package main

import (
	"fmt"

	"github.com/bob-anderson-ok/deltaplan/field"
	"github.com/bob-anderson-ok/deltaplan/mask"
	"github.com/bob-anderson-ok/deltaplan/plan"
)

// Defaults applied when a key is missing from the parameter file
const (
	defaultPngScale      = 0.001
	defaultPngOffset     = -32.768
	defaultVelocityScale = 0.001
	defaultOutputFolder  = "."
	defaultSyntheticSize = 120
)

type PlanformRun struct {
	ShowInput bool
	Debug     bool

	ElevationPng string
	VelocityPng  string
	PngScale     float64
	PngOffset    float64

	VelocityPngScale  float64
	VelocityPngOffset float64

	SyntheticGiven bool
	SyntheticRows  int
	SyntheticCols  int
	SyntheticSeed  int64

	ElevationThreshold float64
	ElevationOffset    float64
	AngleThreshold     float64
	NumViews           int
	TopoThreshold      float64
	VelocityThreshold  float64
	SeawardEdges       []field.Edge
	TrimLength         int

	OriginGiven bool
	OriginX     float64
	OriginY     float64

	OutputFolder string
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// getFloat fills dst when the key is present. A missing key leaves dst alone
// unless the key is required.
func getFloat(jsonTable map[string]interface{}, dst *float64, required bool, path ...string) (string, bool) {
	name := joinPath(path)
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		if required {
			return name + ": not found", false
		}
		return "", true
	}
	value, ok := v.(float64)
	if !ok {
		return name + ": is not a float64", false
	}
	*dst = value
	return "", true
}

func getInt(jsonTable map[string]interface{}, dst *int, required bool, path ...string) (string, bool) {
	value := float64(*dst)
	msg, ok := getFloat(jsonTable, &value, required, path...)
	if !ok {
		return msg, false
	}
	if value != float64(int(value)) {
		return joinPath(path) + ": is not an integer", false
	}
	*dst = int(value)
	return "", true
}

func getString(jsonTable map[string]interface{}, dst *string, path ...string) (string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return "", true
	}
	*dst, ok = v.(string)
	if !ok {
		return joinPath(path) + ": is not a string", false
	}
	return "", true
}

func getBool(jsonTable map[string]interface{}, dst *bool, path ...string) (string, bool) {
	v, ok := getLeafValue(jsonTable, path...)
	if !ok {
		return "", true
	}
	*dst, ok = v.(bool)
	if !ok {
		return joinPath(path) + ": is not a bool", false
	}
	return "", true
}

func joinPath(path []string) string {
	name := ""
	for i, p := range path {
		if i > 0 {
			name += "."
		}
		name += p
	}
	return name
}

func validateJsonFileAndFillRun(jsonTable map[string]interface{}, run *PlanformRun) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	// Library defaults first, so that a missing key means "use the default"
	run.PngScale = defaultPngScale
	run.PngOffset = defaultPngOffset
	run.VelocityPngScale = defaultVelocityScale
	run.VelocityPngOffset = 0
	run.AngleThreshold = mask.DefaultAngleThreshold
	run.NumViews = plan.DefaultNumViews
	run.TopoThreshold = mask.DefaultTopoThreshold
	run.VelocityThreshold = mask.DefaultVelocityThreshold
	run.SeawardEdges = append([]field.Edge(nil), plan.DefaultSeaward...)
	run.OutputFolder = defaultOutputFolder

	checks := []func() (string, bool){
		func() (string, bool) { return getBool(jsonTable, &run.ShowInput, "show_input_bool") },
		func() (string, bool) { return getBool(jsonTable, &run.Debug, "debug_bool") },
		func() (string, bool) { return getString(jsonTable, &run.ElevationPng, "elevation_png") },
		func() (string, bool) { return getString(jsonTable, &run.VelocityPng, "velocity_png") },
		func() (string, bool) { return getFloat(jsonTable, &run.PngScale, false, "png_scale") },
		func() (string, bool) { return getFloat(jsonTable, &run.PngOffset, false, "png_offset") },
		func() (string, bool) {
			return getFloat(jsonTable, &run.VelocityPngScale, false, "velocity_png_scale")
		},
		func() (string, bool) {
			return getFloat(jsonTable, &run.VelocityPngOffset, false, "velocity_png_offset")
		},
		func() (string, bool) {
			return getFloat(jsonTable, &run.ElevationThreshold, false, "elevation_threshold")
		},
		func() (string, bool) { return getFloat(jsonTable, &run.ElevationOffset, false, "elevation_offset") },
		func() (string, bool) { return getFloat(jsonTable, &run.AngleThreshold, false, "angle_threshold") },
		func() (string, bool) { return getInt(jsonTable, &run.NumViews, false, "numviews") },
		func() (string, bool) { return getFloat(jsonTable, &run.TopoThreshold, false, "topo_threshold") },
		func() (string, bool) {
			return getFloat(jsonTable, &run.VelocityThreshold, false, "velocity_threshold")
		},
		func() (string, bool) { return getInt(jsonTable, &run.TrimLength, false, "trim_length") },
		func() (string, bool) { return getString(jsonTable, &run.OutputFolder, "output_folder") },
	}
	for _, check := range checks {
		if m, ok := check(); !ok {
			return m, false
		}
	}

	if run.PngScale == 0 {
		msg = "png_scale: must not be zero"
		return msg, false
	}
	if run.VelocityPngScale == 0 {
		msg = "velocity_png_scale: must not be zero"
		return msg, false
	}
	if run.NumViews < 0 {
		msg = "numviews: must not be negative"
		return msg, false
	}
	if run.TrimLength < 0 {
		msg = "trim_length: must not be negative"
		return msg, false
	}

	edges, ok := getLeafValue(jsonTable, "seaward_edges")
	if ok {
		list, ok := edges.([]interface{})
		if !ok {
			msg = "seaward_edges: is not a list"
			return msg, false
		}
		if len(list) == 0 {
			msg = "seaward_edges: at least one edge is required"
			return msg, false
		}
		run.SeawardEdges = run.SeawardEdges[:0]
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				msg = "seaward_edges: entries must be strings"
				return msg, false
			}
			edge, err := field.ParseEdge(name)
			if err != nil {
				msg = fmt.Sprintf("seaward_edges: %v", err)
				return msg, false
			}
			run.SeawardEdges = append(run.SeawardEdges, edge)
		}
	}

	// Check to see if an origin group is present --- it is optional
	_, ok = getLeafValue(jsonTable, "origin")
	run.OriginGiven = ok
	if ok {
		if m, ok := getFloat(jsonTable, &run.OriginX, true, "origin", "x"); !ok {
			return m, false
		}
		if m, ok := getFloat(jsonTable, &run.OriginY, true, "origin", "y"); !ok {
			return m, false
		}
	}

	// Check to see if a synthetic group is present. Required if no elevation image is supplied.
	_, ok = getLeafValue(jsonTable, "synthetic")
	run.SyntheticGiven = ok
	if ok {
		run.SyntheticRows = defaultSyntheticSize
		run.SyntheticCols = defaultSyntheticSize
		if m, ok := getInt(jsonTable, &run.SyntheticRows, false, "synthetic", "rows"); !ok {
			return m, false
		}
		if m, ok := getInt(jsonTable, &run.SyntheticCols, false, "synthetic", "cols"); !ok {
			return m, false
		}
		seed := 0
		if m, ok := getInt(jsonTable, &seed, false, "synthetic", "seed"); !ok {
			return m, false
		}
		run.SyntheticSeed = int64(seed)
	}

	if run.ElevationPng == "" && !run.SyntheticGiven {
		msg = "elevation_png not found and no synthetic group given: one of them is required."
		return msg, false
	}
	if run.ElevationPng != "" && run.SyntheticGiven {
		msg = "elevation_png and synthetic are mutually exclusive."
		return msg, false
	}
	if run.VelocityPng != "" && run.ElevationPng == "" {
		msg = "velocity_png requires elevation_png."
		return msg, false
	}

	return msg, true
}
