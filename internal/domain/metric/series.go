package metric

import "time"

// Profile selects the shape of a synthetic series
type Profile int

// Profiles
const (
	ProfileGeneric Profile = iota
	ProfileGCP
	ProfileAzure
)

// DefaultPoints is the number of steps back from the end time a series covers.
const DefaultPoints = 24

type shape struct {
	step       time.Duration
	cpu        func(i int) float64
	memory     func(i int) float64
	networkIn  func(i int) float64
	networkOut func(i int) float64
}

var shapes = map[Profile]shape{
	ProfileGeneric: {
		step:       time.Hour,
		cpu:        func(i int) float64 { return 20 + float64(i%10)*3 },
		memory:     func(i int) float64 { return 40 + float64(i%7)*4 },
		networkIn:  func(i int) float64 { return float64(i%5) * 10 },
		networkOut: func(i int) float64 { return float64(i%6) * 8 },
	},
	ProfileGCP: {
		step:       5 * time.Minute,
		cpu:        func(i int) float64 { return 30 + float64(i%7)*4 },
		memory:     func(i int) float64 { return 50 + float64(i%5)*3 },
		networkIn:  func(i int) float64 { return float64(i%6) * 15 },
		networkOut: func(i int) float64 { return float64(i%4) * 10 },
	},
	ProfileAzure: {
		step:       5 * time.Minute,
		cpu:        func(i int) float64 { return 25 + float64(i%6)*3.5 },
		memory:     func(i int) float64 { return 45 + float64(i%4)*3.5 },
		networkIn:  func(i int) float64 { return float64(i%5) * 20 },
		networkOut: func(i int) float64 { return float64(i%7) * 9 },
	},
}

// GenerateSeries returns points+1 samples ending at end, oldest first. It is
// deterministic: the same profile, end and points always give the same series.
func GenerateSeries(profile Profile, end time.Time, points int) []Point {
	if points < 0 {
		points = 0
	}
	sh, ok := shapes[profile]
	if !ok {
		sh = shapes[ProfileGeneric]
	}

	series := make([]Point, 0, points+1)
	for i := points; i >= 0; i-- {
		series = append(series, Point{
			Time:       end.Add(-time.Duration(i) * sh.step),
			CPU:        sh.cpu(i),
			Memory:     sh.memory(i),
			NetworkIn:  sh.networkIn(i),
			NetworkOut: sh.networkOut(i),
		})
	}
	return series
}

// DerivedMemory estimates memory utilisation from CPU when the provider
// reports no memory metric.
func DerivedMemory(cpu float64) float64 {
	m := cpu*0.6 + 20
	if m > 100 {
		return 100
	}
	return m
}
