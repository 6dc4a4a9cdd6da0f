package analytics

import "fintrack/internal/ledgererror"

// Point is one (x, y) sample of a series.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Trend is a fitted line y = Slope*x + Intercept.
type Trend struct {
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
}

// At evaluates the line at x.
func (t Trend) At(x float64) float64 {
	return t.Slope*x + t.Intercept
}

// LinearTrend is an ordinary least-squares fit. With no points it returns
// an EmptyDataError. When every point shares one x (including the single
// point case) the slope is 0 and the intercept is the mean y.
func LinearTrend(points []Point) (Trend, error) {
	if len(points) == 0 {
		return Trend{}, &ledgererror.EmptyDataError{Operation: "linear trend"}
	}

	n := float64(len(points))
	var meanX, meanY float64
	for _, p := range points {
		meanX += p.X
		meanY += p.Y
	}
	meanX /= n
	meanY /= n

	// centred sums keep precision with unix-timestamp x values
	var sxx, sxy float64
	for _, p := range points {
		dx := p.X - meanX
		sxx += dx * dx
		sxy += dx * (p.Y - meanY)
	}
	if sxx == 0 {
		return Trend{Slope: 0, Intercept: meanY}, nil
	}

	slope := sxy / sxx
	return Trend{Slope: slope, Intercept: meanY - slope*meanX}, nil
}
