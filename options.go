package vpath

// MetricsOption configures path measurement.
//
// Example:
//
//	contours := vpath.NewContourCache(128)
//	metrics := p.ComputeMetrics(false,
//		vpath.WithTolerance(0.1),
//		vpath.WithContourCache(contours))
type MetricsOption func(*metricsOptions)

type metricsOptions struct {
	tolerance float64
	cache     *ContourCache
}

func defaultMetricsOptions() metricsOptions {
	return metricsOptions{tolerance: DefaultTolerance}
}

// WithTolerance sets the flattening tolerance used to measure curves.
// Smaller values measure curves more precisely at the cost of more
// segments. Non-positive values select DefaultTolerance.
func WithTolerance(tolerance float64) MetricsOption {
	return func(o *metricsOptions) {
		o.tolerance = normTolerance(tolerance)
	}
}

// WithContourCache shares measured contours between measurements through
// c. Identical contours measured with the same tolerance and closing mode
// are flattened only once.
func WithContourCache(c *ContourCache) MetricsOption {
	return func(o *metricsOptions) {
		o.cache = c
	}
}
