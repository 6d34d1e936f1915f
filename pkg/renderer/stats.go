package renderer

import "gonum.org/v1/gonum/stat"

// RenderStats contains statistics about a render pass
type RenderStats struct {
	TotalPixels  int // Total number of pixels rendered
	TotalSamples int // Total number of samples taken

	luminances []float64 // Per-pixel luminance of the averaged color
}

// addPixel records one finished pixel
func (s *RenderStats) addPixel(luminance float64, samples int) {
	s.TotalPixels++
	s.TotalSamples += samples
	s.luminances = append(s.luminances, luminance)
}

// Merge folds another stats block into this one, used when collecting
// per-band results from the worker pool
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.luminances = append(s.luminances, other.luminances...)
}

// MeanLuminance returns the average pixel luminance of the pass
func (s *RenderStats) MeanLuminance() float64 {
	if len(s.luminances) == 0 {
		return 0
	}
	return stat.Mean(s.luminances, nil)
}

// LuminanceStdDev returns the standard deviation of pixel luminance,
// a rough noise estimate for the pass
func (s *RenderStats) LuminanceStdDev() float64 {
	if len(s.luminances) < 2 {
		return 0
	}
	return stat.StdDev(s.luminances, nil)
}
