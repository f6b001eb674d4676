package updater

import "math"

// Progress receives download progress.
type Progress interface {
	// Report is called with the downloaded fraction in [0, 1].
	Report(fraction float64)
	// Complete is called once the download has finished.
	Complete()
}

// PercentReporter turns download fractions into whole percentages for a renderer.
// Emitted percentages strictly increase, 100 is emitted exactly once,
// and nothing is emitted after it. It is not safe for concurrent use.
type PercentReporter struct {
	// render draws a percentage.
	render func(percent int)
	// last is the last emitted percentage.
	last int
	// started is set once the first percentage has been emitted.
	started bool
	// finished is set once 100 has been emitted.
	finished bool
}

// NewPercentReporter creates a reporter that passes percentages to render.
func NewPercentReporter(render func(percent int)) *PercentReporter {
	return &PercentReporter{render: render}
}

// Report converts fraction to a rounded percentage and renders it if it moves forward.
func (r *PercentReporter) Report(fraction float64) {
	if r.finished || math.IsNaN(fraction) {
		return
	}

	fraction = math.Max(0, math.Min(1, fraction))
	percent := int(math.Round(fraction * 100))

	if r.started && percent <= r.last {
		return
	}

	r.started = true
	r.last = percent

	if r.render != nil {
		r.render(percent)
	}

	if percent == 100 {
		r.finished = true
	}
}

// Complete renders 100 unless it was already rendered.
func (r *PercentReporter) Complete() {
	r.Report(1)
}

// Finished reports whether 100 has been rendered.
func (r *PercentReporter) Finished() bool {
	return r.finished
}

// progressWriter counts bytes written through it and reports the fraction of total.
type progressWriter struct {
	// total is the announced size, non-positive when unknown.
	total int64
	// written is the number of bytes seen so far.
	written int64
	// progress receives the fractions.
	progress Progress
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))

	if w.total > 0 {
		w.progress.Report(float64(w.written) / float64(w.total))
	}

	return len(p), nil
}

// discardProgress ignores progress.
type discardProgress struct{}

func (discardProgress) Report(float64) {}

func (discardProgress) Complete() {}
