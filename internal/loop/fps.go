package loop

// fpsWindowSize is the number of raw delta samples kept for the rolling
// FPS average.
const fpsWindowSize = 60

// fpsWindow tracks a rolling average of raw (pre-clamp) frame deltas.
// Used for telemetry and the adaptive controller's decisions only,
// never for simulation correctness.
type fpsWindow struct {
	samples [fpsWindowSize]float64
	next    int
	count   int
	sum     float64
}

// add records one raw delta sample, evicting the oldest when full.
func (w *fpsWindow) add(delta float64) {
	if delta < 0 {
		delta = 0
	}
	if w.count == fpsWindowSize {
		w.sum -= w.samples[w.next]
	} else {
		w.count++
	}
	w.samples[w.next] = delta
	w.sum += delta
	w.next = (w.next + 1) % fpsWindowSize
}

// fps returns the average frames per second over the window, or 0 when
// no time has been observed yet.
func (w *fpsWindow) fps() float64 {
	if w.count == 0 || w.sum <= 0 {
		return 0
	}
	return float64(w.count) / w.sum
}

// reset clears all samples.
func (w *fpsWindow) reset() {
	*w = fpsWindow{}
}
