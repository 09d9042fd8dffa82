package loudness

import "math"

// biquad is a transposed direct form II section with a0 normalized to 1.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	d0, d1     float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.d0
	f.d0 = f.b1*x - f.a1*y + f.d1
	f.d1 = f.b2*x - f.a2*y

	return y
}

func (f *biquad) reset() {
	f.d0, f.d1 = 0, 0
}

func normalized(b0, b1, b2, a0, a1, a2 float64) biquad {
	return biquad{b0: b0 / a0, b1: b1 / a0, b2: b2 / a0, a1: a1 / a0, a2: a2 / a0}
}

// highShelf designs an RBJ high shelf.
func highShelf(freq, gainDB, q, sampleRate float64) biquad {
	w0 := 2 * math.Pi * freq / sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	return normalized(
		a*((a+1)+(a-1)*cw+beta),
		-2*a*((a-1)+(a+1)*cw),
		a*((a+1)+(a-1)*cw-beta),
		(a+1)-(a-1)*cw+beta,
		2*((a-1)-(a+1)*cw),
		(a+1)-(a-1)*cw-beta,
	)
}

// highpass designs an RBJ second-order high-pass.
func highpass(freq, q, sampleRate float64) biquad {
	w0 := 2 * math.Pi * freq / sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)

	return normalized((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)
}

// kWeighting is the BS.1770 pre-filter: a +4 dB shelf followed by a 38 Hz
// high-pass.
type kWeighting struct {
	shelf biquad
	hpf   biquad
}

func newKWeighting(sampleRate float64) kWeighting {
	q := 1 / math.Sqrt2

	return kWeighting{
		shelf: highShelf(kWeightingShelfFreq, kWeightingShelfGain, q, sampleRate),
		hpf:   highpass(kWeightingHpfFreq, q, sampleRate),
	}
}

func (k *kWeighting) process(x float64) float64 {
	return k.hpf.process(k.shelf.process(x))
}

func (k *kWeighting) reset() {
	k.shelf.reset()
	k.hpf.reset()
}
