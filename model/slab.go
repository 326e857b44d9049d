package model

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/refmetry/uncert/errs"
)

// Layer describes one medium of a slab stack.
//
// SLD is the real scattering length density in 1e-6 Å⁻², Thickness is in Å,
// and Roughness is the Gaussian roughness (Å) of the layer's top interface,
// i.e. the interface to the medium above it.
type Layer struct {
	SLD       float64
	Thickness float64
	Roughness float64
}

// Slab is a specular reflectivity model of a layered sample.
//
// Reflectivity is computed with the Parratt/Abeles recursion, with
// Névot-Croce damping of each Fresnel coefficient for interfacial roughness.
// The model parameter vector consists of [SLD, Thickness] pairs for each film
// layer, in order; fronting, substrate, scale, background, and all roughness
// values are fixed structural properties. This matches the usual fitting
// setup where only the film SLDs and thicknesses vary.
type Slab struct {
	// Fronting is the semi-infinite incident medium (e.g. air or D2O).
	// Its Thickness and Roughness are ignored.
	Fronting Layer
	// Layers are the film layers between fronting and substrate.
	Layers []Layer
	// Substrate is the semi-infinite backing medium. Thickness is ignored;
	// Roughness applies to the film/substrate interface.
	Substrate Layer
	// Scale multiplies the computed reflectivity.
	Scale float64
	// Background is an additive constant background.
	Background float64
}

var _ Model = (*Slab)(nil)

// slabMedium is one entry of the resolved media stack used by the recursion.
type slabMedium struct {
	sld   float64 // 1e-6 Å⁻²
	thick float64 // Å
	rough float64 // roughness of the interface to the medium above, Å
}

// NewSlab creates a slab model with the given film layers, unit scale,
// and zero background.
func NewSlab(fronting Layer, layers []Layer, substrate Layer) *Slab {
	return &Slab{
		Fronting:  fronting,
		Layers:    layers,
		Substrate: substrate,
		Scale:     1.0,
	}
}

// NumParams returns 2*len(Layers): an [SLD, Thickness] pair per film layer.
func (s *Slab) NumParams() int {
	return 2 * len(s.Layers)
}

// Params returns the current [SLD, Thickness] pairs of the film layers as a
// parameter vector, suitable as the linearization point for a Fisher analysis.
func (s *Slab) Params() []float64 {
	params := make([]float64, 0, s.NumParams())
	for _, l := range s.Layers {
		params = append(params, l.SLD, l.Thickness)
	}

	return params
}

// Eval computes the specular reflectivity at each momentum transfer value in
// q (Å⁻¹), with the film SLDs and thicknesses taken from params.
//
// The receiver is not modified; params only overrides the film layer values
// for this evaluation.
func (s *Slab) Eval(params, q []float64) ([]float64, error) {
	if len(params) != s.NumParams() {
		return nil, fmt.Errorf("%w: slab with %d layers expects %d parameters, got %d",
			errs.ErrDimensionMismatch, len(s.Layers), s.NumParams(), len(params))
	}

	// Media stack: fronting, film layers (with overridden SLD/thickness), substrate.
	media := make([]slabMedium, 0, len(s.Layers)+2)
	media = append(media, slabMedium{sld: s.Fronting.SLD})
	for i, l := range s.Layers {
		media = append(media, slabMedium{
			sld:   params[2*i],
			thick: params[2*i+1],
			rough: l.Roughness,
		})
	}
	media = append(media, slabMedium{sld: s.Substrate.SLD, rough: s.Substrate.Roughness})

	out := make([]float64, len(q))
	kz := make([]complex128, len(media))
	for i, qi := range q {
		out[i] = s.Scale*reflectivity(media, kz, qi) + s.Background
	}

	return out, nil
}

// reflectivity runs the Parratt recursion for a single q point.
// kz is caller-provided scratch of length len(media).
func reflectivity(media []slabMedium, kz []complex128, q float64) float64 {
	kz0 := q / 2
	front := media[0].sld

	// Perpendicular wavevector in each medium, relative to the fronting.
	for m := range media {
		kz[m] = cmplx.Sqrt(complex(kz0*kz0-4*math.Pi*(media[m].sld-front)*1e-6, 0))
	}

	// Recurse from the substrate interface upward.
	r := complex(0, 0)
	for m := len(media) - 2; m >= 0; m-- {
		below := media[m+1]

		// Névot-Croce damped Fresnel coefficient for interface m / m+1.
		f := (kz[m] - kz[m+1]) / (kz[m] + kz[m+1])
		f *= cmplx.Exp(-2 * kz[m] * kz[m+1] * complex(below.rough*below.rough, 0))

		// Phase across the medium below; the semi-infinite substrate has none.
		phase := complex(1, 0)
		if m+1 < len(media)-1 {
			phase = cmplx.Exp(2i * kz[m+1] * complex(below.thick, 0))
		}

		r = (f + r*phase) / (1 + f*r*phase)
	}

	re := cmplx.Abs(r)

	return re * re
}
