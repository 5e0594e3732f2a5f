// based on:
// http://www.brucelindbloom.com/index.html?Eqn_DeltaE_CIE76.html
// http://www.brucelindbloom.com/index.html?Eqn_DeltaE_CIE94.html
// https://doi.org/10.1002/col.20070 (Sharma, Wu, Dalal: CIEDE2000 notes)

package cielab

import "math"

// DeltaE76 is plain Euclidean distance in Lab. Cheapest, least accurate.
func DeltaE76(reference, sample Lab) float64 {
	dL := reference.L - sample.L
	dA := reference.A - sample.A
	dB := reference.B - sample.B
	return math.Sqrt(dL*dL + dA*dA + dB*dB)
}

// DeltaE94Graphics is the CIE94 formula with the graphic-arts tolerances
// (kL=1, K1=0.045, K2=0.015).
func DeltaE94Graphics(reference, sample Lab) float64 {
	return deltaE94(reference, sample, 1, 0.045, 0.015)
}

// DeltaE94Textiles is the CIE94 formula with the textile tolerances
// (kL=2, K1=0.048, K2=0.014).
func DeltaE94Textiles(reference, sample Lab) float64 {
	return deltaE94(reference, sample, 2, 0.048, 0.014)
}

// deltaE94 weighs chroma and hue differences by the chroma of the reference
// color, so the formula is not symmetric in its arguments.
func deltaE94(reference, sample Lab, kL, k1, k2 float64) float64 {
	dL := reference.L - sample.L
	c1 := math.Hypot(reference.A, reference.B)
	c2 := math.Hypot(sample.A, sample.B)
	dC := c1 - c2
	dA := reference.A - sample.A
	dB := reference.B - sample.B

	// dH^2 can dip below zero by a rounding hair
	dH2 := dA*dA + dB*dB - dC*dC
	if dH2 < 0 {
		dH2 = 0
	}

	sC := 1 + k1*c1
	sH := 1 + k2*c1

	lTerm := dL / kL
	cTerm := dC / sC
	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + dH2/(sH*sH))
}

const pow7of25 = 25 * 25 * 25 * 25 * 25 * 25 * 25

// DeltaE2000 is the full CIEDE2000 formula, with kL=kC=kH=1. Most accurate,
// most expensive.
func DeltaE2000(reference, sample Lab) float64 {
	lBar := (reference.L + sample.L) / 2
	c1 := math.Hypot(reference.A, reference.B)
	c2 := math.Hypot(sample.A, sample.B)
	cBar := (c1 + c2) / 2
	cBar7 := pow7(cBar)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+pow7of25)))

	a1p := (1 + g) * reference.A
	a2p := (1 + g) * sample.A
	c1p := math.Hypot(a1p, reference.B)
	c2p := math.Hypot(a2p, sample.B)
	cBarP := (c1p + c2p) / 2
	h1p := hueDegrees(reference.B, a1p)
	h2p := hueDegrees(sample.B, a2p)

	var dhp float64
	switch {
	case c1p*c2p == 0:
		dhp = 0
	case math.Abs(h2p-h1p) <= 180:
		dhp = h2p - h1p
	case h2p-h1p > 180:
		dhp = h2p - h1p - 360
	default:
		dhp = h2p - h1p + 360
	}

	dLp := sample.L - reference.L
	dCp := c2p - c1p
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(radians(dhp)/2)

	var hBarP float64
	switch {
	case c1p*c2p == 0:
		hBarP = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		hBarP = (h1p + h2p) / 2
	case h1p+h2p < 360:
		hBarP = (h1p + h2p + 360) / 2
	default:
		hBarP = (h1p + h2p - 360) / 2
	}

	t := 1 - 0.17*math.Cos(radians(hBarP-30)) + 0.24*math.Cos(radians(2*hBarP)) +
		0.32*math.Cos(radians(3*hBarP+6)) - 0.20*math.Cos(radians(4*hBarP-63))
	dTheta := 30 * math.Exp(-sq((hBarP-275)/25))
	cBarP7 := pow7(cBarP)
	rC := 2 * math.Sqrt(cBarP7/(cBarP7+pow7of25))
	lTerm := sq(lBar - 50)
	sL := 1 + 0.015*lTerm/math.Sqrt(20+lTerm)
	sC := 1 + 0.045*cBarP
	sH := 1 + 0.015*cBarP*t
	rT := -math.Sin(radians(2*dTheta)) * rC

	return math.Sqrt(sq(dLp/sL) + sq(dCp/sC) + sq(dHp/sH) + rT*(dCp/sC)*(dHp/sH))
}

// hueDegrees returns atan2 normalized to [0,360).
func hueDegrees(b, aPrime float64) float64 {
	if b == 0 && aPrime == 0 {
		return 0
	}
	deg := math.Atan2(b, aPrime) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func sq(x float64) float64 {
	return x * x
}

func pow7(x float64) float64 {
	x3 := x * x * x
	return x3 * x3 * x
}
