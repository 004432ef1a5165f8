/*
Copyright © 2026 the CarbSolve authors.
This file is part of CarbSolve.

CarbSolve is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

CarbSolve is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with CarbSolve.  If not, see <http://www.gnu.org/licenses/>.
*/

package carbsolve

import "math"

// rGas is the gas constant [ml bar K-1 mol-1] (CODATA 2018).
const rGas = 83.14462618

// oneAtmBar is one standard atmosphere [bar].
const oneAtmBar = 1.01325

// Ks holds the equilibrium constants and related factors for one sample at
// one temperature, salinity and pressure. Stoichiometric dissociation
// constants are expressed on the pH scale requested in Options, except
// KSO4 and KF which are on the Free scale because they define the scale
// conversions themselves. A Ks is built once per sample and not modified
// afterwards.
type Ks struct {
	K0   float64 // CO2 solubility [mol kg-1 atm-1]
	K1   float64 // carbonic acid, first
	K2   float64 // carbonic acid, second
	KW   float64 // water
	KB   float64 // boric acid
	KF   float64 // hydrogen fluoride (Free scale)
	KSO4 float64 // bisulfate (Free scale)
	KP1  float64 // phosphoric acid, first
	KP2  float64 // phosphoric acid, second
	KP3  float64 // phosphoric acid, third
	KSi  float64 // silicic acid
	KNH3 float64 // ammonium
	KH2S float64 // hydrogen sulfide

	KCa float64 // calcite solubility product [mol2 kg-2]
	KAr float64 // aragonite solubility product [mol2 kg-2]

	FugFac float64 // fugacity factor converting pCO2 to fCO2
	FH     float64 // hydrogen ion activity coefficient ratio (NBS scale)
}

// AssembleKs evaluates every equilibrium constant at the given in-situ
// temperature [°C], pressure [dbar] and the salinity carried by t, using
// the formulations selected in o, and expresses them on the pH scale
// o.Scale.
func AssembleKs(tempC, pDbar float64, t Totals, o Options) Ks {
	tempK := TempCToK(tempC)
	pBar := PresDbarToBar(pDbar)
	sal := t.Sal

	var k Ks
	k.K0 = kCO2Weiss74(tempK, sal)
	k.FH = fH(tempK, sal, o.FH)
	k.FugFac = fugacityFactor(tempK)

	// KSO4 and KF live on the Free scale; they are needed first because
	// they define the scale conversion factors.
	k.KSO4 = kBisulfate(tempK, sal, o.Bisulfate)
	k.KF = kFluoride(tempK, sal, o.Fluoride)
	if o.Fluoride == FluoridePerezFraga87 {
		// Perez & Fraga report KF on the Total scale.
		k.KF /= freeToTot(t, k)
	}

	// Assemble the remaining constants on the Seawater scale at surface
	// pressure. Formulations native to the Total scale are converted
	// using the surface-pressure factors.
	surfSWSToTot := swsToTot(t, k)
	k.K1, k.K2 = kCarbonic(tempK, sal, o.Carbonic)
	if o.Carbonic == CarbonicLueker00 {
		k.K1 /= surfSWSToTot
		k.K2 /= surfSWSToTot
	}
	k.KB = kBorateDickson90(tempK, sal) / surfSWSToTot
	k.KW = kWaterMillero95(tempK, sal)
	k.KP1, k.KP2, k.KP3 = kPhosphoricYao95(tempK, sal)
	k.KSi = kSilicateYao95(tempK, sal)
	k.KNH3 = kAmmoniaClegg95(tempK, sal)
	k.KH2S = kSulfideMillero88(tempK, sal) / surfSWSToTot

	k.KCa = kCalciteMucci83(tempK, sal)
	k.KAr = kAragoniteMucci83(tempK, sal)

	if pBar > 0 {
		applyPressureCorrections(&k, tempC, pBar, tempK)
	}

	// Convert from the Seawater scale to the requested working scale,
	// using the pressure-corrected sulfate and fluoride constants.
	var scaleFac float64
	switch o.Scale {
	case ScaleTotal:
		scaleFac = swsToTot(t, k)
	case ScaleSeawater:
		scaleFac = 1
	case ScaleFree:
		scaleFac = 1 / freeToSWS(t, k)
	case ScaleNBS:
		scaleFac = k.FH
	default:
		scaleFac = math.NaN()
	}
	k.K1 *= scaleFac
	k.K2 *= scaleFac
	k.KW *= scaleFac
	k.KB *= scaleFac
	k.KP1 *= scaleFac
	k.KP2 *= scaleFac
	k.KP3 *= scaleFac
	k.KSi *= scaleFac
	k.KNH3 *= scaleFac
	k.KH2S *= scaleFac
	return k
}

// ionicStrength approximates the ionic strength of seawater
// [mol kg-H2O-1] from practical salinity.
func ionicStrength(sal float64) float64 {
	return 19.924 * sal / (1000 - 1.005*sal)
}

// molinityFactor converts constants reported per kg of pure water to per
// kg of seawater.
func molinityFactor(sal float64) float64 { return 1 - 0.001005*sal }

// kCO2Weiss74 is the CO2 solubility of Weiss (1974) [mol kg-1 atm-1].
func kCO2Weiss74(tempK, sal float64) float64 {
	tr := tempK / 100
	lnK0 := -60.2409 + 93.4517/tr + 23.3585*math.Log(tr) +
		sal*(0.023517-0.023656*tr+0.0047036*tr*tr)
	return math.Exp(lnK0)
}

func fH(tempK, sal float64, opt FHOpt) float64 {
	if opt == FHPeng87 {
		return fHPeng87(tempK, sal)
	}
	return fHTakahashi82(tempK, sal)
}

// fugacityFactor converts CO2 partial pressure to fugacity at a total
// pressure of one atmosphere, from the virial coefficients of Weiss (1974).
func fugacityFactor(tempK float64) float64 {
	delta := 57.7 - 0.118*tempK // cm3 mol-1
	b := -1636.75 + 12.0408*tempK - 0.0327957*tempK*tempK +
		3.16528e-5*tempK*tempK*tempK // cm3 mol-1
	return math.Exp((b + 2*delta) * oneAtmBar / (rGas * tempK))
}

// kCarbonic returns the carbonic acid dissociation constants K1 and K2 on
// the formulation's native pH scale (Total for Lueker, Seawater
// otherwise).
func kCarbonic(tempK, sal float64, opt CarbonicOpt) (k1, k2 float64) {
	lnT := math.Log(tempK)
	switch opt {
	case CarbonicDickson87:
		// Mehrbach et al. (1973) refit by Dickson & Millero (1987).
		pK1 := 3670.7/tempK - 62.008 + 9.7944*lnT -
			0.0118*sal + 0.000116*sal*sal
		pK2 := 1394.7/tempK + 4.777 - 0.0184*sal + 0.000118*sal*sal
		return math.Pow(10, -pK1), math.Pow(10, -pK2)
	case CarbonicMillero10:
		sqrtSal := math.Sqrt(sal)
		pK1 := -126.34048 + 6320.813/tempK + 19.568224*lnT +
			13.4038*sqrtSal + 0.03206*sal - 5.242e-5*sal*sal +
			(-530.659*sqrtSal-5.8210*sal)/tempK +
			-2.0664*sqrtSal*lnT
		pK2 := -90.18333 + 5143.692/tempK + 14.613358*lnT +
			21.3728*sqrtSal + 0.1218*sal - 3.688e-4*sal*sal +
			(-788.289*sqrtSal-19.189*sal)/tempK +
			-3.374*sqrtSal*lnT
		return math.Pow(10, -pK1), math.Pow(10, -pK2)
	default: // CarbonicLueker00
		pK1 := 3633.86/tempK - 61.2172 + 9.6777*lnT -
			0.011555*sal + 0.0001152*sal*sal
		pK2 := 471.78/tempK + 25.929 - 3.16967*lnT -
			0.01781*sal + 0.0001122*sal*sal
		return math.Pow(10, -pK1), math.Pow(10, -pK2)
	}
}

// kBorateDickson90 is the boric acid dissociation constant of Dickson
// (1990b), Total scale.
func kBorateDickson90(tempK, sal float64) float64 {
	sqrtSal := math.Sqrt(sal)
	lnKB := (-8966.90-2890.53*sqrtSal-77.942*sal+
		1.728*sal*sqrtSal-0.0996*sal*sal)/tempK +
		148.0248 + 137.1942*sqrtSal + 1.62142*sal +
		(-24.4344-25.085*sqrtSal-0.2474*sal)*math.Log(tempK) +
		0.053105*sqrtSal*tempK
	return math.Exp(lnKB)
}

// kWaterMillero95 is the water dissociation constant of Millero (1995),
// Seawater scale.
func kWaterMillero95(tempK, sal float64) float64 {
	lnT := math.Log(tempK)
	lnKW := 148.9802 - 13847.26/tempK - 23.6521*lnT +
		(-5.977+118.67/tempK+1.0495*lnT)*math.Sqrt(sal) - 0.01615*sal
	return math.Exp(lnKW)
}

// kBisulfate is the bisulfate dissociation constant on the Free scale
// [mol kg-1].
func kBisulfate(tempK, sal float64, opt BisulfateOpt) float64 {
	ionS := ionicStrength(sal)
	if opt == BisulfateKhoo77 {
		return math.Pow(10, 647.59/tempK-6.3451+0.019085*tempK-
			0.5208*math.Sqrt(ionS)) * molinityFactor(sal)
	}
	// Dickson (1990a).
	lnT := math.Log(tempK)
	sqrtIonS := math.Sqrt(ionS)
	lnKSO4 := -4276.1/tempK + 141.328 - 23.093*lnT +
		(-13856/tempK+324.57-47.986*lnT)*sqrtIonS +
		(35474/tempK-771.54+114.723*lnT)*ionS -
		2698/tempK*ionS*sqrtIonS + 1776/tempK*ionS*ionS
	return math.Exp(lnKSO4) * molinityFactor(sal)
}

// kFluoride is the hydrogen fluoride dissociation constant. The Dickson &
// Riley (1979) fit is on the Free scale; Perez & Fraga (1987) is on the
// Total scale and is converted by the caller.
func kFluoride(tempK, sal float64, opt FluorideOpt) float64 {
	if opt == FluoridePerezFraga87 {
		return math.Exp(874/tempK - 9.68 + 0.111*math.Sqrt(sal))
	}
	lnKF := 1590.2/tempK - 12.641 + 1.525*math.Sqrt(ionicStrength(sal))
	return math.Exp(lnKF) * molinityFactor(sal)
}

// kPhosphoricYao95 gives the three phosphoric acid dissociation constants
// of Yao & Millero (1995), Seawater scale.
func kPhosphoricYao95(tempK, sal float64) (kp1, kp2, kp3 float64) {
	sqrtSal := math.Sqrt(sal)
	lnT := math.Log(tempK)
	lnKP1 := -4576.752/tempK + 115.525 - 18.453*lnT +
		(-106.736/tempK+0.69171)*sqrtSal + (-0.65643/tempK-0.01844)*sal
	lnKP2 := -8814.715/tempK + 172.0883 - 27.927*lnT +
		(-160.340/tempK+1.3566)*sqrtSal + (0.37335/tempK-0.05778)*sal
	lnKP3 := -3070.75/tempK - 18.141 +
		(17.27039/tempK+2.81197)*sqrtSal + (-44.99486/tempK-0.09984)*sal
	return math.Exp(lnKP1), math.Exp(lnKP2), math.Exp(lnKP3)
}

// kSilicateYao95 is the silicic acid dissociation constant of Yao &
// Millero (1995), Seawater scale.
func kSilicateYao95(tempK, sal float64) float64 {
	ionS := ionicStrength(sal)
	sqrtIonS := math.Sqrt(ionS)
	lnKSi := -8904.2/tempK + 117.385 - 19.334*math.Log(tempK) +
		(-458.79/tempK+3.5913)*sqrtIonS + (188.74/tempK-1.5998)*ionS +
		(-12.1652/tempK+0.07871)*ionS*ionS
	return math.Exp(lnKSi) * molinityFactor(sal)
}

// kAmmoniaClegg95 is the ammonium dissociation constant of Clegg &
// Whitfield (1995), Seawater scale.
func kAmmoniaClegg95(tempK, sal float64) float64 {
	sqrtT := math.Sqrt(tempK)
	pKNH3 := 9.244605 - 2729.33*(1/298.15-1/tempK) +
		(0.04203362-11.24742/tempK)*math.Pow(sal, 0.25) +
		(-13.6416+1.176949*sqrtT-0.02860785*tempK-545.4834/tempK)*math.Sqrt(sal) +
		(-0.1462507+0.0090226468*sqrtT-0.0001471361*tempK+10.5425/tempK)*
			math.Pow(sal, 1.5) +
		(0.004669309-0.0001691742*sqrtT-0.5677934/tempK)*sal*sal +
		(-2.354039e-5+0.009698623/tempK)*math.Pow(sal, 2.5)
	return math.Pow(10, -pKNH3)
}

// kSulfideMillero88 is the hydrogen sulfide dissociation constant of
// Millero et al. (1988), Total scale.
func kSulfideMillero88(tempK, sal float64) float64 {
	lnKH2S := 225.838 - 13275.3/tempK - 34.6435*math.Log(tempK) +
		0.3449*math.Sqrt(sal) - 0.0274*sal
	return math.Exp(lnKH2S)
}

// kCalciteMucci83 is the calcite solubility product of Mucci (1983)
// [mol2 kg-2].
func kCalciteMucci83(tempK, sal float64) float64 {
	sqrtSal := math.Sqrt(sal)
	logKCa := -171.9065 - 0.077993*tempK + 2839.319/tempK +
		71.595*math.Log10(tempK) +
		(-0.77712+0.0028426*tempK+178.34/tempK)*sqrtSal -
		0.07711*sal + 0.0041249*sal*sqrtSal
	return math.Pow(10, logKCa)
}

// kAragoniteMucci83 is the aragonite solubility product of Mucci (1983)
// [mol2 kg-2].
func kAragoniteMucci83(tempK, sal float64) float64 {
	sqrtSal := math.Sqrt(sal)
	logKAr := -171.945 - 0.077993*tempK + 2903.293/tempK +
		71.595*math.Log10(tempK) +
		(-0.068393+0.0017276*tempK+88.135/tempK)*sqrtSal -
		0.10018*sal + 0.0059415*sal*sqrtSal
	return math.Pow(10, logKAr)
}

// pressureFactor is the Millero (1995) pressure correction
// exp((-ΔV + 0.5·κ·P)·P / (R·T)) for molal volume change ΔV
// [cm3 mol-1] and compressibility change κ [cm3 mol-1 bar-1].
func pressureFactor(deltaV, kappa, pBar, tempK float64) float64 {
	return math.Exp((-deltaV + 0.5*kappa*pBar) * pBar / (rGas * tempK))
}

// applyPressureCorrections adjusts the dissociation constants and
// solubility products to in-situ pressure following Millero (1995).
func applyPressureCorrections(k *Ks, tempC, pBar, tempK float64) {
	k.K1 *= pressureFactor(-25.50+0.1271*tempC,
		(-3.08+0.0877*tempC)/1000, pBar, tempK)
	k.K2 *= pressureFactor(-15.82-0.0219*tempC,
		(1.13-0.1475*tempC)/1000, pBar, tempK)
	k.KB *= pressureFactor(-29.48+0.1622*tempC+0.002608*tempC*tempC,
		-2.84/1000, pBar, tempK)
	k.KW *= pressureFactor(-20.02+0.1119*tempC-0.001409*tempC*tempC,
		(-5.13+0.0794*tempC)/1000, pBar, tempK)
	k.KF *= pressureFactor(-9.78-0.0090*tempC-0.000942*tempC*tempC,
		(-3.91+0.054*tempC)/1000, pBar, tempK)
	k.KSO4 *= pressureFactor(-18.03+0.0466*tempC+0.000316*tempC*tempC,
		(-4.53+0.09*tempC)/1000, pBar, tempK)
	k.KP1 *= pressureFactor(-14.51+0.1211*tempC-0.000321*tempC*tempC,
		(-2.67+0.0427*tempC)/1000, pBar, tempK)
	k.KP2 *= pressureFactor(-23.12+0.1758*tempC-0.002647*tempC*tempC,
		(-5.15+0.09*tempC)/1000, pBar, tempK)
	k.KP3 *= pressureFactor(-26.57+0.2020*tempC-0.003042*tempC*tempC,
		(-4.08+0.0714*tempC)/1000, pBar, tempK)
	// No dedicated fit exists for silicate; boric acid values are used,
	// as in CO2SYS.
	k.KSi *= pressureFactor(-29.48+0.1622*tempC+0.002608*tempC*tempC,
		-2.84/1000, pBar, tempK)
	k.KNH3 *= pressureFactor(-26.43+0.0889*tempC-0.000905*tempC*tempC,
		(-5.03+0.0814*tempC)/1000, pBar, tempK)
	k.KH2S *= pressureFactor(-14.80+0.0020*tempC-0.000400*tempC*tempC,
		(2.89+0.054*tempC)/1000, pBar, tempK)
	k.KCa *= pressureFactor(-48.76+0.5304*tempC,
		(-11.76+0.3692*tempC)/1000, pBar, tempK)
	k.KAr *= pressureFactor(-48.76+0.5304*tempC+2.8,
		(-11.76+0.3692*tempC)/1000, pBar, tempK)
}
