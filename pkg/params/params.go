package params

import "fmt"

// Params are every knob that affects the produced prior. All of them are
// encoded into the output filename so distinct parameterizations never
// collide (see artifact.OutputName).
type Params struct {
	MotifWeight float64 // convex blend ratio for coexpression evidence
	MotifCutOff float64 // sparsification floor after imputation
	AddCorr     int     // 0 = no fusion; 1/3 zero the coexpression diagonal, 2/4 keep it
	AbsCoex     int     // carried in the filename; |coexpression| is always taken
	Thresh      float64 // binary binding threshold
	OldMotif    int
	IncCoverage int
	QPval       int

	// Interpreted by the PPI-expansion collaborator, not here. Filename only.
	BridgingProteins int

	AddChip int // 0 none, 1 positive overlay, 2 overlay with -1 baseline
	Ctrl    int // passthrough label, filename only
}

// UseThreshold reports whether the binary thresholding branch is active.
func (p Params) UseThreshold() bool {
	return p.OldMotif == 0 && p.IncCoverage == 1 && p.QPval == 0
}

// ZeroDiagonal maps the historical addCorr variants onto the one switch that
// actually distinguishes them.
func (p Params) ZeroDiagonal() bool {
	return p.AddCorr == 1 || p.AddCorr == 3
}

func (p Params) Validate() error {
	if p.MotifWeight < 0 || p.MotifWeight > 1 {
		return fmt.Errorf("motifWeight %v out of range [0,1]", p.MotifWeight)
	}
	if p.MotifCutOff < 0 || p.MotifCutOff > 1 {
		return fmt.Errorf("motifCutOff %v out of range [0,1]", p.MotifCutOff)
	}
	if p.AddCorr < 0 || p.AddCorr > 4 {
		return fmt.Errorf("addCorr %d out of range {0..4}", p.AddCorr)
	}
	if p.AbsCoex != 0 && p.AbsCoex != 1 {
		return fmt.Errorf("absCoex %d out of range {0,1}", p.AbsCoex)
	}
	if p.Thresh < 0 || p.Thresh > 1 {
		return fmt.Errorf("thresh %v out of range [0,1]", p.Thresh)
	}
	if p.OldMotif != 0 && p.OldMotif != 1 {
		return fmt.Errorf("oldMotif %d out of range {0,1}", p.OldMotif)
	}
	if p.IncCoverage != 0 && p.IncCoverage != 1 {
		return fmt.Errorf("incCoverage %d out of range {0,1}", p.IncCoverage)
	}
	if p.QPval != 0 && p.QPval != 1 {
		return fmt.Errorf("qpval %d out of range {0,1}", p.QPval)
	}
	if p.BridgingProteins < 0 || p.BridgingProteins > 7 {
		return fmt.Errorf("bridgingProteins %d out of range {0..7}", p.BridgingProteins)
	}
	if p.AddChip < 0 || p.AddChip > 2 {
		return fmt.Errorf("addChip %d out of range {0,1,2}", p.AddChip)
	}
	if p.Ctrl < 0 || p.Ctrl > 3 {
		return fmt.Errorf("ctrl %d out of range {0..3}", p.Ctrl)
	}
	return nil
}
