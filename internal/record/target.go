package record

// ModuleTargetStride is has_target, x, y, index
const ModuleTargetStride = 4

// ModuleTarget is the enemy a module should aim at. Found is false when there is none.
type ModuleTarget struct {
	Found bool
	X, Y  float64
	Index int
}

// NoTarget is the absent module target
var NoTarget = ModuleTarget{Index: -1}

// EncodeModuleTargets flattens targets, writing the 0, 0, 0, -1 sentinel for absent ones
func EncodeModuleTargets(ts []ModuleTarget) []float64 {
	out := make([]float64, 0, len(ts)*ModuleTargetStride)
	for _, t := range ts {
		if !t.Found {
			out = append(out, 0, 0, 0, -1)
			continue
		}
		out = append(out, 1, t.X, t.Y, float64(t.Index))
	}
	return out
}

// DecodeModuleTargets reads the flat form back, mapping the sentinel to an absent target
func DecodeModuleTargets(data []float64) []ModuleTarget {
	n := checkStride("module target", data, ModuleTargetStride)
	out := make([]ModuleTarget, n)
	for i := range out {
		o := i * ModuleTargetStride
		if !flag(data[o]) {
			out[i] = NoTarget
			continue
		}
		out[i] = ModuleTarget{Found: true, X: data[o+1], Y: data[o+2], Index: int(data[o+3])}
	}
	return out
}
