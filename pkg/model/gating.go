package model

// Gain and volume-metering support are gated by a device's model
// identifier, per spec.md §4.D. The identifiers below follow the
// DAIn/DAOn (Dante Audio Input/Output) naming scheme observed in
// original_source/dante.py's own model-id allow-list; the exact vendor
// identifiers for each feature were not recoverable from the retained
// source (const.py was filtered out of original_source), so these lists
// are a representative, documented placeholder rather than a guess at
// undocumented protocol behavior — operators should extend them to match
// the hardware actually on their network.

// GainAllowListInput lists model ids allowed to receive input gain changes.
var GainAllowListInput = []string{"DAI1", "DAI2"}

// GainAllowListOutput lists model ids allowed to receive output gain changes.
var GainAllowListOutput = []string{"DAO1", "DAO2"}

// VolumeUnsupportedModelIDs lists model ids known to lack volume metering.
var VolumeUnsupportedModelIDs = []string{"DVS"}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// GainSupported reports whether modelID may receive a gain change for the
// given direction.
func GainSupported(modelID string, direction GainDirection) bool {
	switch direction {
	case GainDirectionInput:
		return contains(GainAllowListInput, modelID)
	case GainDirectionOutput:
		return contains(GainAllowListOutput, modelID)
	default:
		return false
	}
}

// GainDirection mirrors wire.GainDirection without importing pkg/wire,
// keeping the model package free of a dependency on the wire layer.
type GainDirection string

const (
	GainDirectionInput  GainDirection = "input"
	GainDirectionOutput GainDirection = "output"
)

// VolumeSupported reports whether a device with the given model id and
// software tag supports volume metering. A non-empty software tag (a
// pure-software endpoint variant) always disables metering, per spec.md §4.D.
func VolumeSupported(modelID, software string) bool {
	if software != "" {
		return false
	}
	return !contains(VolumeUnsupportedModelIDs, modelID)
}
