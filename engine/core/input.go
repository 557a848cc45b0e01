package core

import "maps"

// Input carries the payload injected into a workflow run.
type Input map[string]any

// Output carries opaque result data produced by a run.
type Output map[string]any

func (i Input) AsMap() map[string]any {
	if i == nil {
		return nil
	}
	out := make(map[string]any, len(i))
	maps.Copy(out, i)
	return out
}
