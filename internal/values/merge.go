package values

import "github.com/stormops/k8s-storm-operator-go/internal/params"

// Merge merges parameter sets in order, with later sets overriding earlier
// ones. Values are replaced whole, hashes included. A nil value leaves the
// earlier value in place.
func Merge(layers ...params.Raw) params.Raw {
	result := params.Raw{}
	for _, layer := range layers {
		for k, v := range layer {
			if v == nil {
				if _, ok := result[k]; !ok {
					result[k] = nil
				}
				continue
			}
			result[k] = v
		}
	}
	return result
}
