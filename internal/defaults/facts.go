package defaults

import (
	"sort"

	"github.com/stormops/k8s-storm-operator-go/internal/params"
)

// Facts are the host facts that select OS-family defaults.
type Facts struct {
	OSFamily        string `json:"osfamily"`
	OperatingSystem string `json:"operatingsystem,omitempty"`
}

// osFamilyDefaults holds the values that differ per OS family.
type osFamilyDefaults struct {
	PackageName   string
	PackageEnsure string
}

var osFamilies = map[string]osFamilyDefaults{
	"RedHat": {
		PackageName:   "storm",
		PackageEnsure: "present",
	},
}

// CheckPlatform fails for any OS family without a defaults entry.
func CheckPlatform(facts Facts) error {
	if _, ok := osFamilies[facts.OSFamily]; !ok {
		return &params.UnsupportedPlatformError{Module: ModuleName, OSFamily: facts.OSFamily}
	}
	return nil
}

// SupportedOSFamilies lists the OS families with defaults.
func SupportedOSFamilies() []string {
	families := make([]string, 0, len(osFamilies))
	for f := range osFamilies {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}
