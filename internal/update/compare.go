package update

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
)

// Decision is the comparator's verdict on a version pair.
type Decision struct {
	Needed bool
	Reason string
}

// Compare decides whether an update is needed given the installed version
// (empty means not installed) and the latest remote version (which may be
// UnknownVersion).
//
// When both sides parse as semantic versions, an update is needed iff latest
// is strictly greater. When either side fails to parse, the comparison
// degrades to raw string inequality rather than failing. Force always wins.
func Compare(installed, latest string, force bool) Decision {
	if force {
		return Decision{Needed: true, Reason: "forced"}
	}
	if installed == "" {
		return Decision{Needed: true, Reason: "not installed"}
	}
	if latest == UnknownVersion {
		return Decision{Needed: true, Reason: "latest version unknown"}
	}

	installedVer, errInstalled := semver.NewVersion(installed)
	latestVer, errLatest := semver.NewVersion(latest)
	if errInstalled != nil || errLatest != nil {
		log.Warnf("could not compare versions semantically (%q vs %q), falling back to string comparison", installed, latest)
		if installed != latest {
			return Decision{Needed: true, Reason: fmt.Sprintf("versions differ: %s vs %s", installed, latest)}
		}
		return Decision{Needed: false, Reason: "versions identical"}
	}

	if latestVer.GreaterThan(installedVer) {
		return Decision{Needed: true, Reason: fmt.Sprintf("%s is newer than %s", latest, installed)}
	}
	return Decision{Needed: false, Reason: "already up to date"}
}
