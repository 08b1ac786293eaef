package apply

import (
	"fmt"
	"os/user"
	"strconv"
)

// Owners resolves account names to numeric ids.
type Owners interface {
	LookupUser(name string) (int, error)
	LookupGroup(name string) (int, error)
}

// SystemOwners resolves names through the host account database.
type SystemOwners struct{}

// LookupUser implements Owners. Numeric names are taken as ids.
func (SystemOwners) LookupUser(name string) (int, error) {
	if id, err := strconv.Atoi(name); err == nil {
		return id, nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return 0, fmt.Errorf("failed to look up user %q: %w", name, err)
	}
	return strconv.Atoi(u.Uid)
}

// LookupGroup implements Owners. Numeric names are taken as ids.
func (SystemOwners) LookupGroup(name string) (int, error) {
	if id, err := strconv.Atoi(name); err == nil {
		return id, nil
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, fmt.Errorf("failed to look up group %q: %w", name, err)
	}
	return strconv.Atoi(g.Gid)
}
