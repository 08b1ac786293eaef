package apply

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

type fakeAccount struct {
	uid                  int
	group                string
	comment, home, shell string
}

// fakeHost is a Runner backed by in-memory account and package databases.
type fakeHost struct {
	groups   map[string]int
	users    map[string]fakeAccount
	packages map[string]string
	updates  map[string]string
	// failing makes commands starting with the key fail.
	failing map[string]bool
	calls   []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		groups:   map[string]int{"root": 0},
		users:    map[string]fakeAccount{},
		packages: map[string]string{},
		updates:  map[string]string{},
		failing:  map[string]bool{},
	}
}

var mutating = []string{"groupadd", "groupmod", "groupdel", "useradd", "usermod", "userdel"}

// mutations returns the calls that change host state.
func (h *fakeHost) mutations() []string {
	var out []string
	for _, c := range h.calls {
		name, args, _ := strings.Cut(c, " ")
		if slices.Contains(mutating, name) ||
			(name == "yum" && !strings.HasPrefix(args, "-q check-update")) {
			out = append(out, c)
		}
	}
	return out
}

func exitErr(code int, cmd string) error {
	return &CommandError{Command: cmd, ExitCode: code, Err: fmt.Errorf("exit status %d", code)}
}

func (h *fakeHost) Run(_ context.Context, name string, args ...string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	h.calls = append(h.calls, cmd)
	for prefix := range h.failing {
		if strings.HasPrefix(cmd, prefix) {
			return "boom", exitErr(1, cmd)
		}
	}

	switch name {
	case "getent":
		return h.getent(cmd, args[0], args[1])
	case "groupadd", "groupmod":
		gid, _ := strconv.Atoi(args[1])
		h.groups[args[2]] = gid
	case "groupdel":
		delete(h.groups, args[0])
	case "useradd", "usermod":
		user := args[len(args)-1]
		acct := h.users[user]
		for i := 0; i < len(args)-1; i++ {
			switch args[i] {
			case "-u":
				acct.uid, _ = strconv.Atoi(args[i+1])
			case "-g":
				acct.group = args[i+1]
			case "-c":
				acct.comment = args[i+1]
			case "-d":
				acct.home = args[i+1]
			case "-s":
				acct.shell = args[i+1]
			}
		}
		h.users[user] = acct
	case "userdel":
		delete(h.users, args[0])
	case "rpm":
		return h.rpmQuery(cmd, args[1])
	case "yum":
		return h.yum(cmd, args)
	default:
		return "", &CommandError{Command: cmd, ExitCode: -1, Err: os.ErrNotExist}
	}
	return "", nil
}

func (h *fakeHost) getent(cmd, db, key string) (string, error) {
	switch db {
	case "group":
		for name, gid := range h.groups {
			if name == key || strconv.Itoa(gid) == key {
				return fmt.Sprintf("%s:x:%d:\n", name, gid), nil
			}
		}
	case "passwd":
		if a, ok := h.users[key]; ok {
			gid := h.groups[a.group]
			return fmt.Sprintf("%s:x:%d:%d:%s:%s:%s\n", key, a.uid, gid, a.comment, a.home, a.shell), nil
		}
	}
	return "", exitErr(getentNotFound, cmd)
}

func (h *fakeHost) rpmQuery(cmd, spec string) (string, error) {
	for name, version := range h.packages {
		if spec == name || spec == name+"-"+version {
			return name + "-" + version + ".x86_64\n", nil
		}
	}
	return fmt.Sprintf("package %s is not installed\n", spec), exitErr(1, cmd)
}

func (h *fakeHost) yum(cmd string, args []string) (string, error) {
	if args[0] == "-q" {
		if _, ok := h.updates[args[2]]; ok {
			return "", exitErr(yumUpdatesAvailable, cmd)
		}
		return "", nil
	}
	spec := args[len(args)-1]
	switch args[0] {
	case "install", "downgrade":
		name, version := splitSpec(spec)
		h.packages[name] = version
	case "update":
		h.packages[spec] = h.updates[spec]
		delete(h.updates, spec)
	case "remove":
		delete(h.packages, spec)
	}
	return "", nil
}

// selfOwners maps every name to the current process ids so chown succeeds
// without privileges.
type selfOwners struct {
	missing map[string]bool
}

func (o selfOwners) LookupUser(name string) (int, error) {
	if o.missing[name] {
		return 0, errors.New("unknown user " + name)
	}
	return os.Getuid(), nil
}

func (o selfOwners) LookupGroup(name string) (int, error) {
	if o.missing[name] {
		return 0, errors.New("unknown group " + name)
	}
	return os.Getgid(), nil
}

// splitSpec splits name-version at the first dash followed by a digit.
func splitSpec(spec string) (name, version string) {
	for i := 0; i < len(spec)-1; i++ {
		if spec[i] == '-' && spec[i+1] >= '0' && spec[i+1] <= '9' {
			return spec[:i], spec[i+1:]
		}
	}
	return spec, "1.0"
}
