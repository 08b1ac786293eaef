package apply

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
)

// getent exits 2 when the key is not in the database.
const getentNotFound = 2

// groupEntry is a parsed /etc/group line.
type groupEntry struct {
	Name string
	GID  int
}

// passwdEntry is a parsed /etc/passwd line.
type passwdEntry struct {
	Name    string
	UID     int
	GID     int
	Comment string
	Home    string
	Shell   string
}

func (a *Applier) lookupGroup(ctx context.Context, key string) (*groupEntry, error) {
	out, err := a.Runner.Run(ctx, "getent", "group", key)
	if err != nil {
		if exitCode(err) == getentNotFound {
			return nil, nil
		}
		return nil, err
	}
	fields := strings.Split(strings.TrimSpace(out), ":")
	if len(fields) < 3 {
		return nil, fmt.Errorf("unexpected group entry %q", strings.TrimSpace(out))
	}
	gid, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("unexpected gid in group entry %q: %w", strings.TrimSpace(out), err)
	}
	return &groupEntry{Name: fields[0], GID: gid}, nil
}

func (a *Applier) lookupUser(ctx context.Context, name string) (*passwdEntry, error) {
	out, err := a.Runner.Run(ctx, "getent", "passwd", name)
	if err != nil {
		if exitCode(err) == getentNotFound {
			return nil, nil
		}
		return nil, err
	}
	fields := strings.Split(strings.TrimSpace(out), ":")
	if len(fields) < 7 {
		return nil, fmt.Errorf("unexpected passwd entry %q", strings.TrimSpace(out))
	}
	uid, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("unexpected uid in passwd entry: %w", err)
	}
	gid, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("unexpected gid in passwd entry: %w", err)
	}
	return &passwdEntry{
		Name:    fields[0],
		UID:     uid,
		GID:     gid,
		Comment: fields[4],
		Home:    fields[5],
		Shell:   fields[6],
	}, nil
}

func (a *Applier) applyGroup(ctx context.Context, name string, g catalog.Group) ([]string, error) {
	current, err := a.lookupGroup(ctx, name)
	if err != nil {
		return nil, err
	}

	switch g.Ensure {
	case catalog.EnsureAbsent:
		if current == nil {
			return nil, nil
		}
		return []string{"removed"}, a.run(ctx, "groupdel", name)
	case catalog.EnsurePresent:
	default:
		return nil, fmt.Errorf("unsupported group ensure %q", g.Ensure)
	}

	if current == nil {
		return []string{fmt.Sprintf("created with gid %d", g.GID)},
			a.run(ctx, "groupadd", "-g", strconv.Itoa(g.GID), name)
	}
	if current.GID != g.GID {
		return []string{fmt.Sprintf("gid changed from %d to %d", current.GID, g.GID)},
			a.run(ctx, "groupmod", "-g", strconv.Itoa(g.GID), name)
	}
	return nil, nil
}

func (a *Applier) applyUser(ctx context.Context, name string, u catalog.User) ([]string, error) {
	current, err := a.lookupUser(ctx, name)
	if err != nil {
		return nil, err
	}

	switch u.Ensure {
	case catalog.EnsureAbsent:
		if current == nil {
			return nil, nil
		}
		return []string{"removed"}, a.run(ctx, "userdel", name)
	case catalog.EnsurePresent:
	default:
		return nil, fmt.Errorf("unsupported user ensure %q", u.Ensure)
	}

	if current == nil {
		args := []string{
			"-u", strconv.Itoa(u.UID),
			"-g", u.GID,
			"-c", u.Comment,
			"-d", u.Home,
			"-s", u.Shell,
		}
		if u.ManageHome {
			args = append(args, "-m")
		} else {
			args = append(args, "-M")
		}
		args = append(args, name)
		return []string{fmt.Sprintf("created with uid %d", u.UID)}, a.run(ctx, "useradd", args...)
	}

	var (
		actions []string
		args    []string
	)
	if current.UID != u.UID {
		actions = append(actions, fmt.Sprintf("uid changed from %d to %d", current.UID, u.UID))
		args = append(args, "-u", strconv.Itoa(u.UID))
	}
	if u.GID != "" {
		group, err := a.lookupGroup(ctx, u.GID)
		if err != nil {
			return nil, err
		}
		// In dry-run the primary group may not exist yet.
		if group == nil || group.GID != current.GID {
			actions = append(actions, fmt.Sprintf("primary group changed to %s", u.GID))
			args = append(args, "-g", u.GID)
		}
	}
	if current.Comment != u.Comment {
		actions = append(actions, fmt.Sprintf("comment changed from %q to %q", current.Comment, u.Comment))
		args = append(args, "-c", u.Comment)
	}
	if current.Home != u.Home {
		actions = append(actions, fmt.Sprintf("home changed from %s to %s", current.Home, u.Home))
		args = append(args, "-d", u.Home)
		if u.ManageHome {
			args = append(args, "-m")
		}
	}
	if current.Shell != u.Shell {
		actions = append(actions, fmt.Sprintf("shell changed from %s to %s", current.Shell, u.Shell))
		args = append(args, "-s", u.Shell)
	}
	if len(args) == 0 {
		return nil, nil
	}
	args = append(args, name)
	return actions, a.run(ctx, "usermod", args...)
}
