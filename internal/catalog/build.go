package catalog

import (
	"github.com/stormops/k8s-storm-operator-go/internal/defaults"
)

// Documents are the rendered files placed by the config stage.
type Documents struct {
	StormYAML  string
	ClusterXML string
}

// Build declares the resources for settings in three stages:
// users, then install, then config.
func Build(s *defaults.Settings, docs Documents) *Catalog {
	users := Stage{Name: StageUsers, Resources: []Resource{}}
	if s.User.Manage {
		users.Resources = append(users.Resources,
			NewGroup(s.User.Group, s.User.GID),
			NewUser(s.User.Name, User{
				UID:        s.User.UID,
				GID:        s.User.Group,
				Home:       s.User.Home,
				Shell:      s.User.Shell,
				Comment:    s.User.Description,
				ManageHome: s.User.ManageHome,
			}),
		)
	}

	install := Stage{
		Name:     StageInstall,
		Requires: []string{StageUsers},
		Resources: []Resource{
			NewPackage(s.Package.Name, s.Package.Ensure),
		},
	}
	if s.Graphite.Enable {
		install.Resources = append(install.Resources,
			NewPackage(s.Graphite.Package.Name, s.Graphite.Package.Ensure))
	}

	cfg := Stage{
		Name:     StageConfig,
		Requires: []string{StageInstall},
		Resources: []Resource{
			NewFile(s.LocalDir, File{
				Ensure:       EnsureDirectory,
				Owner:        s.User.Name,
				Group:        s.User.Group,
				Mode:         defaults.DefaultLocalDirMode,
				Recurse:      true,
				RecurseLimit: 0,
			}),
			NewFile(s.LogDir, File{
				Ensure: EnsureDirectory,
				Owner:  s.User.Name,
				Group:  s.User.Group,
				Mode:   defaults.DefaultLogDirMode,
			}),
			NewFile(s.LogsLink(), File{
				Ensure: EnsureLink,
				Target: s.LogDir,
			}),
			NewFile(s.Config, File{
				Ensure:  EnsureFile,
				Owner:   defaults.DefaultManagedFileOwner,
				Group:   defaults.DefaultManagedFileGroup,
				Mode:    defaults.DefaultManagedFileMode,
				Content: docs.StormYAML,
			}),
			NewFile(s.Logback, File{
				Ensure:  EnsureFile,
				Owner:   defaults.DefaultManagedFileOwner,
				Group:   defaults.DefaultManagedFileGroup,
				Mode:    defaults.DefaultManagedFileMode,
				Content: docs.ClusterXML,
			}),
		},
	}

	return &Catalog{Stages: []Stage{users, install, cfg}}
}
