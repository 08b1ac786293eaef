// Package catalog holds the desired-state resources produced by one compile,
// grouped in ordered stages. Resources are plain data; an applier or a node
// agent reconciles them onto a host.
package catalog

import "fmt"

// Kind is the type of a declared resource.
type Kind string

const (
	KindGroup   Kind = "group"
	KindUser    Kind = "user"
	KindPackage Kind = "package"
	KindFile    Kind = "file"
)

// Ensure values. Packages may also carry a version string as their ensure.
const (
	EnsurePresent   = "present"
	EnsureAbsent    = "absent"
	EnsureLatest    = "latest"
	EnsureDirectory = "directory"
	EnsureFile      = "file"
	EnsureLink      = "link"
)

// Resource is one declared resource. Exactly one of the typed attribute
// blocks is set, matching Kind.
type Resource struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`

	Group   *Group   `json:"group,omitempty"`
	User    *User    `json:"user,omitempty"`
	Package *Package `json:"package,omitempty"`
	File    *File    `json:"file,omitempty"`
}

// ID returns the resource identity, for example `file[/app/storm]`.
func (r Resource) ID() string {
	return fmt.Sprintf("%s[%s]", r.Kind, r.Title)
}

// Group is a system group.
type Group struct {
	Ensure string `json:"ensure"`
	GID    int    `json:"gid"`
}

// User is a system account. GID names the primary group.
type User struct {
	Ensure     string `json:"ensure"`
	UID        int    `json:"uid"`
	GID        string `json:"gid"`
	Home       string `json:"home"`
	Shell      string `json:"shell"`
	Comment    string `json:"comment"`
	ManageHome bool   `json:"managehome"`
}

// Package is an installable OS package.
type Package struct {
	Ensure string `json:"ensure"`
}

// File is a regular file, directory or symbolic link.
type File struct {
	Ensure string `json:"ensure"`
	Owner  string `json:"owner,omitempty"`
	Group  string `json:"group,omitempty"`
	Mode   string `json:"mode,omitempty"`
	// Recurse applies ownership and mode to everything below a directory.
	Recurse bool `json:"recurse,omitempty"`
	// RecurseLimit bounds the recursion depth; 0 means no limit.
	RecurseLimit int    `json:"recurselimit"`
	Target       string `json:"target,omitempty"`
	Content      string `json:"content,omitempty"`
}

// NewGroup declares a present group.
func NewGroup(name string, gid int) Resource {
	return Resource{Kind: KindGroup, Title: name, Group: &Group{Ensure: EnsurePresent, GID: gid}}
}

// NewUser declares a present user.
func NewUser(name string, u User) Resource {
	if u.Ensure == "" {
		u.Ensure = EnsurePresent
	}
	return Resource{Kind: KindUser, Title: name, User: &u}
}

// NewPackage declares a package with the given ensure.
func NewPackage(name, ensure string) Resource {
	return Resource{Kind: KindPackage, Title: name, Package: &Package{Ensure: ensure}}
}

// NewFile declares a file, directory or link at path.
func NewFile(path string, f File) Resource {
	return Resource{Kind: KindFile, Title: path, File: &f}
}
