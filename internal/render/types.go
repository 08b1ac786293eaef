package render

// TemplateName represents a known template filename.
type TemplateName string

// Constants for known template filenames.
const (
	TplClusterXML TemplateName = "cluster.xml.tmpl"
)

// ManagedBy names the tool in the banner of every rendered file.
const ManagedBy = "storm-operator"

// Banner is the comment block stamped at the top of rendered files.
const Banner = "###\n### This file is managed by " + ManagedBy + ".\n###"

// LogbackData holds the data required by the TplClusterXML template.
type LogbackData struct {
	Banner string
	LogDir string
}
