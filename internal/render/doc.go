// Package render produces the two files a Storm node reads: storm.yaml,
// written line by line from ordered config entries, and the logback
// cluster.xml, rendered from an embedded template with sprig functions.
//
// Both renderers are pure; identical input gives byte-identical output.
//
// Example:
//
//	entries := settings.Entries()
//	stormYAML := render.Config(entries)
//	clusterXML, err := render.Logback(settings.LogDir)
//	if err != nil { return err }
package render
