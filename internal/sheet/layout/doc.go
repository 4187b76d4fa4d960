// Package layout describes a sheet's fields declaratively and builds the
// form tree the engine runs against.
//
// A layout is a YAML document of titled sections, each listing fields with
// a name, label, kind, classification tags and default value. The Pip-Boy
// sheet ships embedded and is used when no layout file is configured.
package layout
