// Package registry is the single, process-wide, server-name-keyed owner
// of every model.Device this process has discovered. Nothing outside this
// package constructs or deletes a model.Device; every other package
// receives a *model.Device handle and looks up peers by server name
// through the registry rather than holding a direct reference, matching
// spec.md §9's "replace cyclic references with handle + lookup" design note.
package registry
