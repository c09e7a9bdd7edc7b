// Package host defines the node-graph API of the content-creation host.
//
// Every geometry operation (import, remeshing, UV flattening, export) is done by the host's own node types.
// This module only creates nodes, connects their inputs and sets their parameters. Nodes are addressed by path,
// so a path held by a caller is a weak reference: once the owning container is destroyed the path no longer
// resolves and the host answers with ErrNodeNotFound.
package host
