// Package pipeline builds the fixed node networks of the tool inside a host.
//
// A Builder creates nodes one after the other: root nodes read nothing, steps read a single input, selectors read
// several inputs and pass one through, references read another network by path and sinks end a chain. Every node
// is validated through its typed operator configuration before it is created, so the build stops on the first
// invalid configuration or host failure.
//
// Build options observe each node as it is created. The drawer option renders the network as a DOT file, the
// measure option records construction durations and LogNodes writes one log line per node.
//
// BuildRemesh and BuildUV assemble the two networks on top of these primitives.
package pipeline
