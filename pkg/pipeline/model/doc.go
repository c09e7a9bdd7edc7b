// Package model provides the data structures shared by the pipeline builder and its options.
// It defines the record kept for every node the builder creates and the hooks a build option implements.
package model
