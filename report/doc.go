// Package report renders benchmark results and pipeline topologies as text.
package report
