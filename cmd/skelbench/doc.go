// Command skelbench times farms and pipelines on a CPU-bound workload and
// prints the results as tables.
//
//	skelbench farm --workers 8 --rounds 12
//	skelbench pipeline --stages 4 --farm-workers 8 --items 5000 --concurrent
//	skelbench describe --stages 3
//
// Settings come from skelbench.yml (or --config), SKELBENCH_* environment
// variables and flags, in increasing precedence.
package main
