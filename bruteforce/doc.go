// Package bruteforce answers range and kNN queries by scanning every stored
// record. It is the oracle that tree-backed indexes are cross-checked
// against.
package bruteforce
