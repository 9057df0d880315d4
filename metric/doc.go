// Package metric supplies ready-made distance functions for the M-Tree:
// scalar and string metrics for simple element types, and float32 vector
// metrics backed by the SIMD kernels in github.com/viant/vec.
package metric
