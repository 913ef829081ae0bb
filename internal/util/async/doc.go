// Package async runs independent operations concurrently with a bound on
// how many are in flight.
//
// It is used to upload the files of a synthesized cloud assembly in
// parallel. Construct declaration itself stays sequential because the jsii
// runtime is not safe for concurrent use.
package async
