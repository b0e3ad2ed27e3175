// Package pod defines the ad pod domain model: the pod configuration that
// drives identity derivation and package generation, the uploaded-CPL working
// set the caller accumulates between upload and validation, and the persisted
// pod record.
package pod
