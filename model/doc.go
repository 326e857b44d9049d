// Package model defines the forward-model and dataset value types consumed by
// the uncertainty estimators.
//
// A Model maps a parameter vector and a set of design points (momentum
// transfer values, times, concentrations...) to a predicted observation
// vector. Models must be deterministic: repeated evaluation at identical
// inputs must produce identical outputs, otherwise finite-difference
// differentiation of the model is meaningless.
//
// A Dataset bundles the observed design points, the observed values, and the
// per-point measurement standard deviations. Datasets are read-only to every
// estimator in this module; construct them once per experiment.
//
// Two built-in models are provided:
//
//   - Polynomial: linear in its parameters, mainly useful for validating the
//     estimators against the closed-form weighted-least-squares covariance.
//   - Slab: specular neutron/X-ray reflectivity of a layered sample, computed
//     with the Abeles transfer-matrix method and Névot-Croce roughness damping.
package model
