// Package fisher computes the Fisher information matrix of a parametric
// forward model at a point estimate, under the Gaussian-likelihood
// linearization used for weighted least squares.
//
// The model's Jacobian is obtained by centered finite differences, and the
// information matrix is assembled as
//
//	g = Jᵀ · diag(1/σᵢ²) · J
//
// where σᵢ are the per-point measurement standard deviations of the dataset.
// The inverse of g (see the covariance package) approximates the parameter
// covariance near a local optimum, providing an analytic alternative to
// sampling-based uncertainty estimates.
//
// Every operation in this package is a pure function of its inputs; there is
// no internal state and no locking. Concurrent calls for different parameter
// points or datasets are safe and embarrassingly parallel.
package fisher
