// Package robust implements exact, deterministic robust-statistics
// estimators: Hodges-Lehmann location (Center), Shamos dispersion (Spread),
// pairwise shift/ratio between samples, and a normalized effect size
// (Disparity), together with distribution-free bounds indexed by a
// misclassification rate.
//
// The estimators avoid materializing the O(n^2) pairwise multisets: order
// statistics are extracted by binary search over the value range with exact
// counting oracles, so point estimates cost O(n log n) and bounds reuse the
// same kernels at non-median ranks.
//
// Every entry point validates its inputs against a fixed assumption order
// (validity, domain, positivity, sparity; subject x before y) and reports the
// first violation as an *AssumptionError. Results are numerically equivalent
// across all solidstat language ports to 1e-9; integer margins are
// combinatorially exact.
package robust
