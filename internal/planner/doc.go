// Package planner turns probed inputs into a complete AssemblyPlan for one
// build job: quality preset resolution, background loop/trim reconciliation,
// filter plan construction, and platform size specs.
package planner
