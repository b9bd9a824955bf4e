// Package convert runs the per-file conversion jobs of a run and aggregates
// their outcomes. Every failure a job can hit is funneled into its Result;
// nothing escapes to the dispatcher.
package convert
