// Package task implements the background commentary pipeline: a bounded task
// queue, a worker pool that drains it, and the commentary generation task
// that resolves each answer exactly once.
package task
