// Package domain defines the core business entities of the ohgiri service:
// topics, answers, and the commentary state machine attached to each answer.
package domain
