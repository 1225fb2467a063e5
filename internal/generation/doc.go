// Package generation defines the boundary between the commentary pipeline and
// external text-generation services, along with the retry policy that turns a
// raw generator into a component that always resolves to a terminal
// commentary state.
package generation
