// Package gemini implements the generation.Generator interface using
// Google's Gemini API as the remote commentary backend.
package gemini
