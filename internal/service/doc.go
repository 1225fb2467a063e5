// Package service contains the application services that orchestrate domain
// objects, stores, and the background commentary pipeline. Handlers call
// services; services never know about HTTP.
package service
