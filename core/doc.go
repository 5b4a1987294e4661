// Package core contains the shared leaf types of the assistant engine:
// conversation turns, model tool calls, persisted chat messages and the
// collaborator interfaces the orchestration loop consumes. It has no
// dependencies beyond the standard library so every other package can
// import it freely.
package core
