// Package cli implements the genui command-line interface.
//
// The package is organized around Cobra commands. Each command parses its
// flags, layers them over the loaded .genui.yaml, and hands off to the
// engine, render, ui and source packages for the actual work.
//
// # Command Structure
//
//	genui render [file]       - Stream a document in deltas and render every frame
//	genui replay <script>     - Replay a JSONC script of deltas, resets and submits
//	genui validate [file]     - Check a complete document against the grammar
//	genui schema              - Print the grammar as JSON Schema
//	genui prompt              - Print a system prompt teaching the grammar
//	genui frames <recording>  - List or replay a CBOR frame recording
//	genui init                - Create .genui.yaml
//
// # Sinks
//
// render and replay share streamRun. It picks one sink per run:
//
//  1. --json: frames stay in memory and a summary envelope is printed
//  2. inplace policy on a terminal: the live Bubble Tea view (ui.RunLive)
//  3. otherwise: render.Appender, followed by huh prompts for any form
//     left unsubmitted when stdin is a terminal
//
// With render.record set, every sink is wrapped in a render.Recorder.
// The session is guarded by a mutex because the live view submits forms
// from its own goroutine.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color, --json) are defined on
// the root command. StreamFlags and AddStreamFlags add --chunk-size,
// --delay, --policy, --record and --width to render and replay; unset
// flags leave the config file's values in place.
package cli
