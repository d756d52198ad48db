// Package ui contains the Bubble Tea program that hosts a window deck.
// Model.Update only orchestrates messages; dedicated files own key handling,
// the picker, backend reloads and rendering.
//
// Message flow:
//   - Frame ticks advance the animation engine, which moves every running
//     window transition. Without ticks an engine-backed deck never finishes
//     a transition, so ticking stops only when the model runs instantly.
//   - Key presses map to manager operations. Operations block until their
//     transitions end, so they run as tea.Cmd values through the
//     internal/ui/command bus and report back with a command.Result.
//   - Next and previous go through manager.Button triggers; the manager keeps
//     the buttons enabled or disabled and the key bindings mirror that state,
//     which is what the help footer shows.
//
// Backend interactions:
//   - A backend.Watcher streams deck reloads. Each event is handed to the
//     dispatcher, which builds and installs a new manager; the model then
//     swaps its manager and re-wires the triggers.
package ui
