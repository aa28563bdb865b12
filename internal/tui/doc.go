/*
Package tui implements the terminal console.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: tabs, the two forms, the response region and the history table
  - Update: routes key presses through the keybinds registry and applies
    the results of network exchanges
  - View: renders the visible section, the tab bar and the status bar

# Key Components

  - model.go: Core state and initialization
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Side effects (submit, history load, ping, preferences, clipboard)
  - render.go: View rendering

# Threading Model

Everything runs on Bubble Tea's event loop. Network exchanges run as
tea.Cmd functions and come back as messages carrying the sequence number
handed out when the flow entered its pending state. Results are applied in
arrival order, so the last exchange to resolve is the one on display.
*/
package tui
