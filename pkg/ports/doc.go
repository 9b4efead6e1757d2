/*
Package ports defines the boundaries of the MoodScape core.

# Key Interfaces

  - Classifier: the outbound call that turns free text into a mood label.
  - Controller: the inbound surface (submit, advance, reset) consumed by the
    TUI, the headless runner, the HTTP API and the MCP server.
*/
package ports
