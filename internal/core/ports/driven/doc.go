// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Reads catalog files at startup
//   - LLMService: Chat completion with tool use
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SpeechSynthesizer: Text to speech. Without it voice replies report "unavailable".
//   - UsageTracker: Monthly voice character budget. Defaults to an in-memory counter.
//   - ResponseCache: First-turn reply cache. Without it every turn reaches the LLM.
//   - PromptStore: User-editable prompts. Without it built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
