// Package gateway contains core.Gateway implementations that do not talk to
// a real provider: a scriptable mock for tests and a keyword-driven
// scripted gateway that plays complete games offline. Provider-backed
// gateways live in the subpackages openai, anthropic and gemini; callers
// depend on core.Gateway and pick an implementation at wiring time.
package gateway
