// Package protocol decodes raw agent completions into structured decisions.
//
// Language models wrap their JSON in markdown fences, preamble prose or
// trailing commentary, so extraction tries progressively looser strategies
// before giving up: a json-tagged fence, any fence, the outermost brace
// span, then the raw text. Whatever survives extraction gets exactly one
// decode attempt; a failure yields a fallback core.Decision instead of an
// error so a single incoherent agent can never stall the game.
//
// The decoder is deliberately tolerant about the action payload: a bare
// integer, a numeric string and a {type, target} object are all accepted,
// because models under instruction pressure produce all three.
package protocol
