// Package prompt renders the text an actor sends to its reasoning service.
//
// A situation is assembled from independent sections so each concern stays
// debuggable in isolation: the fixed rules, the player's identity and
// role-private knowledge, its personality, the current table state with a
// window of the public record, a window of the player's own recent
// thoughts, the instruction block for the requested turn kind, and the
// required output format. Sections that have nothing to say render empty
// and are dropped.
//
// Information discipline lives here: a prompt may only contain what its
// player is entitled to know. Wolves see their packmates, the seer sees its
// own verdicts, the witch sees tonight's strike and her potion state, and
// nobody sees anyone else's private reasoning.
package prompt
