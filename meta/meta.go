// meta/meta.go
package meta

// MAX_TURNS caps the actions in one game before it is drawn.
const MAX_TURNS = 300

// GAMES defines the number of self-play games per run.
const GAMES = 20

// SEED seeds self-play move selection.
const SEED = 42

// PERFT_DEPTH defines the default perft depth.
const PERFT_DEPTH = 2
