// meta/meta.go
package meta

// SEARCH_DEPTH defines the adversarial search horizon in full rounds.
const SEARCH_DEPTH = 2

// NUM_GAMES defines the number of games played per agent configuration.
const NUM_GAMES = 10

// MAX_MOVES caps the number of agent moves in one game.
const MAX_MOVES = 3000

const SEED = 42

// TEMPERATURE defines the softmax temperature of greedy pursuers.
const TEMPERATURE = 0.5

const LAYOUT = "layouts/small.lay"

const RECORDS_DIR = "records"
